package domain

import (
	"fmt"

	"routevendor/internal/model"

	"github.com/shopspring/decimal"
)

// StockLedger tracks stock and price per product inventory record during one
// orchestration cycle. Records are replaced, never mutated in place.
//
// Two lookups exist over the same backing slice: mutations are keyed by
// id_product_inventory, IsNewProduct by id_product against the snapshot the
// ledger was built with.
type StockLedger struct {
	records  []model.ProductInventory
	byRecord map[string]int

	snapshotProducts map[string]struct{}

	inserted []model.ProductInventory
	modified []model.ProductInventory
}

// NewStockLedger builds a ledger over snapshot. It rejects snapshots where an
// inventory id repeats or a product maps to more than one inventory record.
func NewStockLedger(snapshot []model.ProductInventory) (*StockLedger, error) {
	l := &StockLedger{
		records:          make([]model.ProductInventory, 0, len(snapshot)),
		byRecord:         make(map[string]int, len(snapshot)),
		snapshotProducts: make(map[string]struct{}, len(snapshot)),
	}
	for _, rec := range snapshot {
		if _, dup := l.byRecord[rec.IDProductInventory]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.IDProductInventory)
		}
		if _, dup := l.snapshotProducts[rec.IDProduct]; dup {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousProduct, rec.IDProduct)
		}
		l.byRecord[rec.IDProductInventory] = len(l.records)
		l.snapshotProducts[rec.IDProduct] = struct{}{}
		l.records = append(l.records, rec)
	}
	return l, nil
}

// Insert adds a new record to the live set.
func (l *StockLedger) Insert(idProductInventory string, price decimal.Decimal, stock int, idProduct string) error {
	if stock < 0 {
		return fmt.Errorf("%w: %s starts at %d", ErrNegativeAmount, idProductInventory, stock)
	}
	if _, exists := l.byRecord[idProductInventory]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRecord, idProductInventory)
	}
	rec := model.ProductInventory{
		IDProductInventory: idProductInventory,
		PriceAtMoment:      price,
		Stock:              stock,
		IDProduct:          idProduct,
	}
	l.byRecord[idProductInventory] = len(l.records)
	l.records = append(l.records, rec)
	l.inserted = append(l.inserted, rec)
	return nil
}

// Increase adds amount to the record's stock.
func (l *StockLedger) Increase(idProductInventory string, amount int) error {
	idx, err := l.mutable(idProductInventory, amount)
	if err != nil {
		return err
	}
	l.replace(idx, l.records[idx].Stock+amount, l.records[idx].PriceAtMoment)
	return nil
}

// Load adds amount to the record's stock and moves its price to price, so
// sales after a restock are valued at the restocked price.
func (l *StockLedger) Load(idProductInventory string, amount int, price decimal.Decimal) error {
	idx, err := l.mutable(idProductInventory, amount)
	if err != nil {
		return err
	}
	l.replace(idx, l.records[idx].Stock+amount, price)
	return nil
}

// Decrease subtracts amount from the record's stock. Stock is left untouched
// when amount exceeds it.
func (l *StockLedger) Decrease(idProductInventory string, amount int) error {
	idx, err := l.mutable(idProductInventory, amount)
	if err != nil {
		return err
	}
	current := l.records[idx].Stock
	if amount > current {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, idProductInventory, current, amount)
	}
	l.replace(idx, current-amount, l.records[idx].PriceAtMoment)
	return nil
}

// IsNewProduct reports whether idProduct was absent from the construction snapshot.
func (l *StockLedger) IsNewProduct(idProduct string) bool {
	_, ok := l.snapshotProducts[idProduct]
	return !ok
}

// Get returns the live record for idProductInventory.
func (l *StockLedger) Get(idProductInventory string) (model.ProductInventory, bool) {
	idx, ok := l.byRecord[idProductInventory]
	if !ok {
		return model.ProductInventory{}, false
	}
	return l.records[idx], true
}

// FindByProduct returns the live record holding idProduct.
func (l *StockLedger) FindByProduct(idProduct string) (model.ProductInventory, bool) {
	for _, rec := range l.records {
		if rec.IDProduct == idProduct {
			return rec, true
		}
	}
	return model.ProductInventory{}, false
}

// All returns the live set.
func (l *StockLedger) All() []model.ProductInventory {
	return cloneRecords(l.records)
}

// NewlyInserted returns records created through Insert, with the values
// they had when inserted.
func (l *StockLedger) NewlyInserted() []model.ProductInventory {
	return cloneRecords(l.inserted)
}

// Modified returns every value written by Increase/Decrease in call order.
// A record changed twice appears twice.
func (l *StockLedger) Modified() []model.ProductInventory {
	return cloneRecords(l.modified)
}

// LatestModified collapses Modified to the last value per record, ordered by
// first modification.
func (l *StockLedger) LatestModified() []model.ProductInventory {
	order := make([]string, 0, len(l.modified))
	latest := make(map[string]model.ProductInventory, len(l.modified))
	for _, rec := range l.modified {
		if _, seen := latest[rec.IDProductInventory]; !seen {
			order = append(order, rec.IDProductInventory)
		}
		latest[rec.IDProductInventory] = rec
	}
	out := make([]model.ProductInventory, 0, len(order))
	for _, id := range order {
		out = append(out, latest[id])
	}
	return out
}

func (l *StockLedger) lookup(idProductInventory string) (int, error) {
	if len(l.records) == 0 {
		return 0, ErrEmptyLedger
	}
	idx, ok := l.byRecord[idProductInventory]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrRecordNotFound, idProductInventory)
	}
	return idx, nil
}

// mutable resolves the record a stock movement applies to.
func (l *StockLedger) mutable(idProductInventory string, amount int) (int, error) {
	idx, err := l.lookup(idProductInventory)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: %d on %s", ErrNegativeAmount, amount, idProductInventory)
	}
	return idx, nil
}

func (l *StockLedger) replace(idx, stock int, price decimal.Decimal) {
	next := l.records[idx]
	next.Stock = stock
	next.PriceAtMoment = price
	l.records[idx] = next
	l.modified = append(l.modified, next)
}

func cloneRecords(in []model.ProductInventory) []model.ProductInventory {
	out := make([]model.ProductInventory, len(in))
	copy(out, in)
	return out
}
