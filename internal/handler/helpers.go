package handler

import (
	"errors"
	"net/http"
	"reflect"

	"routevendor/internal/apierror"
	"routevendor/internal/domain"
	"routevendor/internal/infra"
	"routevendor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// ── Error mapping ────────────────────────────────────────────────────────────

var errorStatus = []struct {
	err    error
	status int
}{
	// lookup
	{service.ErrInventoryOperationNotFound, http.StatusNotFound},
	{service.ErrTransactionNotFound, http.StatusNotFound},
	{domain.ErrRecordNotFound, http.StatusNotFound},
	// state
	{domain.ErrNoWorkDay, http.StatusConflict},
	{domain.ErrNoOperation, http.StatusConflict},
	{domain.ErrNoTransaction, http.StatusConflict},
	{domain.ErrEmptyLedger, http.StatusConflict},
	{infra.ErrLockNotObtained, http.StatusConflict},
	// uniqueness
	{domain.ErrDuplicateRecord, http.StatusConflict},
	{domain.ErrDuplicateLine, http.StatusConflict},
	{domain.ErrAmbiguousProduct, http.StatusConflict},
	// quantity
	{domain.ErrInsufficientStock, http.StatusUnprocessableEntity},
	{domain.ErrNegativeAmount, http.StatusUnprocessableEntity},
	{domain.ErrNegativePettyCash, http.StatusUnprocessableEntity},
	{domain.ErrPettyCashRegression, http.StatusUnprocessableEntity},
	// transition
	{domain.ErrAlreadyCancelled, http.StatusUnprocessableEntity},
	{domain.ErrInactiveRoute, http.StatusUnprocessableEntity},
	{domain.ErrInvalidFinishDate, http.StatusUnprocessableEntity},
	{domain.ErrWorkDayAlreadyStarted, http.StatusUnprocessableEntity},
	{domain.ErrWorkDayClosed, http.StatusUnprocessableEntity},
	{domain.ErrNotCancellable, http.StatusUnprocessableEntity},
	{domain.ErrInvalidInventoryType, http.StatusUnprocessableEntity},
	// auth
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
}

// statusFor maps a service error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError writes the apierror envelope for err. Unmapped errors are
// attached to the context and left to middleware.ErrorHandler, which logs
// them and sends the generic 500.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Status(status)
		_ = c.Error(err)
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}
