//go:build integration

package router_test

// End-to-end shift flow against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"routevendor/internal/config"
	"routevendor/internal/dto"
	"routevendor/internal/infra"
	"routevendor/internal/middleware"
	"routevendor/internal/model"
	"routevendor/internal/repository"
	"routevendor/internal/router"
	"routevendor/internal/service"
	"routevendor/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func expect(t *testing.T, resp *http.Response, status int, dest any) {
	t.Helper()
	require.Equal(t, status, resp.StatusCode)
	if dest != nil {
		decodeJSON(t, resp, dest)
		return
	}
	resp.Body.Close()
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	rdb    *redis.Client
	tokens map[string]string // role → JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:16-alpine",
		tcPostgres.WithDatabase("routevendor_test"),
		tcPostgres.WithUsername("routevendor"),
		tcPostgres.WithPassword("routevendor"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		LockTTLSeconds:     5,
		ReportStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	vendors := repository.NewVendorRepository(db)
	for _, role := range []string{middleware.RoleVendedor, middleware.RoleSupervisor} {
		hash, err := service.HashPassword("e2e-pass")
		require.NoError(t, err)
		require.NoError(t, vendors.Create(ctx, &model.Vendor{
			Username: role + "@e2e.test", Name: "E2E " + role,
			PasswordHash: hash, Role: role, Active: true,
		}))
	}

	srv := httptest.NewServer(router.New(cfg, db, rdb, infra.NewCircuitBreaker(infra.DefaultCBConfig())))
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv, rdb: rdb, tokens: make(map[string]string)}
	for _, role := range []string{middleware.RoleVendedor, middleware.RoleSupervisor} {
		var login dto.LoginResponse
		expect(t, do(t, srv, http.MethodPost, "/v1/auth/login",
			jsonBody(t, dto.LoginRequest{Username: role + "@e2e.test", Password: "e2e-pass"}), ""),
			http.StatusOK, &login)
		require.NotEmpty(t, login.AccessToken)
		env.tokens[role] = login.AccessToken
	}
	return env
}

func (e *testEnv) stockOf(t *testing.T, productID string) dto.StockResponse {
	t.Helper()
	var stock []dto.StockResponse
	expect(t, do(t, e.server, http.MethodGet, "/v1/inventario/stock", nil, e.tokens[middleware.RoleVendedor]),
		http.StatusOK, &stock)
	for _, s := range stock {
		if s.ProductID == productID {
			return s
		}
	}
	t.Fatalf("no stock for %s", productID)
	return dto.StockResponse{}
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullShift(t *testing.T) {
	env := setupTestEnv(t)
	tok := env.tokens[middleware.RoleVendedor]
	srv := env.server

	// 1. Start the shift on a one-store route.
	var jornada dto.JornadaResponse
	expect(t, do(t, srv, http.MethodPost, "/v1/jornada/iniciar", jsonBody(t, map[string]any{
		"route_id": "r-1", "route_name": "Centro", "route_status": true,
		"day_id": "mon", "route_day_id": "rd-1", "start_petty_cash": 100,
		"stores": []map[string]any{{"store_id": "s1", "position": 0}},
	}), tok), http.StatusCreated, &jornada)
	assert.Equal(t, "abierta", jornada.Estado)

	// 2. Shift-start inventory loads the ledger.
	var next dto.SiguienteTipoResponse
	expect(t, do(t, srv, http.MethodGet, "/v1/inventario/siguiente-tipo", nil, tok), http.StatusOK, &next)
	assert.Equal(t, "start_shift_inventory", next.Tipo)

	expect(t, do(t, srv, http.MethodPost, "/v1/inventario/operaciones", jsonBody(t, map[string]any{
		"tipo": "start_shift_inventory", "sign_confirmation": "firma",
		"lineas": []map[string]any{{"product_id": "p-1", "price": 10, "amount": 20}},
	}), tok), http.StatusCreated, nil)
	rec := env.stockOf(t, "p-1")
	assert.Equal(t, 20, rec.Stock)

	// 3. A sale consumes stock; an oversell is rejected.
	var tx dto.TransaccionResponse
	expect(t, do(t, srv, http.MethodPost, "/v1/transacciones", jsonBody(t, map[string]any{
		"store_id": "s1", "payment_method": "cash", "cash_received": 30,
		"lineas": []map[string]any{{"product_inventory_id": rec.ID, "tipo": "sales", "amount": 3}},
	}), tok), http.StatusCreated, &tx)
	assert.Equal(t, 17, env.stockOf(t, "p-1").Stock)

	expect(t, do(t, srv, http.MethodPost, "/v1/transacciones", jsonBody(t, map[string]any{
		"store_id": "s1", "payment_method": "cash", "cash_received": 0,
		"lineas": []map[string]any{{"product_inventory_id": rec.ID, "tipo": "sales", "amount": 50}},
	}), tok), http.StatusUnprocessableEntity, nil)
	assert.Equal(t, 17, env.stockOf(t, "p-1").Stock)

	// 4. Cancelling the sale restores its stock.
	expect(t, do(t, srv, http.MethodPost, "/v1/transacciones/"+tx.ID+"/cancelar", nil, tok), http.StatusOK, nil)
	assert.Equal(t, 20, env.stockOf(t, "p-1").Stock)

	// 5. The restock lands right after the store visit, whose sale was
	// cancelled, so the sale entry that follows it freezes the restock.
	var restock dto.InventarioOperacionResponse
	expect(t, do(t, srv, http.MethodPost, "/v1/inventario/operaciones", jsonBody(t, map[string]any{
		"tipo": "restock_inventory", "sign_confirmation": "firma",
		"lineas": []map[string]any{{"product_id": "p-1", "price": 10, "amount": 5}},
	}), tok), http.StatusCreated, &restock)
	assert.Equal(t, 25, env.stockOf(t, "p-1").Stock)

	var ops []dto.OperacionDiaResponse
	expect(t, do(t, srv, http.MethodGet, "/v1/operaciones", nil, tok), http.StatusOK, &ops)
	require.Len(t, ops, 4)
	assert.Equal(t, restock.ID, ops[2].IDItem)

	var c dto.CancelableResponse
	expect(t, do(t, srv, http.MethodGet, "/v1/inventario/operaciones/"+restock.ID+"/cancelable", nil, tok),
		http.StatusOK, &c)
	assert.False(t, c.Cancelable)
	expect(t, do(t, srv, http.MethodPost, "/v1/inventario/operaciones/"+restock.ID+"/cancelar", nil, tok),
		http.StatusUnprocessableEntity, nil)

	// 6. Finish queues the shift report.
	expect(t, do(t, srv, http.MethodPost, "/v1/jornada/finalizar",
		jsonBody(t, map[string]any{"final_petty_cash": 50}), tok), http.StatusUnprocessableEntity, nil)
	expect(t, do(t, srv, http.MethodPost, "/v1/jornada/finalizar",
		jsonBody(t, map[string]any{"final_petty_cash": 130}), tok), http.StatusOK, &jornada)
	assert.Equal(t, "cerrada", jornada.Estado)

	queued, err := env.rdb.LLen(context.Background(), worker.QueueShiftReport).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), queued)
}

func TestE2E_ResetRequiresSupervisor(t *testing.T) {
	env := setupTestEnv(t)
	srv := env.server

	expect(t, do(t, srv, http.MethodDelete, "/v1/jornada", nil, env.tokens[middleware.RoleVendedor]),
		http.StatusForbidden, nil)
	expect(t, do(t, srv, http.MethodDelete, "/v1/jornada", nil, env.tokens[middleware.RoleSupervisor]),
		http.StatusNoContent, nil)
	expect(t, do(t, srv, http.MethodGet, "/v1/jornada", nil, env.tokens[middleware.RoleVendedor]),
		http.StatusConflict, nil)
	expect(t, do(t, srv, http.MethodGet, "/v1/jornada", nil, ""), http.StatusUnauthorized, nil)
}

func TestE2E_Health(t *testing.T) {
	env := setupTestEnv(t)
	var body map[string]any
	expect(t, do(t, env.server, http.MethodGet, "/health", nil, ""), http.StatusOK, &body)
	assert.Equal(t, true, body["ok"])
	breaker, ok := body["smtp_breaker"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "smtp", breaker["name"])
	assert.Equal(t, "closed", breaker["state"])
	assert.NotContains(t, breaker, "opened_at")
}
