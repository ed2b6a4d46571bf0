package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/homewiz/homewiz-backend/internal/entity"
	"github.com/homewiz/homewiz-backend/internal/infra/http/handlers"
	"github.com/homewiz/homewiz-backend/internal/infra/memory"
	"github.com/homewiz/homewiz-backend/internal/infra/report"
	"github.com/homewiz/homewiz-backend/internal/usecase"
)

func newTestServer(t *testing.T, leadRateLimit int) *httptest.Server {
	t.Helper()
	store := memory.NewStore()
	logger := zap.NewNop()
	gen := entity.NewRoomGenerator(entity.DefaultPricing(), rand.New(rand.NewSource(7)))

	rooms := usecase.NewRoomUseCase(store.Rooms(), store.Buildings(), gen, logger)
	leadHandler := handlers.NewLeadHandler(
		usecase.NewLeadUseCase(store.Leads(), store.Rooms(), store, logger),
		usecase.NewConvertLeadUseCase(store.Leads(), store.Rooms(), store.Tenants(), store.Operators(), store, logger),
		leadRateLimit,
		logger,
	)
	t.Cleanup(leadHandler.Stop)

	h := Handlers{
		Health:    handlers.NewHealthHandler(map[string]handlers.Pinger{"database": store, "redis": nil}),
		Operators: handlers.NewOperatorHandler(usecase.NewOperatorUseCase(store.Operators(), logger), logger),
		Buildings: handlers.NewBuildingHandler(
			usecase.NewBuildingUseCase(store.Buildings(), store.Operators(), store.Rooms(), logger), rooms, logger,
		),
		Rooms:   handlers.NewRoomHandler(rooms, logger),
		Leads:   leadHandler,
		Tenants: handlers.NewTenantHandler(usecase.NewTenantUseCase(store.Tenants(), store, logger), logger),
		Reports: handlers.NewReportHandler(usecase.NewRentRollUseCase(store.Buildings(), store.Rooms(), store.Tenants()), logger),
	}

	srv := httptest.NewServer(New(h, Options{AllowedOrigins: []string{"http://localhost:3000"}}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	json.Unmarshal(raw, &decoded)
	return resp, decoded
}

// seedCatalog creates an operator and a generated two-floor building, and
// returns the operator id and the first room id.
func seedCatalog(t *testing.T, srv *httptest.Server) (int64, string) {
	t.Helper()
	resp, body := do(t, srv, http.MethodPost, "/api/operators", map[string]any{
		"name":          "Lisa Leasing",
		"email":         "lisa.leasing@homewiz.com",
		"operator_type": "LEASING_AGENT",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	operatorID := int64(body["operator_id"].(float64))

	resp, _ = do(t, srv, http.MethodPost, "/api/buildings", map[string]any{
		"building_id":   "BLD_SOMA",
		"building_name": "SoMA Commons",
		"operator_id":   operatorID,
		"area":          "SoMA",
		"floors":        2,
		"total_rooms":   4,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = do(t, srv, http.MethodPost, "/api/buildings/BLD_SOMA/rooms/generate", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.EqualValues(t, 4, data["generated"])

	return operatorID, "BLD_SOMA_R101"
}

func TestRootAndHealth(t *testing.T) {
	srv := newTestServer(t, 10)

	resp, body := do(t, srv, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "HomeWiz Backend API is running", body["message"])

	resp, body = do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
	deps := body["dependencies"].(map[string]any)
	assert.Equal(t, "healthy", deps["database"])
	assert.Equal(t, "not configured", deps["redis"])
}

func TestCatalogStatusMapping(t *testing.T) {
	srv := newTestServer(t, 10)
	seedCatalog(t, srv)

	resp, body := do(t, srv, http.MethodPost, "/api/operators", map[string]any{
		"name":  "Other",
		"email": "LISA.LEASING@homewiz.com",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, usecase.CodeConflict, body["code"])
	assert.Equal(t, false, body["success"])

	resp, _ = do(t, srv, http.MethodPost, "/api/buildings/BLD_SOMA/rooms/generate", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = do(t, srv, http.MethodPost, "/api/buildings/BLD_NOPE/rooms/generate", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, usecase.CodeNotFound, body["code"])

	resp, body = do(t, srv, http.MethodPost, "/api/operators", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, usecase.CodeValidation, body["code"])

	resp, body = do(t, srv, http.MethodGet, "/api/buildings/BLD_SOMA", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 4, body["room_count"])

	resp, _ = do(t, srv, http.MethodGet, "/api/operators/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeadCreateIsIdempotentPerEmail(t *testing.T) {
	srv := newTestServer(t, 10)
	_, roomID := seedCatalog(t, srv)

	resp, body := do(t, srv, http.MethodPost, "/api/leads", map[string]any{
		"email":            "alex.kim@example.com",
		"rooms_interested": roomID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Lead created successfully", body["message"])
	assert.Equal(t, "LEAD_001", body["lead_id"])

	resp, body = do(t, srv, http.MethodPost, "/api/leads", map[string]any{"email": "alex.kim@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lead already exists", body["message"])
	assert.Equal(t, "LEAD_001", body["lead_id"])

	resp, _ = do(t, srv, http.MethodGet, "/api/leads/LEAD_404", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLeadCreateRateLimited(t *testing.T) {
	srv := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		resp, _ := do(t, srv, http.MethodPost, "/api/leads", map[string]any{"email": fmt.Sprintf("lead%d@example.com", i)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	resp, _ := do(t, srv, http.MethodPost, "/api/leads", map[string]any{"email": "lead9@example.com"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestConvertLeadThenRoomIsTaken(t *testing.T) {
	srv := newTestServer(t, 10)
	operatorID, roomID := seedCatalog(t, srv)

	for _, email := range []string{"first@example.com", "second@example.com"} {
		resp, _ := do(t, srv, http.MethodPost, "/api/leads", map[string]any{"email": email})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := do(t, srv, http.MethodPost, "/api/leads/LEAD_001/selection", map[string]any{"room_id": roomID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	terms := map[string]any{
		"tenant_name":      "First Tenant",
		"lease_start_date": "2025-01-15",
		"lease_end_date":   "2025-07-15",
		"operator_id":      operatorID,
	}
	resp, body = do(t, srv, http.MethodPost, "/api/leads/LEAD_001/convert", terms)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "TNT_001", body["tenant_id"])

	resp, body = do(t, srv, http.MethodGet, "/api/rooms/"+roomID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OCCUPIED", body["status"])

	terms["room_id"] = roomID
	terms["tenant_name"] = "Second Tenant"
	resp, body = do(t, srv, http.MethodPost, "/api/leads/LEAD_002/convert", terms)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, usecase.CodeConflict, body["code"])

	resp, body = do(t, srv, http.MethodGet, "/api/leads/LEAD_001", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CONVERTED", body["status"])

	resp, _ = do(t, srv, http.MethodPost, "/api/leads/LEAD_001/lost", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTenantLifecycle(t *testing.T) {
	srv := newTestServer(t, 10)
	operatorID, roomID := seedCatalog(t, srv)

	resp, body := do(t, srv, http.MethodPost, "/api/tenants", map[string]any{
		"tenant_name":      "Emily Wong",
		"room_id":          roomID,
		"lease_start_date": "2025-01-15",
		"lease_end_date":   "2025-07-15",
		"operator_id":      operatorID,
		"tenant_email":     "emily@example.com",
		"building_id":      "BLD_SOMA",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "TNT_001", body["tenant_id"])

	resp, _ = do(t, srv, http.MethodPost, "/api/tenants/TNT_001/payment-status", map[string]any{"payment_status": "LATE"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, srv, http.MethodPost, "/api/tenants/TNT_001/payment-status", map[string]any{"payment_status": "BOUNCED"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, usecase.CodeValidation, body["code"])

	resp, _ = do(t, srv, http.MethodPost, "/api/tenants/TNT_001/end", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/api/tenants/TNT_001/end", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRoomOccupyRelease(t *testing.T) {
	srv := newTestServer(t, 10)
	_, roomID := seedCatalog(t, srv)

	resp, _ := do(t, srv, http.MethodPost, "/api/rooms/"+roomID+"/occupy", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPost, "/api/rooms/"+roomID+"/occupy", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPost, "/api/rooms/"+roomID+"/release", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/rooms?building_id=BLD_SOMA", nil)
	require.NoError(t, err)
	listResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer listResp.Body.Close()
	var rooms []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&rooms))
	assert.Len(t, rooms, 4)
}

func TestRentRollDownload(t *testing.T) {
	srv := newTestServer(t, 10)
	seedCatalog(t, srv)

	resp, err := http.Get(srv.URL + "/api/reports/rent-roll")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, report.ContentTypeXLSX, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "rent_roll_")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, 10)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/leads", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
