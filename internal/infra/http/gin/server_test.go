package ginserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archatara/internal/app/admin"
	"archatara/internal/app/booking"
	"archatara/internal/app/services/auth"
	"archatara/internal/domain/catalog"
	"archatara/internal/infra/config"
	"archatara/internal/infra/obs"
	"archatara/internal/infra/security"
	"archatara/internal/infra/storage/memory"
	"archatara/internal/infra/store"
)

func buildTestServer(t *testing.T) http.Handler {
	t.Helper()

	adapter := store.New(store.Config{
		Fallback:         memory.NewReservationStore(),
		FallbackSettings: memory.NewSettingsStore(),
	})
	adapter.Start(context.Background())

	hash, err := security.BcryptHasher{}.Hash("secret")
	require.NoError(t, err)
	authService := &auth.Service{
		Admins:    []auth.Admin{{Email: "admin@archatara.com", PasswordHash: hash}},
		Sessions:  memory.NewSessionStore(),
		Passwords: security.BcryptHasher{},
		Tokens:    security.RandomTokenGenerator{},
	}

	venue := catalog.Default()
	handlers := Handlers{
		Catalog:         &CatalogHandler{Venue: venue, Store: adapter},
		Booking:         &BookingHandler{Sessions: booking.NewSessions(venue, adapter)},
		Admin:           &AdminHandler{Auth: authService, Service: &admin.Service{Store: adapter}, Catalog: venue},
		AdminMiddleware: AdminAuth(authService),
	}
	server := NewServer(config.Config{Env: "test", HTTPAddr: ":0"}, obs.Middleware{}, obs.HealthHandlers{}, handlers)
	return server.Handler
}

func doJSON(t *testing.T, handler http.Handler, method, path, body, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	var decoded map[string]any
	if resp.Body.Len() > 0 && strings.Contains(resp.Header().Get("Content-Type"), "json") {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
	}
	return resp, decoded
}

func TestHealthEndpoints(t *testing.T) {
	handler := buildTestServer(t)
	resp, _ := doJSON(t, handler, http.MethodGet, "/livez", "", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	resp, _ = doJSON(t, handler, http.MethodGet, "/readyz", "", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestCatalogEndpoint(t *testing.T) {
	handler := buildTestServer(t)
	resp, body := doJSON(t, handler, http.MethodGet, "/api/v1/catalog", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	types := body["types"].([]any)
	assert.Len(t, types, 3)
}

func TestAvailabilityRequiresDate(t *testing.T) {
	handler := buildTestServer(t)
	resp, _ := doJSON(t, handler, http.MethodGet, "/api/v1/availability", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp, body := doJSON(t, handler, http.MethodGet, "/api/v1/availability?date=2026-09-04", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "2026-09-04", body["date"])
}

func TestBookingFlowOverHTTP(t *testing.T) {
	handler := buildTestServer(t)

	resp, body := doJSON(t, handler, http.MethodPost, "/api/v1/booking", "", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	id := body["id"].(string)
	require.NotEmpty(t, id)

	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+id+"/date", `{"date":"2999-01-01"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+id+"/unit", `{"typeId":"glamping","unitId":"G1"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp, body = doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+id+"/submit",
		`{"name":"Somchai P.","phone":"081-234-5678","email":"somchai@example.com","extraBed":true,"slipImage":"slip"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "confirmed", body["state"])
	assert.Equal(t, float64(1500), body["totalPrice"])
	require.NotEmpty(t, body["reservationId"])

	// The unit is blocked immediately for other sessions.
	resp, body = doJSON(t, handler, http.MethodPost, "/api/v1/booking", "", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	other := body["id"].(string)
	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+other+"/date", `{"date":"2999-01-01"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+other+"/unit", `{"typeId":"glamping","unitId":"G1"}`, "")
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestBookingSessionNotFound(t *testing.T) {
	handler := buildTestServer(t)
	resp, _ := doJSON(t, handler, http.MethodGet, "/api/v1/booking/missing", "", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAdminRoutesRequireBearerToken(t *testing.T) {
	handler := buildTestServer(t)

	resp, _ := doJSON(t, handler, http.MethodGet, "/api/v1/admin/reservations", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp, _ = doJSON(t, handler, http.MethodGet, "/api/v1/admin/reservations", "", "bogus")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/admin/login", `{"email":"admin@archatara.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp, body := doJSON(t, handler, http.MethodPost, "/api/v1/admin/login", `{"email":"admin@archatara.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
	token := body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, handler, http.MethodGet, "/api/v1/admin/reservations", "", token)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "fallback", body["mode"])
}

func TestAdminConfirmAndExport(t *testing.T) {
	handler := buildTestServer(t)

	resp, body := doJSON(t, handler, http.MethodPost, "/api/v1/admin/login", `{"email":"admin@archatara.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
	token := body["token"].(string)

	resp, body = doJSON(t, handler, http.MethodPost, "/api/v1/booking", "", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	id := body["id"].(string)
	doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+id+"/date", `{"date":"2999-01-02"}`, "")
	doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+id+"/unit", `{"typeId":"bamboo","unitId":"B1"}`, "")
	resp, body = doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+id+"/submit",
		`{"name":"Somchai P.","phone":"081-234-5678","email":"somchai@example.com","slipImage":"slip"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
	reservationID := body["reservationId"].(string)

	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/admin/reservations/"+reservationID+"/confirm", "", token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	// Terminal states are final.
	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/admin/reservations/"+reservationID+"/reject", "", token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	resp, _ = doJSON(t, handler, http.MethodGet, "/api/v1/admin/export", "", token)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "archatara_bookings_")
	assert.True(t, strings.HasPrefix(resp.Body.String(), "\ufeff"))
	assert.Contains(t, resp.Body.String(), `"Bamboo House"`)
}

func TestDeleteAllRequiresConfirmation(t *testing.T) {
	handler := buildTestServer(t)
	resp, body := doJSON(t, handler, http.MethodPost, "/api/v1/admin/login", `{"email":"admin@archatara.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
	token := body["token"].(string)

	resp, _ = doJSON(t, handler, http.MethodDelete, "/api/v1/admin/reservations", "", token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp, _ = doJSON(t, handler, http.MethodDelete, "/api/v1/admin/reservations?confirm=true", "", token)
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestSettingsRoundTripOverHTTP(t *testing.T) {
	handler := buildTestServer(t)
	resp, body := doJSON(t, handler, http.MethodPost, "/api/v1/admin/login", `{"email":"admin@archatara.com","password":"secret"}`, "")
	require.Equal(t, http.StatusOK, resp.Code)
	token := body["token"].(string)

	resp, body = doJSON(t, handler, http.MethodGet, "/api/v1/admin/settings", "", token)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, false, body["weekendOnlyMode"])

	resp, body = doJSON(t, handler, http.MethodPut, "/api/v1/admin/settings", `{"weekendOnlyMode":true}`, token)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, true, body["weekendOnlyMode"])

	// The booking flow enforces the new restriction right away:
	// 2999-01-07 is a Monday.
	resp, body = doJSON(t, handler, http.MethodPost, "/api/v1/booking", "", "")
	require.Equal(t, http.StatusCreated, resp.Code)
	id := body["id"].(string)
	resp, _ = doJSON(t, handler, http.MethodPost, "/api/v1/booking/"+id+"/date", `{"date":"2999-01-07"}`, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
