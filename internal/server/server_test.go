package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	feedbackdomain "github.com/smallbiznis/waterline/internal/feedback/domain"
	"github.com/smallbiznis/waterline/internal/migration"
	"github.com/smallbiznis/waterline/internal/observability"
	obsmetrics "github.com/smallbiznis/waterline/internal/observability/metrics"
	"github.com/smallbiznis/waterline/internal/seed"
	"github.com/smallbiznis/waterline/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@waterline.test"
	adminPassword = "admin-password-1"
	clientEmail   = "awa@waterline.test"
	clientPass    = "client-password-1"
)

type testEnv struct {
	t      *testing.T
	engine *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T, burst int) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, migration.Migrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		Environment:    "test",
		LoginRateLimit: config.LoginRateLimitConfig{RatePerMinute: 1, Burst: burst},
	}
	require.NoError(t, seed.EnsureBootstrapAdmin(context.Background(), conn, node, config.BootstrapConfig{
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
		AdminName:     "Fatou Diallo",
	}, zap.NewNop()))

	var srv *Server
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(cfg, zap.NewNop(), node, conn),
		fx.Supply(config.NewStaticDashboardConfigHolder(config.DefaultDashboardConfig())),
		fx.Provide(func() clock.Clock {
			return clock.NewFakeClock(time.Date(2026, 5, 20, 9, 0, 0, 0, time.UTC))
		}),
		fx.Provide(func() observability.Config { return observability.Config{} }),
		fx.Provide(func() (*obsmetrics.HTTPMetrics, error) {
			return obsmetrics.NewHTTPMetricsWithRegistry(prometheus.NewRegistry())
		}),
		fx.Provide(NewEngine),
		Services,
		fx.Provide(NewServer),
		fx.Invoke(registerRoutes),
		fx.Populate(&srv),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	return &testEnv{t: t, engine: srv.Engine(), db: conn}
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(email, password string) (string, map[string]any) {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/login/", "", gin.H{"username": email, "password": password})
	require.Equal(e.t, http.StatusOK, rec.Code, rec.Body.String())

	var token string
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "_sid" {
			token = cookie.Value
		}
	}
	require.NotEmpty(e.t, token)
	return token, decode(e.t, rec)
}

func (e *testEnv) registerClient(email, name string) {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/register/", "", gin.H{
		"email":     email,
		"password":  clientPass,
		"nom":       name,
		"telephone": "+221770000000",
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func errorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	payload, ok := body["error"].(map[string]any)
	require.True(t, ok)
	return payload["type"].(string)
}

func TestHomeStatsOnEmptyStore(t *testing.T) {
	env := newTestEnv(t, 10)

	rec := env.do(http.MethodGet, "/home-stats/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.EqualValues(t, 0, body["total_clients"])
	assert.EqualValues(t, 0, body["total_volume_traite"])
	assert.EqualValues(t, 0, body["installations_actives"])
	assert.EqualValues(t, 0, body["satisfaction_moyenne"])

	rec = env.do(http.MethodGet, "/positive-feedback/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, 10)

	rec := env.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClientRegisterLoginAndFeedback(t *testing.T) {
	env := newTestEnv(t, 10)
	env.registerClient(clientEmail, "Awa Ndiaye")

	token, login := env.login(clientEmail, clientPass)
	assert.Equal(t, true, login["success"])
	assert.Equal(t, "client", login["user_type"])
	assert.Equal(t, "Awa Ndiaye", login["name"])
	assert.NotEmpty(t, login["user_id"])

	rec := env.do(http.MethodGet, "/client/dashboard/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dashboard := decode(t, rec)
	info := dashboard["client_info"].(map[string]any)
	assert.Equal(t, "Awa Ndiaye", info["nom"])
	assert.Equal(t, clientEmail, info["email"])
	assert.EqualValues(t, 0, info["solde"])
	assert.Equal(t, []any{}, dashboard["commandes"])
	assert.Equal(t, []any{}, dashboard["factures"])

	rec = env.do(http.MethodPost, "/client/add-feedback/", token, gin.H{"commentaire": "Eau claire", "note": 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/positive-feedback/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeList(t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "Eau claire", items[0]["commentaire"])
	assert.Equal(t, "Awa Ndiaye", items[0]["client_nom"])
	assert.Equal(t, "2026-05-20", items[0]["date"])

	rec = env.do(http.MethodGet, "/home-stats/", "", nil)
	stats := decode(t, rec)
	assert.EqualValues(t, 1, stats["total_clients"])
	assert.EqualValues(t, 5, stats["satisfaction_moyenne"])
}

func TestAddFeedbackRejectsInvalidInput(t *testing.T) {
	env := newTestEnv(t, 10)
	env.registerClient(clientEmail, "Awa Ndiaye")
	token, _ := env.login(clientEmail, clientPass)

	cases := []struct {
		name string
		body gin.H
	}{
		{name: "missing note", body: gin.H{"commentaire": "ok"}},
		{name: "note above five", body: gin.H{"commentaire": "ok", "note": 6}},
		{name: "negative note", body: gin.H{"commentaire": "ok", "note": -1}},
		{name: "empty comment", body: gin.H{"commentaire": "  ", "note": 4}},
		{name: "note as text", body: gin.H{"commentaire": "ok", "note": "four"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/client/add-feedback/", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation_error", errorType(t, rec))
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&feedbackdomain.Feedback{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBindingReportsMissingFields(t *testing.T) {
	env := newTestEnv(t, 10)

	rec := env.do(http.MethodPost, "/register/", "", gin.H{"email": "moussa@waterline.test", "nom": "Moussa"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorType(t, rec))
	fields := decode(t, rec)["error"].(map[string]any)["errors"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "password", fields[0].(map[string]any)["field"])
	assert.Equal(t, "required", fields[0].(map[string]any)["code"])

	rec = env.do(http.MethodPost, "/login/", "", gin.H{"username": adminEmail})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields = decode(t, rec)["error"].(map[string]any)["errors"].([]any)
	assert.Equal(t, "password", fields[0].(map[string]any)["field"])

	env.registerClient(clientEmail, "Awa Ndiaye")
	token, _ := env.login(clientEmail, clientPass)
	rec = env.do(http.MethodPost, "/client/add-feedback/", token, gin.H{"commentaire": "ok", "note": 7})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	fields = decode(t, rec)["error"].(map[string]any)["errors"].([]any)
	assert.Equal(t, "note", fields[0].(map[string]any)["field"])
	assert.Equal(t, "max", fields[0].(map[string]any)["code"])

	var clients int64
	require.NoError(t, env.db.Table("clients").Count(&clients).Error)
	assert.EqualValues(t, 1, clients)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t, 10)
	env.registerClient(clientEmail, "Awa Ndiaye")

	rec := env.do(http.MethodPost, "/register/", "", gin.H{
		"email":    clientEmail,
		"password": clientPass,
		"nom":      "Someone Else",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "email_taken", errorType(t, rec))

	var clients int64
	require.NoError(t, env.db.Table("clients").Count(&clients).Error)
	assert.EqualValues(t, 1, clients)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t, 10)

	rec := env.do(http.MethodPost, "/login/", "", gin.H{"username": adminEmail, "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid_credentials", errorType(t, rec))

	rec = env.do(http.MethodPost, "/login/", "", gin.H{"username": "nobody@waterline.test", "password": "whatever-123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginIsRateLimitedPerAddress(t *testing.T) {
	env := newTestEnv(t, 2)

	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodPost, "/login/", "", gin.H{"username": adminEmail, "password": "wrong-password"})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := env.do(http.MethodPost, "/login/", "", gin.H{"username": adminEmail, "password": adminPassword})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	env := newTestEnv(t, 2)

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		body, err := json.Marshal(gin.H{"username": adminEmail, "password": "wrong-password"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/login/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rec := httptest.NewRecorder()
		env.engine.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{
		http.StatusUnauthorized, http.StatusUnauthorized,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestRoleGating(t *testing.T) {
	env := newTestEnv(t, 10)
	env.registerClient(clientEmail, "Awa Ndiaye")
	clientToken, _ := env.login(clientEmail, clientPass)
	adminToken, login := env.login(adminEmail, adminPassword)
	assert.Equal(t, "admin", login["user_type"])
	assert.Equal(t, "Fatou Diallo", login["name"])

	rec := env.do(http.MethodGet, "/admin/dashboard/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodGet, "/admin/dashboard/", clientToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/client/dashboard/", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodGet, "/admin/dashboard/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.EqualValues(t, 1, stats["total_clients"])
	assert.EqualValues(t, 1, stats["clients_actifs"])
	assert.EqualValues(t, 0, stats["revenus_mensuels"])
}

func TestLogoutRevokesSession(t *testing.T) {
	env := newTestEnv(t, 10)
	env.registerClient(clientEmail, "Awa Ndiaye")
	token, _ := env.login(clientEmail, clientPass)

	rec := env.do(http.MethodPost, "/logout/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = env.do(http.MethodGet, "/client/dashboard/", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/logout/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOperationsFlow(t *testing.T) {
	env := newTestEnv(t, 10)
	env.registerClient(clientEmail, "Awa Ndiaye")
	env.registerClient("binta@waterline.test", "Binta Sow")
	adminToken, _ := env.login(adminEmail, adminPassword)
	clientToken, clientLogin := env.login(clientEmail, clientPass)
	otherToken, _ := env.login("binta@waterline.test", clientPass)

	rec := env.do(http.MethodPost, "/admin/water-sources/", adminToken, gin.H{
		"type_source":    "Forage",
		"nom":            "Forage Nord",
		"qualite_eau":    "Bonne",
		"volume_fournit": 1200,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sourceID := decode(t, rec)["data"].(map[string]any)["id"].(string)

	rec = env.do(http.MethodPost, "/admin/reservoirs/", adminToken, gin.H{
		"nom":               "Réservoir A",
		"volume_max":        1000,
		"volume_disponible": 1200,
		"source_id":         sourceID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/admin/reservoirs/", adminToken, gin.H{
		"nom":               "Réservoir A",
		"volume_max":        1000,
		"volume_disponible": 250,
		"source_id":         sourceID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	reservoirID := decode(t, rec)["data"].(map[string]any)["id"].(string)

	rec = env.do(http.MethodPatch, "/admin/reservoirs/"+reservoirID+"/", adminToken, gin.H{"volume_disponible": 500})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/admin/water-levels/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	levels := decodeList(t, rec)
	require.Len(t, levels, 1)
	assert.EqualValues(t, 50, levels[0]["niveau"])
	assert.Equal(t, true, levels[0]["capacite_valide"])

	rec = env.do(http.MethodPost, "/admin/pumps/", adminToken, gin.H{
		"nom":          "Pompe 1",
		"etat":         "ON",
		"debit":        30,
		"reservoir_id": reservoirID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	pumpID := decode(t, rec)["data"].(map[string]any)["id"].(string)

	rec = env.do(http.MethodGet, "/admin/pump-status/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pumps := decodeList(t, rec)
	require.Len(t, pumps, 1)
	assert.Equal(t, "Réservoir A", pumps[0]["reservoir"])

	rec = env.do(http.MethodPatch, "/admin/pumps/"+pumpID+"/state/", adminToken, gin.H{"etat": "BROKEN"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/admin/energy/", adminToken, gin.H{
		"type_energie":           "Solaire",
		"production_mensuelle":   400,
		"consommation_mensuelle": 150,
		"pompe_id":               pumpID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/admin/energy-production/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	energy := decodeList(t, rec)
	require.Len(t, energy, 1)
	assert.EqualValues(t, 400, energy[0]["total_production"])

	clientID := clientLogin["user_id"].(string)
	rec = env.do(http.MethodPost, "/admin/distributions/", adminToken, gin.H{
		"client_id": clientID,
		"pompe_id":  pumpID,
		"volume":    10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	distribution := decode(t, rec)
	assert.EqualValues(t, 15, distribution["montant"])
	invoiceID := distribution["facture_id"].(string)

	rec = env.do(http.MethodGet, "/admin/dashboard/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode(t, rec)
	assert.EqualValues(t, 15, stats["revenus_mensuels"])
	assert.EqualValues(t, 1, stats["pompes_actives"])
	assert.EqualValues(t, 1, stats["total_reservoirs"])

	rec = env.do(http.MethodGet, "/admin/distribution-monthly/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	months := decodeList(t, rec)
	require.Len(t, months, 1)
	assert.Equal(t, "2026-05", months[0]["mois"])
	assert.EqualValues(t, 10, months[0]["total_volume"])

	rec = env.do(http.MethodGet, "/admin/distribution-monthly/export/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, rec.Body.Len())

	rec = env.do(http.MethodGet, "/client/dashboard/", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dashboard := decode(t, rec)
	info := dashboard["client_info"].(map[string]any)
	assert.EqualValues(t, 15, info["solde"])
	assert.EqualValues(t, 10, info["volume_consomme"])
	assert.Len(t, dashboard["commandes"], 1)
	assert.Len(t, dashboard["factures"], 1)

	rec = env.do(http.MethodGet, "/client/invoices/"+invoiceID+"/pdf/", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = env.do(http.MethodGet, "/client/invoices/"+invoiceID+"/pdf/", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/admin/audit-logs/?action=distribution.record", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)
}

func TestOversizedQuantitiesKeepReadsHealthy(t *testing.T) {
	env := newTestEnv(t, 10)
	env.registerClient(clientEmail, "Awa Ndiaye")
	adminToken, _ := env.login(adminEmail, adminPassword)
	clientToken, clientLogin := env.login(clientEmail, clientPass)

	for i := 0; i < 2; i++ {
		rec := env.do(http.MethodPost, "/admin/water-sources/", adminToken, gin.H{
			"type_source":    "Forage",
			"nom":            "Forage Nord",
			"qualite_eau":    "Bonne",
			"volume_fournit": 1e308,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation_error", errorType(t, rec))
	}

	rec := env.do(http.MethodPost, "/admin/distributions/", adminToken, gin.H{
		"client_id": clientLogin["user_id"].(string),
		"volume":    1.7e308,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorType(t, rec))

	rec = env.do(http.MethodGet, "/home-stats/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = env.do(http.MethodGet, "/admin/dashboard/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.EqualValues(t, 0, decode(t, rec)["revenus_mensuels"])
	rec = env.do(http.MethodGet, "/client/dashboard/", clientToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []any{}, decode(t, rec)["commandes"])
}

func TestAlertLifecycle(t *testing.T) {
	env := newTestEnv(t, 10)
	adminToken, _ := env.login(adminEmail, adminPassword)

	rec := env.do(http.MethodPost, "/admin/alerts/", adminToken, gin.H{"message": "Niveau bas", "type_alerte": "niveau"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	alertID := decode(t, rec)["data"].(map[string]any)["id"].(string)

	rec = env.do(http.MethodGet, "/admin/alerts/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeList(t, rec), 1)

	rec = env.do(http.MethodPost, "/admin/alerts/"+alertID+"/resolve/", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/admin/alerts/"+alertID+"/resolve/", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPost, "/admin/alerts/12345/resolve/", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/admin/dashboard/", adminToken, nil)
	assert.EqualValues(t, 0, decode(t, rec)["alertes_non_resolues"])
}
