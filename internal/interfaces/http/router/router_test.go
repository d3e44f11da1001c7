package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appservice "github.com/vigiaai/vigia-provision/internal/application/service"
	"github.com/vigiaai/vigia-provision/internal/config"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/crypto"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/events"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/marketplace"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/monitoring"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/persistence/postgres"
	"github.com/vigiaai/vigia-provision/internal/infrastructure/persistence/rediscache"
	"github.com/vigiaai/vigia-provision/internal/interfaces/http/handlers"
	"github.com/vigiaai/vigia-provision/pkg/constants"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, postgres.AutoMigrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	cfg := &config.Config{
		Server: config.ServerConfig{DevMode: true},
		Session: config.SessionConfig{
			Secret:   "test-secret",
			Issuer:   constants.DefaultIssuer,
			TokenTTL: 12 * time.Hour,
		},
		Marketplace: config.MarketplaceConfig{Mode: "static"},
	}

	log := logger.NewNopLogger()
	registry := prometheus.NewRegistry()
	metrics := monitoring.NewMetrics(registry)

	tenantRepo := postgres.NewTenantRepository(db, metrics, log)
	userRepo := postgres.NewUserRepository(db, log)
	eniRepo := postgres.NewNetworkIdentityRepository(db, log)
	detectionRepo := postgres.NewDetectionRepository(db, log)
	lookupCache := rediscache.NewLookupCache(redisClient, time.Minute, log)
	sessions := crypto.NewSessionTokenManager(&cfg.Session, log)

	provisioningSvc := appservice.NewProvisioningService(
		marketplace.NewStaticResolver(), tenantRepo, userRepo, sessions, metrics, log)
	authSvc := appservice.NewAuthService(userRepo, sessions, metrics, log)
	eniSvc := appservice.NewENIService(eniRepo, log)
	detectionSvc := appservice.NewDetectionService(
		detectionRepo, tenantRepo, eniRepo, lookupCache, events.NewNopPublisher(), metrics, log)

	return New(cfg, Handlers{
		Provisioning: handlers.NewProvisioningHandler(provisioningSvc),
		Auth:         handlers.NewAuthHandler(authSvc),
		ENI:          handlers.NewENIHandler(eniSvc),
		Detection:    handlers.NewDetectionHandler(detectionSvc),
		Health:       handlers.NewHealthHandler(db, redisClient, "test"),
	}, sessions, metrics, registry, log)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestFullProvisioningFlowOverHTTP(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/marketplace/register?token=tok-C1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reg := decode(t, rec)
	tenantID := reg["tenant_id"].(string)
	assert.Equal(t, "PENDING_PROFILE", reg["status"])
	assert.NotNil(t, reg["vni"])

	rec = doJSON(t, engine, http.MethodPost, "/marketplace/complete-profile", "", map[string]string{
		"tenant_id": tenantID,
		"email":     "A@x.com",
		"password":  "p",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/auth/login", "", map[string]string{
		"tenant_id": tenantID,
		"email":     "A@X.com",
		"password":  "p",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decode(t, rec)
	token := login["access_token"].(string)
	assert.Equal(t, "bearer", login["token_type"])

	rec = doJSON(t, engine, http.MethodPost, "/enis/register", token, map[string]interface{}{
		"eni_ids": []string{"eni-1", "eni-2"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	enis := decode(t, rec)
	assert.EqualValues(t, 2, enis["inserted"])
	assert.EqualValues(t, 0, enis["skipped"])

	rec = doJSON(t, engine, http.MethodPost, "/ingest/detection", "", map[string]interface{}{
		"eni_id":      "eni-1",
		"source_ip":   "10.0.0.1",
		"label":       "MALWARE",
		"probability": "92.1%",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	ingest := decode(t, rec)
	assert.Equal(t, true, ingest["stored"])
	assert.Equal(t, tenantID, ingest["tenant_id"])

	rec = doJSON(t, engine, http.MethodGet, "/detections", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "MALWARE", listed[0]["label"])

	rec = doJSON(t, engine, http.MethodDelete, "/enis/eni-2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "eni-2", decode(t, rec)["deleted"])

	rec = doJSON(t, engine, http.MethodGet, "/enis", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRejectMissingOrBadToken(t *testing.T) {
	engine := newTestServer(t)

	for _, token := range []string{"", "garbage"} {
		rec := doJSON(t, engine, http.MethodGet, "/detections", token, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "auth_error", body["error"])
		assert.Equal(t, "invalid credentials or token", body["message"])
	}
}

func TestIngestWithoutIdentityIsBadRequest(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/ingest/detection", "", map[string]interface{}{
		"source_ip":   "10.0.0.1",
		"label":       "MALWARE",
		"probability": "92.1%",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode(t, rec)["error"])
}

func TestRegisterWithoutTokenIsBadRequest(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/marketplace/register", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWithBadCredentialsIsUnauthorized(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/auth/login", "", map[string]string{
		"tenant_id": "t1",
		"email":     "a@x.com",
		"password":  "p",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStubRegisterAvailableInDevMode(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/dev/stub-register", "", map[string]string{
		"customer_identifier": "C-dev",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PENDING_PROFILE", decode(t, rec)["status"])
}

func TestHealthEndpoints(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
