package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
	activityrepo "github.com/legatepro/legatepro/internal/activity/repository"
	activityservice "github.com/legatepro/legatepro/internal/activity/service"
	authdomain "github.com/legatepro/legatepro/internal/auth/domain"
	authrepo "github.com/legatepro/legatepro/internal/auth/repository"
	authservice "github.com/legatepro/legatepro/internal/auth/service"
	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/config"
	estatedomain "github.com/legatepro/legatepro/internal/estate/domain"
	estaterepo "github.com/legatepro/legatepro/internal/estate/repository"
	estateservice "github.com/legatepro/legatepro/internal/estate/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Session{},
		&estatedomain.Estate{},
		&estatedomain.Collaborator{},
		&activitydomain.Activity{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	cfg := config.Config{
		Environment:     "test",
		SessionTTLHours: 72,
	}
	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	authSvc := authservice.New(authservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fc,
		Cfg:   cfg,
		Repo:  authrepo.Provide(),
	})
	activitySvc := activityservice.New(activityservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fc,
		Repo:  activityrepo.Provide(),
	})
	estateSvc := estateservice.New(estateservice.Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fc,
		Repo:     estaterepo.Provide(),
		Activity: activitySvc,
	})

	engine := registerGin(cfg, zap.NewNop())
	NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		AuthSvc:     authSvc,
		EstateSvc:   estateSvc,
		ActivitySvc: activitySvc,
	})
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}

	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func loginCookies(t *testing.T, engine *gin.Engine) []*http.Cookie {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/auth/register", map[string]string{
		"email":    "probate@example.com",
		"password": "correct-horse",
		"name":     "Pat Lawyer",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/auth/login", map[string]string{
		"email":    "probate@example.com",
		"password": "correct-horse",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func TestAuthFlow(t *testing.T) {
	engine := newTestServer(t)
	cookies := loginCookies(t, engine)

	rec := doJSON(t, engine, http.MethodGet, "/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Data struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "probate@example.com", me.Data.Email)
	assert.Equal(t, "Pat Lawyer", me.Data.Name)

	rec = doJSON(t, engine, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newTestServer(t)
	loginCookies(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/auth/login", map[string]string{
		"email":    "probate@example.com",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestEstateRoutes(t *testing.T) {
	engine := newTestServer(t)
	cookies := loginCookies(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/estates", map[string]string{
		"display_name": "Estate of Jane Doe",
		"case_number":  "PR-2026-0042",
	}, cookies)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID     snowflake.ID `json:"id"`
			Status string       `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.Data.ID)
	assert.Equal(t, estatedomain.StatusOpen, created.Data.Status)

	rec = doJSON(t, engine, http.MethodGet, "/api/estates/"+created.Data.ID.String(), nil, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/estates", nil, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEstateErrorMapping(t *testing.T) {
	engine := newTestServer(t)
	cookies := loginCookies(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/api/estates", map[string]string{
		"case_number": "PR-2026-0042",
	}, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/estates/123456789", nil, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/estates/not-a-snowflake", nil, cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/estates", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	engine := newTestServer(t)
	cookies := loginCookies(t, engine)

	rec := doJSON(t, engine, http.MethodPost, "/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/auth/me", nil, cookies)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
