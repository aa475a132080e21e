package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/userbase/internal/auth"
	"github.com/avasiliev/userbase/internal/config"
	"github.com/avasiliev/userbase/internal/database"
	"github.com/avasiliev/userbase/internal/database/users"
)

// setupTestApp wires the full router against a throwaway database file.
func setupTestApp(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	sqlDB, err := db.SQLDB()
	require.NoError(t, err)

	authCfg := config.Auth{
		SessionLifetime: 24 * time.Hour,
		BcryptCost:      4, // Low cost for faster tests
	}

	usersRepo := users.NewRepository(db.DB)
	hasher := auth.NewHasher(authCfg.BcryptCost)
	authService := auth.NewService(usersRepo, hasher)
	sessionManager := auth.NewSessionManager(sqlDB, authCfg)
	authMiddleware := auth.NewMiddleware(authService, sessionManager)

	router := NewRouter(RouterConfig{
		Database:       db,
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		UserStore:      usersRepo,
		Hasher:         hasher,
		Version:        "test",
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, cleanup
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(router *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// sessionCookie extracts the session cookie from a response, failing the test
// when it is missing.
func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "session" {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerAndLogin registers a user and returns its id plus the session
// cookie from the registration response.
func registerAndLogin(t *testing.T, router *gin.Engine, email, password string) (uint, *http.Cookie) {
	t.Helper()

	rr := doJSON(router, http.MethodPost, "/auth/register", gin.H{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	return resp.User.ID, sessionCookie(t, rr)
}
