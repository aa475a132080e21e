package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avasiliev/userbase/internal/config"
	"github.com/avasiliev/userbase/internal/database/users"
	"github.com/avasiliev/userbase/internal/entities"
)

const unauthenticatedBody = `{"error":"Not authenticated"}`

func setupMiddlewareRouter(t *testing.T) (*gin.Engine, *entities.User, *SessionManager) {
	t.Helper()

	db, sqlDB := setupSessionTestDB(t)

	repo := users.NewRepository(db)
	hasher := NewHasher(4) // Low cost for faster tests
	service := NewService(repo, hasher)
	sm := NewSessionManager(sqlDB, config.Auth{
		SessionLifetime: 24 * time.Hour,
	})
	middleware := NewMiddleware(service, sm)

	user, err := service.Register("alice@example.com", "pw123")
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}

	router := gin.New()
	router.Use(sm.LoadAndSave())

	router.POST("/login", func(c *gin.Context) {
		if err := sm.CreateSession(c.Request, user); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	// Creates a session that carries no user id claim
	router.POST("/anonymous-session", func(c *gin.Context) {
		sm.Put(c.Request.Context(), "unrelated", "value")
		c.Status(http.StatusOK)
	})

	protected := router.Group("/protected")
	protected.Use(middleware.RequireAuth())
	protected.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "email": GetEmail(c)})
	})

	return router, user, sm
}

func sessionCookieFrom(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rr.Result().Cookies() {
		if ck.Name == "session" {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestRequireAuth_NoSession(t *testing.T) {
	router, _, _ := setupMiddlewareRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != unauthenticatedBody {
		t.Errorf("body = %s, want %s", body, unauthenticatedBody)
	}
}

func TestRequireAuth_BogusCookie(t *testing.T) {
	router, _, _ := setupMiddlewareRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "not-a-real-token"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != unauthenticatedBody {
		t.Errorf("body = %s, want %s", body, unauthenticatedBody)
	}
}

func TestRequireAuth_SessionWithoutUserID(t *testing.T) {
	router, _, _ := setupMiddlewareRouter(t)

	// Establish a session that has data but no user id claim
	req := httptest.NewRequest(http.MethodPost, "/anonymous-session", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	cookie := sessionCookieFrom(t, rr)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != unauthenticatedBody {
		t.Errorf("body = %s, want %s", body, unauthenticatedBody)
	}
}

func TestRequireAuth_Authenticated(t *testing.T) {
	router, user, _ := setupMiddlewareRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	cookie := sessionCookieFrom(t, rr)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), user.Email) {
		t.Errorf("body = %s, want it to contain %s", rr.Body.String(), user.Email)
	}
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	db, sqlDB := setupSessionTestDB(t)

	repo := users.NewRepository(db)
	service := NewService(repo, NewHasher(4))
	sm := NewSessionManager(sqlDB, config.Auth{SessionLifetime: time.Hour})
	middleware := NewMiddleware(service, sm)

	user, err := service.Register("gone@example.com", "pw123")
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}

	router := gin.New()
	router.Use(sm.LoadAndSave())
	router.POST("/login", func(c *gin.Context) {
		_ = sm.CreateSession(c.Request, user)
		c.Status(http.StatusOK)
	})
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	cookie := sessionCookieFrom(t, rr)

	// Session survives but the account is gone
	if err := repo.Delete(user.ID); err != nil {
		t.Fatalf("failed to delete user: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(cookie)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted account, got %d", rr.Code)
	}
}
