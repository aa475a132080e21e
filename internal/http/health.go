package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avasiliev/userbase/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status reports service health. The database check pings the underlying
// connection; the sessions check verifies the session table is queryable, so
// a broken session store surfaces here before it surfaces as login failures.
func (h *HealthController) Status(c *gin.Context) {
	checks := map[string]string{
		"database": h.checkDatabase(),
		"sessions": h.checkSessions(),
	}

	status := "healthy"
	code := http.StatusOK
	for _, result := range checks {
		if result != "ok" {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			break
		}
	}

	c.IndentedJSON(code, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	})
}

func (h *HealthController) checkDatabase() string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.SQLDB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func (h *HealthController) checkSessions() string {
	if h.db == nil {
		return "not configured"
	}
	sqlDB, err := h.db.SQLDB()
	if err != nil {
		return "error: " + err.Error()
	}
	var n int64
	if err := sqlDB.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
