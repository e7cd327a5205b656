package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfshare/shelfshare/internal/database"
)

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{db: db, version: version}
}

// Status reports process liveness and database reachability.
// GET /health
func (controller *HealthController) Status(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	if controller.db != nil {
		sqlDB, err := controller.db.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			status = "degraded"
			dbStatus = "unreachable"
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  controller.version,
	})
}
