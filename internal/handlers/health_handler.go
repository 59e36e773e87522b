package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
}

// NewHealthHandler accepts a nil db for the in-memory store.
func NewHealthHandler(db Pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	database := "ok"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			status = http.StatusServiceUnavailable
			database = "unavailable"
		}
	} else {
		database = "memory"
	}

	c.JSON(status, gin.H{
		"status":   http.StatusText(status),
		"database": database,
		"version":  h.version,
	})
}
