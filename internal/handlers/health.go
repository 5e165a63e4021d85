package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/repositories"
)

// Ping
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Ready reports 200 once the metadata store is resolved, 503 before.
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health/ready [get]
func Ready(store *repositories.DeferredStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting", "store": store.Name()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "store": store.Name()})
	}
}
