// Package handlers holds the gin endpoints. Each handler parses the request,
// calls one service operation and shapes the reply; failures go through fail.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"go.uber.org/zap"
)

// fail logs internal failures and writes the mapped error reply.
func fail(c *gin.Context, err error, fallback string) {
	if xerr.StatusOf(err) == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	xerr.Fail(c, err, fallback)
}
