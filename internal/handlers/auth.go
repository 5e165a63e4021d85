package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/services/admin"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login exchanges the admin password for a bearer token.
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Admin password"
// @Success 200 {object} admin.LoginResult
// @Failure 400 {object} xerr.Response
// @Failure 401 {object} xerr.Response
// @Router /api/auth/login [post]
func Login(svc admin.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if svc.Enabled() {
			if err := c.ShouldBindJSON(&req); err != nil {
				xerr.Error(c, http.StatusBadRequest, xerr.ErrInvalidParams.Error())
				return
			}
		}
		res, err := svc.Login(c.Request.Context(), req.Password)
		if err != nil {
			fail(c, err, xerr.MsgLoginFailed)
			return
		}
		xerr.Success(c, http.StatusOK, res)
	}
}
