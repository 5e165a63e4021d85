package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/services/share"
)

// PublicTir serves the dossier behind a tir share token.
// @Summary Shared truck
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} models.TirDetail
// @Failure 404 {object} xerr.Response
// @Router /api/public/tir/{token} [get]
func PublicTir(svc share.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.ResolveTir(c.Request.Context(), c.Param("token"))
		if err != nil {
			fail(c, err, xerr.MsgPublicTirFailed)
			return
		}
		xerr.Success(c, http.StatusOK, detail)
	}
}

// PublicList serves the reduced truck list behind a list share token.
// @Summary Shared truck list
// @Tags public
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {array} models.PublicTir
// @Failure 404 {object} xerr.Response
// @Router /api/public/list/{token} [get]
func PublicList(svc share.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.ResolveList(c.Request.Context(), c.Param("token"))
		if err != nil {
			fail(c, err, xerr.MsgPublicListFailed)
			return
		}
		xerr.Success(c, http.StatusOK, list)
	}
}
