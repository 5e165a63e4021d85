package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/services/tir"
)

// ListTirs returns every truck with its document count.
// @Summary List trucks
// @Tags tirs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.TirSummary
// @Failure 500 {object} xerr.Response
// @Router /api/tirs [get]
func ListTirs(svc tir.TirService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tirs, err := svc.ListTirs(c.Request.Context())
		if err != nil {
			fail(c, err, xerr.MsgListTirsFailed)
			return
		}
		xerr.Success(c, http.StatusOK, tirs)
	}
}

// GetTir returns one truck with its documents.
// @Summary Get truck dossier
// @Tags tirs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Truck id"
// @Success 200 {object} models.TirDetail
// @Failure 404 {object} xerr.Response
// @Failure 500 {object} xerr.Response
// @Router /api/tirs/{id} [get]
func GetTir(svc tir.TirService) gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, err := svc.GetTir(c.Request.Context(), c.Param("id"))
		if err != nil {
			fail(c, err, xerr.MsgGetTirFailed)
			return
		}
		xerr.Success(c, http.StatusOK, detail)
	}
}

// CreateTir
// @Summary Create truck
// @Tags tirs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.InsertTir true "Truck"
// @Success 201 {object} models.Tir
// @Failure 400 {object} xerr.Response
// @Failure 500 {object} xerr.Response
// @Router /api/tirs [post]
func CreateTir(svc tir.TirService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.InsertTir
		if err := c.ShouldBindJSON(&req); err != nil {
			xerr.Error(c, http.StatusBadRequest, xerr.ErrInvalidTir.Error())
			return
		}
		t, err := svc.CreateTir(c.Request.Context(), &req)
		if err != nil {
			fail(c, err, xerr.MsgCreateTirFailed)
			return
		}
		xerr.Success(c, http.StatusCreated, t)
	}
}

// UpdateTir applies a partial update.
// @Summary Update truck
// @Tags tirs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Truck id"
// @Param request body models.TirPatch true "Fields to change"
// @Success 200 {object} models.Tir
// @Failure 400 {object} xerr.Response
// @Failure 404 {object} xerr.Response
// @Router /api/tirs/{id} [patch]
func UpdateTir(svc tir.TirService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.TirPatch
		if err := c.ShouldBindJSON(&req); err != nil {
			xerr.Error(c, http.StatusBadRequest, xerr.ErrInvalidTir.Error())
			return
		}
		t, err := svc.UpdateTir(c.Request.Context(), c.Param("id"), &req)
		if err != nil {
			fail(c, err, xerr.MsgUpdateTirFailed)
			return
		}
		xerr.Success(c, http.StatusOK, t)
	}
}

// DeleteTir removes the truck, its documents and its share links.
// @Summary Delete truck
// @Tags tirs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Truck id"
// @Success 200 {object} xerr.MessageResponse
// @Failure 404 {object} xerr.Response
// @Router /api/tirs/{id} [delete]
func DeleteTir(svc tir.TirService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteTir(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err, xerr.MsgDeleteTirFailed)
			return
		}
		xerr.Message(c, http.StatusOK, xerr.MsgTirDeleted)
	}
}
