package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gmi-lojistik/tir-takip/internal/models"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"github.com/gmi-lojistik/tir-takip/internal/services/share"
)

// CreateShareRequest is the optional body of the share creation endpoints.
type CreateShareRequest struct {
	ExpiryDate models.OptionalTime `json:"expiryDate" swaggertype:"string" example:"2026-12-31T23:59"`
}

// bindShareBody decodes an optional JSON body. An empty body is allowed.
func bindShareBody(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, models.ErrInvalidTimestamp) {
			return xerr.ErrInvalidExpiryFormat
		}
		return xerr.ErrInvalidParams
	}
	return nil
}

// CreateTirShare issues a link to one truck.
// @Summary Share truck
// @Tags share
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Truck id"
// @Param request body CreateShareRequest false "Optional expiry"
// @Success 201 {object} models.ShareLink
// @Failure 400 {object} xerr.Response
// @Failure 404 {object} xerr.Response
// @Router /api/tirs/{id}/share [post]
func CreateTirShare(svc share.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateShareRequest
		if err := bindShareBody(c, &req); err != nil {
			fail(c, err, xerr.MsgCreateTirShareFailed)
			return
		}
		link, err := svc.CreateTirShare(c.Request.Context(), c.Param("id"), req.ExpiryDate.Time)
		if err != nil {
			fail(c, err, xerr.MsgCreateTirShareFailed)
			return
		}
		xerr.Success(c, http.StatusCreated, link)
	}
}

// CreateListShare issues a link to the truck list.
// @Summary Share truck list
// @Tags share
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateShareRequest false "Optional expiry"
// @Success 201 {object} models.ShareLink
// @Failure 400 {object} xerr.Response
// @Router /api/share/list [post]
func CreateListShare(svc share.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateShareRequest
		if err := bindShareBody(c, &req); err != nil {
			fail(c, err, xerr.MsgCreateListShareFailed)
			return
		}
		link, err := svc.CreateListShare(c.Request.Context(), req.ExpiryDate.Time)
		if err != nil {
			fail(c, err, xerr.MsgCreateListShareFailed)
			return
		}
		xerr.Success(c, http.StatusCreated, link)
	}
}

// ListShareLinks
// @Summary List share links by type
// @Tags share
// @Produce json
// @Security BearerAuth
// @Param type path string true "tir or list"
// @Success 200 {array} models.ShareLink
// @Failure 400 {object} xerr.Response
// @Router /api/share/{type} [get]
func ListShareLinks(svc share.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := svc.ListShareLinks(c.Request.Context(), models.ShareType(c.Param("type")))
		if err != nil {
			fail(c, err, xerr.MsgListSharesFailed)
			return
		}
		xerr.Success(c, http.StatusOK, links)
	}
}

// UpdateShareLink toggles a link or changes its expiry.
// @Summary Update share link
// @Tags share
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Share link id"
// @Param request body models.ShareLinkPatch true "active and/or expiryDate; expiryDate null clears it"
// @Success 200 {object} models.ShareLink
// @Failure 400 {object} xerr.Response
// @Failure 404 {object} xerr.Response
// @Router /api/share/{id} [patch]
func UpdateShareLink(svc share.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ShareLinkPatch
		if err := bindShareBody(c, &req); err != nil {
			fail(c, err, xerr.MsgUpdateShareFailed)
			return
		}
		link, err := svc.UpdateShareLink(c.Request.Context(), c.Param("id"), &req)
		if err != nil {
			fail(c, err, xerr.MsgUpdateShareFailed)
			return
		}
		xerr.Success(c, http.StatusOK, link)
	}
}

// DeleteShareLink
// @Summary Delete share link
// @Tags share
// @Produce json
// @Security BearerAuth
// @Param id path string true "Share link id"
// @Success 200 {object} xerr.MessageResponse
// @Failure 404 {object} xerr.Response
// @Router /api/share/{id} [delete]
func DeleteShareLink(svc share.ShareService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteShareLink(c.Request.Context(), c.Param("id")); err != nil {
			fail(c, err, xerr.MsgDeleteShareFailed)
			return
		}
		xerr.Message(c, http.StatusOK, xerr.MsgShareLinkDeleted)
	}
}
