package httptransport

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"venuebook/internal/service/gallery"
)

func (h *handler) listGallery(c *gin.Context) {
	items, err := h.Gallery.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.writeError(c, "list gallery", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handler) adminCreateGalleryItem(c *gin.Context) {
	var in gallery.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	item, err := h.Gallery.Create(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, "create gallery item", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handler) adminUpdateGalleryItem(c *gin.Context) {
	id, ok := int64Param(c)
	if !ok {
		return
	}
	var in gallery.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	item, err := h.Gallery.Update(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, "update gallery item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handler) adminDeleteGalleryItem(c *gin.Context) {
	id, ok := int64Param(c)
	if !ok {
		return
	}
	if err := h.Gallery.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, "delete gallery item", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func int64Param(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorBody("invalid id"))
		return 0, false
	}
	return id, true
}
