package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/middleware"
	"storynest/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CustomizationHandler struct {
	svc service.CustomizationService
}

func NewCustomizationHandler(svc service.CustomizationService) *CustomizationHandler {
	return &CustomizationHandler{svc: svc}
}

// RegisterRoutes wires the personalization endpoints; all of them require a
// logged-in user, ownership is enforced in the service.
func (h *CustomizationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/customize/", h.Create)
	rg.GET("/listcustomizations/", h.List)
	rg.GET("/customizations/:id/", h.Get)
	rg.DELETE("/customizations/:id/delete/", h.Delete)
	rg.GET("/customizations/:id/file/", h.File)
	rg.GET("/customizations/:id/child-image/", h.ChildImage)
}

// Create handles the multipart personalization request: book id and child
// details plus an optional "child_image" part.
func (h *CustomizationHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CustomizeRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	childImage, _ := c.FormFile("child_image")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	custom, err := h.svc.Create(ctx, userID.(string), req, childImage)
	if err != nil {
		if err == service.ErrBookNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromCustomizationModel(*custom))
}

func (h *CustomizationHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.svc.List(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.CustomizationListResponse{Items: make([]dto.CustomizationResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.FromCustomizationModel(item))
	}
	resp.Total = len(resp.Items)

	c.JSON(http.StatusOK, resp)
}

func (h *CustomizationHandler) Get(c *gin.Context) {
	userID, id, ok := h.identify(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	custom, err := h.svc.Get(ctx, id, userID, middleware.IsAdmin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromCustomizationModel(*custom))
}

func (h *CustomizationHandler) Delete(c *gin.Context) {
	userID, id, ok := h.identify(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, id, userID, middleware.IsAdmin(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CustomizationHandler) File(c *gin.Context) {
	userID, id, ok := h.identify(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	path, err := h.svc.FilePath(ctx, id, userID, middleware.IsAdmin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.File(path)
}

func (h *CustomizationHandler) ChildImage(c *gin.Context) {
	userID, id, ok := h.identify(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	path, err := h.svc.ChildImagePath(ctx, id, userID, middleware.IsAdmin(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.File(path)
}

// identify extracts the caller and the :id path param, writing the error
// response itself when either is missing.
func (h *CustomizationHandler) identify(c *gin.Context) (string, int64, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", 0, false
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customization id"})
		return "", 0, false
	}

	return userID.(string), id, true
}

func (h *CustomizationHandler) writeError(c *gin.Context, err error) {
	switch err {
	case service.ErrCustomizationNotFound, service.ErrFileMissing:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.ErrNotOwner:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
