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

type PurchaseHandler struct {
	svc service.PurchaseService
}

func NewPurchaseHandler(svc service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// RegisterRoutes wires the purchase workflow: customers create and track
// requests and read their library, admins review the queue.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purrequests/", h.Create)
	rg.GET("/purrequests/", h.ListMine)
	rg.GET("/userlibrary/", h.Library)

	admin := rg.Group("/admin", middleware.RequireAdmin())
	admin.GET("/requests/", h.ListAll)
	admin.POST("/requests/:id/process/", h.Process)
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	purchase, err := h.svc.Create(ctx, userID.(string), req)
	if err != nil {
		switch err {
		case service.ErrInvalidSelection:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case service.ErrBookNotFound, service.ErrCustomizationNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrNotOwner:
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case service.ErrDuplicateRequest:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromPurchaseModel(*purchase))
}

func (h *PurchaseHandler) ListMine(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.svc.ListMine(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.PurchaseListResponse{Items: make([]dto.PurchaseResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.FromPurchaseModel(item))
	}
	resp.Total = len(resp.Items)

	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseHandler) ListAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.svc.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.PurchaseListResponse{Items: make([]dto.PurchaseResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.FromPurchaseModel(item))
	}
	resp.Total = len(resp.Items)

	c.JSON(http.StatusOK, resp)
}

func (h *PurchaseHandler) Process(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}

	var req dto.ProcessPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	purchase, err := h.svc.Process(ctx, id, req.Action)
	if err != nil {
		switch err {
		case service.ErrPurchaseNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case service.ErrAlreadyProcessed, service.ErrUnknownAction:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromPurchaseModel(*purchase))
}

func (h *PurchaseHandler) Library(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	items, err := h.svc.Library(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.LibraryListResponse{Items: make([]dto.LibraryItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.FromLibraryItemModel(item))
	}
	resp.Total = len(resp.Items)

	c.JSON(http.StatusOK, resp)
}
