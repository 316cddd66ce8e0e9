package suppliers

import (
	"net/http"

	custom_error "supplyhouse/pkg/errors"

	"github.com/gin-gonic/gin"
)

type CreateSupplierRequest struct {
	Name     string `json:"name" binding:"required"`
	Document string `json:"document" binding:"required"`
}

type SupplierHandler struct {
	Repository SupplierRepository
}

func NewHandler(r SupplierRepository) *SupplierHandler {
	return &SupplierHandler{Repository: r}
}

func (h *SupplierHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/suppliers", h.CreateSupplier)
	router.GET("/suppliers", h.GetSuppliers)
}

func (h *SupplierHandler) CreateSupplier(c *gin.Context) {
	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	supplier, err := h.Repository.PersistSupplier(req)
	if err != nil {
		if _, ok := err.(*custom_error.UniqueViolationError); ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.Repository.GetSuppliers()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch suppliers"})
		return
	}

	c.JSON(http.StatusOK, suppliers)
}
