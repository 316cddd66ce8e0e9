package items

import (
	"net/http"
	"strconv"

	custom_error "supplyhouse/pkg/errors"

	"github.com/gin-gonic/gin"
)

type CreateSupplyItemRequest struct {
	SupplierID    int    `json:"supplier_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	UnitOfMeasure string `json:"unit_of_measure" binding:"required"`
}

type SupplyItemHandler struct {
	Repository SupplyItemRepository
}

func NewHandler(r SupplyItemRepository) *SupplyItemHandler {
	return &SupplyItemHandler{Repository: r}
}

func (h *SupplyItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/supply-items", h.CreateSupplyItem)
	router.GET("/supply-items", h.GetSupplyItems)
	router.GET("/supply-items/:id", h.GetSupplyItem)
}

func (h *SupplyItemHandler) CreateSupplyItem(c *gin.Context) {
	var req CreateSupplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	item, err := h.Repository.PersistSupplyItem(req)
	if err != nil {
		if _, ok := err.(*custom_error.ForeignKeyViolationError); ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to create supply item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *SupplyItemHandler) GetSupplyItems(c *gin.Context) {
	items, err := h.Repository.GetSupplyItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch supply items"})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *SupplyItemHandler) GetSupplyItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supply item ID"})
		return
	}

	item, err := h.Repository.GetSupplyItem(itemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch supply item"})
		return
	}
	if item == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Supply item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}
