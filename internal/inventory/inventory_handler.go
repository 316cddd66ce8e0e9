package inventory

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	Repository *InventSumRepository
}

func NewInventoryHandler(r *InventSumRepository) *InventoryHandler {
	return &InventoryHandler{Repository: r}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/inventory", h.GetInventory)
	router.GET("/inventory/:itemId", h.GetItemInventory)
	router.GET("/inventory/:itemId/history", h.GetItemHistory)
}

func (h *InventoryHandler) GetInventory(c *gin.Context) {
	sums, err := h.Repository.GetSums()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, sums)
}

func (h *InventoryHandler) GetItemInventory(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supply item ID"})
		return
	}

	sum, err := h.Repository.GetSumByItem(itemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch inventory"})
		return
	}
	if sum == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "No inventory recorded for supply item"})
		return
	}

	c.JSON(http.StatusOK, sum)
}

func (h *InventoryHandler) GetItemHistory(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid supply item ID"})
		return
	}

	history, err := h.Repository.GetHistoryByItem(itemID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch inventory history"})
		return
	}

	c.JSON(http.StatusOK, history)
}
