package checking

import (
	"errors"
	"net/http"
	"strconv"

	custom_error "supplyhouse/pkg/errors"
	"supplyhouse/pkg/models"

	"github.com/gin-gonic/gin"
)

type CheckingHandler struct {
	Service *CheckingService
}

func NewHandler(s *CheckingService) *CheckingHandler {
	return &CheckingHandler{Service: s}
}

func (h *CheckingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/checkings", h.CreateChecking)
	router.GET("/checkings/:id", h.GetChecking)
	router.POST("/checkings/:id/conclude", h.ConcludeChecking)
	router.POST("/checkings/:id/revert", h.RevertChecking)
}

func (h *CheckingHandler) CreateChecking(c *gin.Context) {
	var req CreateCheckingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	for _, line := range req.Lines {
		if !line.ReceivedQty.IsPositive() {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "Received quantity must be positive",
				"path":  "lines",
			})
			return
		}
	}

	checking, err := h.Service.CreateChecking(req)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to create checking"})
		return
	}

	c.JSON(http.StatusCreated, checking)
}

func (h *CheckingHandler) GetChecking(c *gin.Context) {
	checkingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid checking ID"})
		return
	}

	checking, err := h.Service.GetChecking(checkingID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch checking"})
		return
	}
	if checking == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Checking not found"})
		return
	}

	c.JSON(http.StatusOK, checking)
}

func (h *CheckingHandler) ConcludeChecking(c *gin.Context) {
	h.runTransition(c, h.Service.ConcludeChecking)
}

func (h *CheckingHandler) RevertChecking(c *gin.Context) {
	h.runTransition(c, h.Service.RevertChecking)
}

func (h *CheckingHandler) runTransition(c *gin.Context, transition func(int) (*models.InventTransfer, error)) {
	checkingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid checking ID"})
		return
	}

	transfer, err := transition(checkingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCheckingNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Checking not found"})
		case custom_error.IsInvalidState(err):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
		case custom_error.IsEmptyDocument(err):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to transition checking"})
		}
		return
	}

	c.JSON(http.StatusOK, transfer)
}
