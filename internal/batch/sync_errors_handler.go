package batch

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SyncErrorsHandler exposes the quarantine for operators.
type SyncErrorsHandler struct {
	Repository TransferErrorRepository
}

func NewSyncErrorsHandler(r TransferErrorRepository) *SyncErrorsHandler {
	return &SyncErrorsHandler{Repository: r}
}

func (h *SyncErrorsHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/sync/errors", h.GetErrors)
}

func (h *SyncErrorsHandler) GetErrors(c *gin.Context) {
	errs, err := h.Repository.GetAll()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch transfer errors"})
		return
	}

	c.JSON(http.StatusOK, errs)
}
