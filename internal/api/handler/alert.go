package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elisa-a-v/courtlistener/internal/domain"
	"github.com/elisa-a-v/courtlistener/internal/repository"
)

// AlertHandler handles docket alert subscription endpoints.
type AlertHandler struct {
	alerts *repository.AlertRepository
}

// NewAlertHandler creates a new alert handler.
func NewAlertHandler(alerts *repository.AlertRepository) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

type subscribeRequest struct {
	DocketID int64 `json:"docket_id" binding:"required"`
	UserID   int64 `json:"user_id" binding:"required"`
}

// Subscribe handles POST /api/v1/alerts.
func (h *AlertHandler) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	alert := &domain.DocketAlert{
		DocketID: req.DocketID,
		UserID:   req.UserID,
	}
	if err := h.alerts.Subscribe(c.Request.Context(), alert); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, alert)
}

// Unsubscribe handles DELETE /api/v1/alerts.
func (h *AlertHandler) Unsubscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.alerts.Unsubscribe(c.Request.Context(), req.DocketID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /api/v1/alerts.
func (h *AlertHandler) List(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'user_id' is required"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	alerts, err := h.alerts.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}
