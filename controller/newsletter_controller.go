package controller

import (
	"errors"
	"net/http"
	"strconv"

	"kishi-backend/models"
	"kishi-backend/repository"
	"kishi-backend/services"
	"kishi-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type NewsletterController struct {
	service services.NewsletterServiceInterface
	config  *models.Config
	logger  logger.Logger
}

func NewNewsletterController(service services.NewsletterServiceInterface, cfg *models.Config, log logger.Logger) *NewsletterController {
	return &NewsletterController{
		service: service,
		config:  cfg,
		logger:  log,
	}
}

// Subscribe handles POST /api/newsletter
// @Summary Subscribe to the newsletter
// @Description Validate and persist a newsletter signup; duplicates are rejected
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param request body models.NewsletterRequest true "Subscription request"
// @Success 200 {object} models.APIResponse "Subscription recorded"
// @Failure 400 {object} models.APIErrorResponse "Missing or malformed email"
// @Failure 409 {object} models.APIErrorResponse "Email already subscribed"
// @Failure 500 {object} models.APIErrorResponse "Storage failure"
// @Router /newsletter [post]
func (h *NewsletterController) Subscribe(c *gin.Context) {
	var req models.NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.config, http.StatusBadRequest, "Email is required", nil)
		return
	}

	subscriber, err := h.service.Subscribe(c.Request.Context(), &req, requestMeta(c))
	switch {
	case errors.Is(err, services.ErrMissingFields):
		respondError(c, h.config, http.StatusBadRequest, "Email is required", nil)
		return
	case errors.Is(err, services.ErrInvalidEmail):
		respondError(c, h.config, http.StatusBadRequest, "Invalid email format", nil)
		return
	case errors.Is(err, repository.ErrDuplicateEmail):
		respondError(c, h.config, http.StatusConflict, "Email is already subscribed to our newsletter", nil)
		return
	case err != nil:
		h.logger.Errorf("Error processing newsletter subscription: %v", err)
		respondError(c, h.config, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Successfully subscribed to newsletter",
		ID:      subscriber.ID,
	})
}

// List handles GET /api/newsletter (admin only)
// @Summary List newsletter subscribers
// @Description Retrieve subscribers newest-first, optionally filtered by status
// @Tags Newsletter
// @Security AdminKey
// @Produce json
// @Param status query string false "Status filter (all, active, unsubscribed)" default(active)
// @Param limit query int false "Maximum records to return" default(100)
// @Success 200 {object} models.APIListResponse "Subscribers retrieved"
// @Failure 500 {object} models.APIErrorResponse "Storage failure"
// @Router /newsletter [get]
func (h *NewsletterController) List(c *gin.Context) {
	status := c.DefaultQuery("status", string(models.SubscriberStatusActive))

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}

	subscribers, err := h.service.ListSubscribers(c.Request.Context(), status, limit)
	if err != nil {
		h.logger.Errorf("Error fetching newsletter subscribers: %v", err)
		respondError(c, h.config, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if subscribers == nil {
		subscribers = []*models.NewsletterSubscriber{}
	}

	c.JSON(http.StatusOK, models.APIListResponse{
		Success: true,
		Data:    subscribers,
		Count:   len(subscribers),
	})
}

// Unsubscribe handles DELETE /api/newsletter/:id
// @Summary Unsubscribe from the newsletter
// @Description Transition the subscriber for the given email to unsubscribed; the record is kept
// @Tags Newsletter
// @Accept json
// @Produce json
// @Param id path string true "Subscriber ID"
// @Param request body models.UnsubscribeRequest true "Subscriber email"
// @Success 200 {object} models.APIResponse "Unsubscribed"
// @Failure 400 {object} models.APIErrorResponse "Missing email"
// @Failure 404 {object} models.APIErrorResponse "Email not found"
// @Failure 500 {object} models.APIErrorResponse "Storage failure"
// @Router /newsletter/{id} [delete]
func (h *NewsletterController) Unsubscribe(c *gin.Context) {
	var req models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.config, http.StatusBadRequest, "Email is required for unsubscription", nil)
		return
	}

	err := h.service.Unsubscribe(c.Request.Context(), req.Email)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		respondError(c, h.config, http.StatusBadRequest, "Email is required for unsubscription", nil)
		return
	case errors.Is(err, repository.ErrSubscriberNotFound):
		respondError(c, h.config, http.StatusNotFound, "Email not found in newsletter subscribers", nil)
		return
	case err != nil:
		h.logger.Errorf("Error processing newsletter unsubscription: %v", err)
		respondError(c, h.config, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Successfully unsubscribed from newsletter",
	})
}
