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

type ContactController struct {
	service services.ContactServiceInterface
	config  *models.Config
	logger  logger.Logger
}

func NewContactController(service services.ContactServiceInterface, cfg *models.Config, log logger.Logger) *ContactController {
	return &ContactController{
		service: service,
		config:  cfg,
		logger:  log,
	}
}

// Submit handles POST /api/contact
// @Summary Submit a contact form
// @Description Validate and persist a contact inquiry, then notify the team by email (best effort)
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body models.ContactRequest true "Contact submission"
// @Success 200 {object} models.APIResponse "Submission recorded"
// @Failure 400 {object} models.APIErrorResponse "Missing or malformed fields"
// @Failure 500 {object} models.APIErrorResponse "Storage failure"
// @Router /contact [post]
func (h *ContactController) Submit(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.config, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	submission, err := h.service.SubmitContact(c.Request.Context(), &req, requestMeta(c))
	switch {
	case errors.Is(err, services.ErrMissingFields):
		respondError(c, h.config, http.StatusBadRequest, "Missing required fields", nil)
		return
	case errors.Is(err, services.ErrInvalidEmail):
		respondError(c, h.config, http.StatusBadRequest, "Invalid email format", nil)
		return
	case err != nil:
		h.logger.Errorf("Error processing contact form: %v", err)
		respondError(c, h.config, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Contact form submitted successfully",
		ID:      submission.ID,
	})
}

// List handles GET /api/contact (admin only)
// @Summary List contact submissions
// @Description Retrieve submissions newest-first, optionally filtered by status
// @Tags Contact
// @Security AdminKey
// @Produce json
// @Param status query string false "Status filter (all, new, in-progress, completed, archived)" default(all)
// @Param limit query int false "Maximum records to return" default(50)
// @Success 200 {object} models.APIListResponse "Submissions retrieved"
// @Failure 500 {object} models.APIErrorResponse "Storage failure"
// @Router /contact [get]
func (h *ContactController) List(c *gin.Context) {
	status := c.DefaultQuery("status", repository.StatusFilterAll)

	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil {
			limit = l
		}
	}

	submissions, err := h.service.ListSubmissions(c.Request.Context(), status, limit)
	if err != nil {
		h.logger.Errorf("Error fetching contact submissions: %v", err)
		respondError(c, h.config, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if submissions == nil {
		submissions = []*models.ContactSubmission{}
	}

	c.JSON(http.StatusOK, models.APIListResponse{
		Success: true,
		Data:    submissions,
		Count:   len(submissions),
	})
}

// UpdateStatus handles PATCH /api/contact/:id (admin only)
// @Summary Update submission status
// @Description Move a submission to another workflow status
// @Tags Contact
// @Security AdminKey
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} models.APIResponse "Status updated"
// @Failure 400 {object} models.APIErrorResponse "Status not in the allowed set"
// @Failure 404 {object} models.APIErrorResponse "Unknown submission id"
// @Failure 500 {object} models.APIErrorResponse "Storage failure"
// @Router /contact/{id} [patch]
func (h *ContactController) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.config, http.StatusBadRequest,
			"Invalid status. Must be one of: new, in-progress, completed, archived", nil)
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		respondError(c, h.config, http.StatusBadRequest,
			"Invalid status. Must be one of: new, in-progress, completed, archived", nil)
		return
	case errors.Is(err, repository.ErrSubmissionNotFound):
		respondError(c, h.config, http.StatusNotFound, "Submission not found", nil)
		return
	case err != nil:
		h.logger.Errorf("Error updating submission status: %v", err)
		respondError(c, h.config, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: "Submission status updated successfully",
	})
}
