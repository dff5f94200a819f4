package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spinadmin/internal/repo"
	"spinadmin/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CampaignHandler handles campaign CRUD endpoints
type CampaignHandler struct {
	campaignRepo *repo.CampaignRepository
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignRepo *repo.CampaignRepository) *CampaignHandler {
	return &CampaignHandler{campaignRepo: campaignRepo}
}

// List returns campaigns with pagination
func (h *CampaignHandler) List(c echo.Context) error {
	limit := 20
	offset := 0

	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if o := c.QueryParam("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	result, err := h.campaignRepo.List(limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list campaigns"})
	}

	return c.JSON(http.StatusOK, result)
}

// Directory returns the lightweight campaign list used by the console
// for import resolution and pickers
func (h *CampaignHandler) Directory(c echo.Context) error {
	directory, err := h.campaignRepo.CampaignDirectory(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load campaigns"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"campaigns": directory,
	})
}

// Get returns a campaign by ID
func (h *CampaignHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid campaign ID"})
	}

	campaign, err := h.campaignRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Campaign not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get campaign"})
	}

	return c.JSON(http.StatusOK, campaign)
}

// Create creates a new campaign
func (h *CampaignHandler) Create(c echo.Context) error {
	var req models.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	campaign := &models.Campaign{
		Name:            req.Name,
		Description:     req.Description,
		Status:          req.Status,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		CooldownMinutes: req.CooldownMinutes,
	}
	if campaign.Status == "" {
		campaign.Status = "draft"
	}

	if err := h.campaignRepo.Create(campaign); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create campaign"})
	}

	return c.JSON(http.StatusCreated, campaign)
}

// Update updates an existing campaign
func (h *CampaignHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid campaign ID"})
	}

	var req models.UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	campaign, err := h.campaignRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Campaign not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get campaign"})
	}

	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Status != nil {
		campaign.Status = *req.Status
	}
	if req.StartDate != nil {
		campaign.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = req.EndDate
	}
	if req.CooldownMinutes != nil {
		campaign.CooldownMinutes = *req.CooldownMinutes
	}

	if err := h.campaignRepo.Update(campaign); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update campaign"})
	}

	return c.JSON(http.StatusOK, campaign)
}

// Delete removes a campaign
func (h *CampaignHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid campaign ID"})
	}

	if err := h.campaignRepo.Delete(id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete campaign"})
	}

	return c.NoContent(http.StatusNoContent)
}
