package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"spinadmin/internal/repo"
	"spinadmin/internal/services"
	"spinadmin/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LocationHandler handles location CRUD and bulk creation endpoints
type LocationHandler struct {
	locationRepo *repo.LocationRepository
	campaignRepo *repo.CampaignRepository
	bulkService  *services.LocationBulkService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationRepo *repo.LocationRepository, campaignRepo *repo.CampaignRepository, bulkService *services.LocationBulkService) *LocationHandler {
	return &LocationHandler{
		locationRepo: locationRepo,
		campaignRepo: campaignRepo,
		bulkService:  bulkService,
	}
}

// List returns locations with pagination
func (h *LocationHandler) List(c echo.Context) error {
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

	result, err := h.locationRepo.List(limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list locations"})
	}

	return c.JSON(http.StatusOK, result)
}

// Get returns a location by ID
func (h *LocationHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid location ID"})
	}

	location, err := h.locationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Location not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get location"})
	}

	return c.JSON(http.StatusOK, location)
}

// Create creates a single location
func (h *LocationHandler) Create(c echo.Context) error {
	var req models.CreateLocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	campaigns, err := h.resolveCampaigns(req.CampaignIDs)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	location := &models.Location{
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Type:          req.Type,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		RadiusMeters:  req.RadiusMeters,
		IsActive:      true,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		Campaigns:     campaigns,
	}
	if req.RadiusMeters == 0 {
		location.RadiusMeters = 100
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}

	if err := h.locationRepo.Create(location); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create location"})
	}

	return c.JSON(http.StatusCreated, location)
}

// Update updates an existing location
func (h *LocationHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid location ID"})
	}

	var req models.UpdateLocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	location, err := h.locationRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Location not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get location"})
	}

	if req.Name != nil {
		location.Name = *req.Name
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.City != nil {
		location.City = *req.City
	}
	if req.State != nil {
		location.State = *req.State
	}
	if req.Type != nil {
		location.Type = *req.Type
	}
	if req.Latitude != nil {
		location.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		location.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		location.RadiusMeters = *req.RadiusMeters
	}
	if req.IsActive != nil {
		location.IsActive = *req.IsActive
	}
	if req.ContactPerson != nil {
		location.ContactPerson = *req.ContactPerson
	}
	if req.ContactPhone != nil {
		location.ContactPhone = *req.ContactPhone
	}

	if err := h.locationRepo.Update(location); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update location"})
	}

	if req.CampaignIDs != nil {
		campaigns, err := h.resolveCampaigns(*req.CampaignIDs)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		if err := h.locationRepo.ReplaceCampaigns(location, campaigns); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update campaign links"})
		}
		location.Campaigns = campaigns
	}

	return c.JSON(http.StatusOK, location)
}

// Delete removes a location
func (h *LocationHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid location ID"})
	}

	if err := h.locationRepo.Delete(id); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete location"})
	}

	return c.NoContent(http.StatusNoContent)
}

// BulkCreate creates many locations in one request, reporting a per-row
// outcome instead of failing the whole batch
func (h *LocationHandler) BulkCreate(c echo.Context) error {
	var req models.BulkLocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if len(req.Locations) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No locations provided"})
	}

	outcome, err := h.bulkService.CreateBatch(c.Request().Context(), req.Locations)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create locations"})
	}

	return c.JSON(http.StatusOK, outcome)
}

func (h *LocationHandler) resolveCampaigns(ids []string) ([]models.Campaign, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("invalid campaign ID: " + raw)
		}
		parsed = append(parsed, id)
	}

	campaigns, err := h.campaignRepo.GetByIDs(parsed)
	if err != nil {
		return nil, errors.New("failed to load campaigns")
	}
	if len(campaigns) != len(parsed) {
		return nil, errors.New("one or more campaigns not found")
	}
	return campaigns, nil
}
