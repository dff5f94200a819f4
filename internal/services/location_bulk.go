package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"spinadmin/internal/repo"
	"spinadmin/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const defaultRadiusMeters = 100

// LocationBulkService creates locations in batches and reports the
// per-row outcome. Row numbers in failures are display rows: data row N
// is reported as row N+1, matching the import file's numbering.
type LocationBulkService struct {
	locationRepo *repo.LocationRepository
	campaignRepo *repo.CampaignRepository
}

func NewLocationBulkService(locationRepo *repo.LocationRepository, campaignRepo *repo.CampaignRepository) *LocationBulkService {
	return &LocationBulkService{
		locationRepo: locationRepo,
		campaignRepo: campaignRepo,
	}
}

// CreateBatch persists every valid row and collects failures for the
// rest. One bad row never aborts the batch; the caller decides what to
// do with a partial outcome.
func (s *LocationBulkService) CreateBatch(ctx context.Context, rows []models.BulkLocationRow) (*models.UploadOutcome, error) {
	known, err := s.knownCampaigns(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}

	outcome := &models.UploadOutcome{Details: models.OutcomeDetails{Failed: []models.RowFailure{}}}

	for i, row := range rows {
		displayRow := i + 2

		location, rowErr := s.buildLocation(row, known)
		if rowErr == nil {
			rowErr = s.locationRepo.Create(location)
		}

		if rowErr != nil {
			outcome.Errors++
			outcome.Details.Failed = append(outcome.Details.Failed, models.RowFailure{
				Row:   displayRow,
				Error: rowErr.Error(),
			})
			continue
		}
		outcome.Created++
	}

	outcome.Success = outcome.Errors == 0

	log.Info().
		Int("created", outcome.Created).
		Int("errors", outcome.Errors).
		Msg("Bulk location create finished")

	return outcome, nil
}

// knownCampaigns loads every campaign referenced anywhere in the batch
// in one query
func (s *LocationBulkService) knownCampaigns(rows []models.BulkLocationRow) (map[uuid.UUID]models.Campaign, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, row := range rows {
		for _, raw := range row.CampaignIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				continue // reported per-row in buildLocation
			}
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	known := make(map[uuid.UUID]models.Campaign, len(ids))
	if len(ids) == 0 {
		return known, nil
	}

	campaigns, err := s.campaignRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	for _, c := range campaigns {
		known[c.ID] = c
	}
	return known, nil
}

func (s *LocationBulkService) buildLocation(row models.BulkLocationRow, known map[uuid.UUID]models.Campaign) (*models.Location, error) {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	location := &models.Location{
		Name:          name,
		Address:       row.Address,
		City:          row.City,
		State:         row.State,
		Type:          row.Type,
		RadiusMeters:  defaultRadiusMeters,
		IsActive:      true,
		ContactPerson: row.ContactPerson,
		ContactPhone:  row.ContactPhone,
	}

	if row.Latitude != "" {
		lat, err := strconv.ParseFloat(row.Latitude, 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("invalid latitude %q", row.Latitude)
		}
		location.Latitude = lat
	}
	if row.Longitude != "" {
		lon, err := strconv.ParseFloat(row.Longitude, 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("invalid longitude %q", row.Longitude)
		}
		location.Longitude = lon
	}
	if row.RadiusMeters != "" {
		radius, err := strconv.Atoi(row.RadiusMeters)
		if err != nil || radius <= 0 {
			return nil, fmt.Errorf("invalid radiusMeters %q", row.RadiusMeters)
		}
		location.RadiusMeters = radius
	}
	if row.IsActive != "" {
		active, err := strconv.ParseBool(strings.ToLower(row.IsActive))
		if err != nil {
			return nil, fmt.Errorf("invalid isActive %q", row.IsActive)
		}
		location.IsActive = active
	}

	for _, raw := range row.CampaignIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid campaign id %q", raw)
		}
		campaign, ok := known[id]
		if !ok {
			return nil, fmt.Errorf("campaign %s not found", raw)
		}
		location.Campaigns = append(location.Campaigns, campaign)
	}

	return location, nil
}
