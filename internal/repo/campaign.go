package repo

import (
	"context"

	"spinadmin/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

func (r *CampaignRepository) GetByID(id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.Where("id = ?", id).First(&campaign).Error
	return &campaign, err
}

func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

func (r *CampaignRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Campaign{}).Error
}

func (r *CampaignRepository) List(limit, offset int) (*models.PaginationResult[models.Campaign], error) {
	var campaigns []models.Campaign
	var total int64

	if err := r.db.Model(&models.Campaign{}).Count(&total).Error; err != nil {
		return nil, err
	}

	err := r.db.Order("created_at ASC").Limit(limit).Offset(offset).Find(&campaigns).Error
	if err != nil {
		return nil, err
	}

	page := offset/limit + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.Campaign]{
		Data:       campaigns,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// CampaignDirectory returns the point-in-time snapshot used for import
// resolution and template generation
func (r *CampaignRepository) CampaignDirectory(ctx context.Context) ([]models.CampaignSummary, error) {
	var campaigns []models.Campaign
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&campaigns).Error; err != nil {
		return nil, err
	}

	directory := make([]models.CampaignSummary, 0, len(campaigns))
	for i := range campaigns {
		directory = append(directory, campaigns[i].Summary())
	}
	return directory, nil
}

// GetByIDs returns the campaigns matching the given identifiers
func (r *CampaignRepository) GetByIDs(ids []uuid.UUID) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.Where("id IN ?", ids).Find(&campaigns).Error
	return campaigns, err
}
