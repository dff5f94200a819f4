package repo

import (
	"spinadmin/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

func (r *LocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

func (r *LocationRepository) GetByID(id uuid.UUID) (*models.Location, error) {
	var location models.Location
	err := r.db.Preload("Campaigns").Where("id = ?", id).First(&location).Error
	return &location, err
}

func (r *LocationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

func (r *LocationRepository) ReplaceCampaigns(location *models.Location, campaigns []models.Campaign) error {
	return r.db.Model(location).Association("Campaigns").Replace(campaigns)
}

func (r *LocationRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.Location{}).Error
}

func (r *LocationRepository) List(limit, offset int) (*models.PaginationResult[models.Location], error) {
	var locations []models.Location
	var total int64

	if err := r.db.Model(&models.Location{}).Count(&total).Error; err != nil {
		return nil, err
	}

	err := r.db.Preload("Campaigns").Order("created_at DESC").Limit(limit).Offset(offset).Find(&locations).Error
	if err != nil {
		return nil, err
	}

	page := offset/limit + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.Location]{
		Data:       locations,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}
