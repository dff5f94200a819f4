package models

import "time"

// Campaign represents a time-boxed promotional configuration that
// locations and prize rules attach to
type Campaign struct {
	BaseModel
	Name            string     `gorm:"not null;index" json:"name"`
	Description     string     `json:"description,omitempty"`
	Status          string     `gorm:"default:draft" json:"status"`
	StartDate       *time.Time `json:"start_date,omitempty"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	CooldownMinutes int        `gorm:"default:0" json:"cooldown_minutes"`
	TotalSpins      int64      `gorm:"default:0" json:"totalSpins"`
}

// CampaignSummary is the directory entry served to the console and
// used to resolve campaign names during bulk import
type CampaignSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	TotalSpins int64  `json:"totalSpins"`
}

// Summary converts a campaign to its directory entry
func (c *Campaign) Summary() CampaignSummary {
	return CampaignSummary{
		ID:         c.ID.String(),
		Name:       c.Name,
		Status:     c.Status,
		TotalSpins: c.TotalSpins,
	}
}

// CreateCampaignRequest represents campaign creation data
type CreateCampaignRequest struct {
	Name            string     `json:"name" validate:"required"`
	Description     string     `json:"description"`
	Status          string     `json:"status" validate:"omitempty,oneof=draft active paused ended"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	CooldownMinutes int        `json:"cooldown_minutes" validate:"gte=0"`
}

// UpdateCampaignRequest represents campaign update data
type UpdateCampaignRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	Status          *string    `json:"status" validate:"omitempty,oneof=draft active paused ended"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
	CooldownMinutes *int       `json:"cooldown_minutes" validate:"omitempty,gte=0"`
}
