package models

// Location represents a physical outlet participating in a campaign
type Location struct {
	BaseModel
	Name          string     `gorm:"not null" json:"name"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	Type          string     `json:"type"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	RadiusMeters  int        `gorm:"default:100" json:"radiusMeters"`
	IsActive      bool       `gorm:"default:true" json:"isActive"`
	ContactPerson string     `json:"contactPerson,omitempty"`
	ContactPhone  string     `json:"contactPhone,omitempty"`
	Campaigns     []Campaign `gorm:"many2many:location_campaigns" json:"campaigns,omitempty"`
}

// CreateLocationRequest represents location creation data
type CreateLocationRequest struct {
	Name          string   `json:"name" validate:"required"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Type          string   `json:"type" validate:"omitempty,oneof=supermarket moderntrade openmarket other"`
	Latitude      float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64  `json:"longitude" validate:"gte=-180,lte=180"`
	RadiusMeters  int      `json:"radiusMeters" validate:"omitempty,gt=0"`
	IsActive      *bool    `json:"isActive"`
	ContactPerson string   `json:"contactPerson"`
	ContactPhone  string   `json:"contactPhone"`
	CampaignIDs   []string `json:"campaignIds" validate:"omitempty,dive,uuid"`
}

// UpdateLocationRequest represents location update data
type UpdateLocationRequest struct {
	Name          *string   `json:"name"`
	Address       *string   `json:"address"`
	City          *string   `json:"city"`
	State         *string   `json:"state"`
	Type          *string   `json:"type" validate:"omitempty,oneof=supermarket moderntrade openmarket other"`
	Latitude      *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude     *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	RadiusMeters  *int      `json:"radiusMeters" validate:"omitempty,gt=0"`
	IsActive      *bool     `json:"isActive"`
	ContactPerson *string   `json:"contactPerson"`
	ContactPhone  *string   `json:"contactPhone"`
	CampaignIDs   *[]string `json:"campaignIds" validate:"omitempty,dive,uuid"`
}
