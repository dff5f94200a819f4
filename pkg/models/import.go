package models

// BulkLocationRequest is the batch create payload
type BulkLocationRequest struct {
	Locations []BulkLocationRow `json:"locations" validate:"required,min=1,dive"`
}

// BulkLocationRow is one location in a batch create. Campaign references
// have already been resolved to identifiers at this point; string fields
// are passed through as-is and validated by the batch service.
type BulkLocationRow struct {
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	City          string   `json:"city,omitempty"`
	State         string   `json:"state,omitempty"`
	Type          string   `json:"type,omitempty"`
	Latitude      string   `json:"latitude,omitempty"`
	Longitude     string   `json:"longitude,omitempty"`
	RadiusMeters  string   `json:"radiusMeters,omitempty"`
	IsActive      string   `json:"isActive,omitempty"`
	ContactPerson string   `json:"contactPerson,omitempty"`
	ContactPhone  string   `json:"contactPhone,omitempty"`
	CampaignIDs   []string `json:"campaignIds,omitempty"`
}

// RowFailure identifies a row that could not be created
type RowFailure struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// UploadOutcome is the result of a batch location create
type UploadOutcome struct {
	Success bool           `json:"success"`
	Created int            `json:"created"`
	Errors  int            `json:"errors"`
	Details OutcomeDetails `json:"details"`
}

// OutcomeDetails carries per-row failure detail
type OutcomeDetails struct {
	Failed []RowFailure `json:"failed"`
}
