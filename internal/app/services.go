package app

import (
	"spinadmin/internal/auth"
	"spinadmin/internal/geocode"
	"spinadmin/internal/importer"
	"spinadmin/internal/repo"
	"spinadmin/internal/services"

	"gorm.io/gorm"
)

// Services holds all application services
type Services struct {
	DB            *gorm.DB
	AuthService   *auth.Service
	UserRepo      *repo.UserRepository
	CampaignRepo  *repo.CampaignRepository
	LocationRepo  *repo.LocationRepository
	BulkService   *services.LocationBulkService
	ImportService *importer.Service
	GeocodeClient *geocode.Client
}

// NewServices creates a new services container
func NewServices(db *gorm.DB) *Services {
	// Initialize repositories
	userRepo := repo.NewUserRepository(db)
	campaignRepo := repo.NewCampaignRepository(db)
	locationRepo := repo.NewLocationRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	bulkService := services.NewLocationBulkService(locationRepo, campaignRepo)
	importService := importer.NewService(campaignRepo, bulkService)
	geocodeClient := geocode.NewClient()

	return &Services{
		DB:            db,
		AuthService:   authService,
		UserRepo:      userRepo,
		CampaignRepo:  campaignRepo,
		LocationRepo:  locationRepo,
		BulkService:   bulkService,
		ImportService: importService,
		GeocodeClient: geocodeClient,
	}
}
