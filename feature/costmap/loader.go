package costmap

import (
	"github.com/LTplus-AG/NHMzh-plugin-cost-sub000/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new costmap feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg Config) *Feature {
	svc := NewService(client, bucket, logger, db, cfg)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "costmap"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
