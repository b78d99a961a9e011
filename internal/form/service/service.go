// Package service orchestrates form authoring, rendering, prefill and
// submission. It keeps orchestration out of handlers and domain logic thin.
package service

import (
	"context"
	"log/slog"

	"oppform/internal/form/cache"
	"oppform/internal/form/fields"
	"oppform/internal/form/models"
	"oppform/internal/form/ports"
	"oppform/internal/platform/metrics"
	id "oppform/pkg/domain"
)

// SchemaStore persists OpportunityForm aggregates.
type SchemaStore interface {
	Create(ctx context.Context, form *models.OpportunityForm) error
	FindBySubject(ctx context.Context, oppID id.OpportunityID) (*models.OpportunityForm, error)
	Save(ctx context.Context, form *models.OpportunityForm) error
	Delete(ctx context.Context, oppID id.OpportunityID) error
}

// ResponseStore persists accepted form responses.
type ResponseStore interface {
	Insert(ctx context.Context, r *models.FormResponse) error
	ListByUser(ctx context.Context, oppID id.OpportunityID, userID id.UserID) ([]*models.FormResponse, error)
	CountBySubject(ctx context.Context, oppID id.OpportunityID) (int, error)
}

type Service struct {
	schemas   SchemaStore
	responses ResponseStore
	factory   *fields.Factory
	countries ports.CountryDirectory
	files     ports.FileVault
	profiles  ports.ProfileDirectory
	cache     cache.RenderCache
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(
	schemas SchemaStore,
	responses ResponseStore,
	countries ports.CountryDirectory,
	files ports.FileVault,
	profiles ports.ProfileDirectory,
	renderCache cache.RenderCache,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		schemas:   schemas,
		responses: responses,
		factory:   fields.NewFactory(countries),
		countries: countries,
		files:     files,
		profiles:  profiles,
		cache:     renderCache,
		metrics:   m,
		logger:    logger,
	}
}
