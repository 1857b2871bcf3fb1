package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/models"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

type resourceFetcher interface {
	FetchCollection(ctx context.Context, resourceType string) ([]models.Resource, error)
	FetchOne(ctx context.Context, resourceType, id string) (models.Resource, error)
}

// CatalogService combines the schema registry, the backend fetcher, the
// filter engine and the renderer into page views.
type CatalogService struct {
	schemas *SchemaRegistry
	fetcher resourceFetcher
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCatalogService constructs a catalog service.
func NewCatalogService(schemas *SchemaRegistry, fetcher resourceFetcher, metrics *MetricsService, logger *zap.Logger) *CatalogService {
	if schemas == nil {
		schemas = DefaultSchemaRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{schemas: schemas, fetcher: fetcher, metrics: metrics, logger: logger}
}

// Schemas exposes the registry backing the service.
func (s *CatalogService) Schemas() *SchemaRegistry {
	return s.schemas
}

// Schema returns the field schema of a type; empty for unknown types.
func (s *CatalogService) Schema(resourceType string) models.ResourceTypeSchema {
	return s.schemas.Fields(resourceType)
}

// Collection fetches every record of a type. Failures are logged here and
// surface to callers as the generic listing error.
func (s *CatalogService) Collection(ctx context.Context, resourceType string) ([]models.Resource, error) {
	records, err := s.fetcher.FetchCollection(ctx, resourceType)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Error("failed to fetch resources", zap.String("type", resourceType), zap.Error(err))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, appErrors.ErrFetch.Message)
	}
	return records, nil
}

// Item fetches one record by id.
func (s *CatalogService) Item(ctx context.Context, resourceType, id string) (models.Resource, error) {
	record, err := s.fetcher.FetchOne(ctx, resourceType, id)
	if err != nil {
		switch {
		case ctx.Err() != nil:
		case errors.Is(err, appErrors.ErrNotFound):
			s.logger.Info("resource not found", zap.String("type", resourceType), zap.String("id", id))
		default:
			s.logger.Error("failed to fetch resource details", zap.String("type", resourceType), zap.String("id", id), zap.Error(err))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrFetchDetail.Code, appErrors.ErrFetchDetail.Status, appErrors.ErrFetchDetail.Message)
	}
	return record, nil
}

// Filter applies the filter engine and counts the recomputation.
func (s *CatalogService) Filter(records []models.Resource, filters models.FilterState, schema models.ResourceTypeSchema) []models.Resource {
	s.metrics.ObserveFilterRun()
	return ApplyFilters(records, filters, schema)
}

// FilteredCollection fetches a type and applies filters in one step.
func (s *CatalogService) FilteredCollection(ctx context.Context, resourceType string, filters models.FilterState) ([]models.Resource, models.ResourceTypeSchema, error) {
	schema := s.Schema(resourceType)
	records, err := s.Collection(ctx, resourceType)
	if err != nil {
		return nil, schema, err
	}
	return s.Filter(records, filters, schema), schema, nil
}

// LoadingListing is the listing view before the fetch resolves.
func (s *CatalogService) LoadingListing(resourceType string) *models.ListingView {
	schema := s.Schema(resourceType)
	filters := NewFilterState(schema)
	return &models.ListingView{
		Type:     resourceType,
		Title:    PageTitle(resourceType),
		Phase:    models.PhaseLoading,
		Schema:   schema,
		Filters:  filters,
		Controls: FilterControls(schema, filters),
	}
}

// ListingFromRecords builds a successful listing view from an already fetched collection.
func (s *CatalogService) ListingFromRecords(resourceType string, records []models.Resource, filters models.FilterState) *models.ListingView {
	schema := s.Schema(resourceType)
	state := NewFilterState(schema)
	for name, value := range filters {
		if schema.Has(name) {
			state[name] = value
		}
	}
	visible := s.Filter(records, state, schema)
	return &models.ListingView{
		Type:     resourceType,
		Title:    PageTitle(resourceType),
		Phase:    models.PhaseSuccess,
		Schema:   schema,
		Filters:  state,
		Controls: FilterControls(schema, state),
		Total:    len(records),
		Cards:    RenderCards(visible, schema),
	}
}

// FailedListing builds the error state of the listing page.
func (s *CatalogService) FailedListing(resourceType string, err error) *models.ListingView {
	view := s.LoadingListing(resourceType)
	view.Phase = models.PhaseError
	view.Error = appErrors.FromError(err).Message
	return view
}

// LoadingDetail is the detail view before the fetch resolves.
func (s *CatalogService) LoadingDetail(resourceType, id string) *models.DetailView {
	return &models.DetailView{
		Type:    resourceType,
		ID:      id,
		Title:   fmt.Sprintf("%s Details", PageTitle(resourceType)),
		Phase:   models.PhaseLoading,
		BackURL: ListingURL(resourceType),
	}
}

// DetailFromRecord builds a successful detail view.
func (s *CatalogService) DetailFromRecord(resourceType, id string, record models.Resource) *models.DetailView {
	view := s.LoadingDetail(resourceType, id)
	card := RenderCard(record, s.Schema(resourceType))
	view.Phase = models.PhaseSuccess
	view.Card = &card
	return view
}

// FailedDetail builds the error state of the detail page.
func (s *CatalogService) FailedDetail(resourceType, id string, err error) *models.DetailView {
	view := s.LoadingDetail(resourceType, id)
	view.Phase = models.PhaseError
	view.Error = appErrors.FromError(err).Message
	return view
}

// ListingURL is the portal path of a type's listing page.
func ListingURL(resourceType string) string {
	return "/resources/" + url.PathEscape(resourceType)
}

// DetailURL is the portal path of one item's detail page.
func DetailURL(resourceType, id string) string {
	return "/resources/" + url.PathEscape(resourceType) + "/" + url.PathEscape(id)
}
