package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/models"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
	"github.com/noah-isme/library-portal/pkg/export"
)

// Exporter renders a dataset into a downloadable document.
type Exporter interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile is a rendered listing ready to be sent to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the filtered view of a listing as a table.
type ExportService struct {
	catalog   *CatalogService
	exporters map[string]Exporter
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an export service with CSV and PDF renderers.
func NewExportService(catalog *CatalogService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	csv := export.NewCSVExporter()
	pdf := export.NewPDFExporter()
	return &ExportService{
		catalog: catalog,
		exporters: map[string]Exporter{
			csv.Extension(): csv,
			pdf.Extension(): pdf,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Export fetches a type, applies filters and renders the result in format.
func (s *ExportService) Export(ctx context.Context, resourceType string, filters models.FilterState, format string) (*ExportFile, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	records, schema, err := s.catalog.FilteredCollection(ctx, resourceType, filters)
	if err != nil {
		return nil, err
	}
	if len(schema) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "resource type has no fields to export")
	}

	body, err := exporter.Render(BuildDataset(resourceType, schema, records))
	if err != nil {
		s.logger.Error("export render failed", zap.String("type", resourceType), zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportFile{
		Filename:    fmt.Sprintf("%s-%s.%s", resourceType, s.now().UTC().Format("20060102"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Body:        body,
	}, nil
}

// BuildDataset turns records into a table: schema labels as headers and the
// renderer's text for each cell.
func BuildDataset(resourceType string, schema models.ResourceTypeSchema, records []models.Resource) export.Dataset {
	rows := make([][]string, 0, len(records))
	for _, card := range RenderCards(records, schema) {
		row := make([]string, len(card.Fields))
		for i, spec := range card.Fields {
			row[i] = spec.Text()
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: PageTitle(resourceType), Headers: schema.Labels(), Rows: rows}
}
