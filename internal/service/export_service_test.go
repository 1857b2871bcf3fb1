package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/models"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

func newExportServiceForTest(fetcher *fakeFetcher) *ExportService {
	catalog := NewCatalogService(DefaultSchemaRegistry(), fetcher, nil, zap.NewNop())
	svc := NewExportService(catalog, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestExportCSVAppliesFilters(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.collections[TypeQuestionPapers] = sampleRecords()
	svc := newExportServiceForTest(fetcher)

	file, err := svc.Export(context.Background(), TypeQuestionPapers, models.FilterState{"course": "bcom"}, "csv")

	require.NoError(t, err)
	assert.Equal(t, "question-papers-20240309.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")

	lines := strings.Split(strings.TrimSpace(string(file.Body)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Accession No,Year,Course,Semester,Subject,Status,Link", lines[0])
	assert.Equal(t, "A1,N/A,bcom,3,Maths,available,N/A", lines[1])
}

func TestExportPDF(t *testing.T) {
	fetcher := newFakeFetcher()
	fetcher.collections[TypeResearchPapers] = []models.Resource{&models.ResearchPaper{ID: "1", Title: models.Present("Graphs")}}
	svc := newExportServiceForTest(fetcher)

	file, err := svc.Export(context.Background(), TypeResearchPapers, nil, "pdf")

	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Body), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(newFakeFetcher())

	_, err := svc.Export(context.Background(), TypeQuestionPapers, nil, "xlsx")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, svc.catalog.fetcher.(*fakeFetcher).calls)
}

func TestExportRejectsTypeWithoutSchema(t *testing.T) {
	svc := newExportServiceForTest(newFakeFetcher())

	_, err := svc.Export(context.Background(), "widgets", nil, "csv")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestBuildDataset(t *testing.T) {
	schema := DefaultSchemaRegistry().Fields(TypeResearchPapers)
	records := []models.Resource{&models.ResearchPaper{ID: "1", AccessionNumber: models.Present("R-1"), Link: models.Present("https://x")}}

	data := BuildDataset(TypeResearchPapers, schema, records)

	assert.Equal(t, "RESEARCH PAPERS", data.Title)
	assert.Equal(t, schema.Labels(), data.Headers)
	assert.Equal(t, [][]string{{"R-1", "N/A", "N/A", "N/A", "", "https://x"}}, data.Rows)
}
