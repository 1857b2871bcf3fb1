package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/models"
	"github.com/noah-isme/library-portal/internal/service"
	"github.com/noah-isme/library-portal/internal/web"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

type stubFetcher struct {
	collections map[string][]models.Resource
	items       map[string]models.Resource
	err         error
}

func (s *stubFetcher) FetchCollection(ctx context.Context, resourceType string) ([]models.Resource, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.collections[resourceType], nil
}

func (s *stubFetcher) FetchOne(ctx context.Context, resourceType, id string) (models.Resource, error) {
	if s.err != nil {
		return nil, s.err
	}
	record, ok := s.items[resourceType+"/"+id]
	if !ok {
		return nil, fmt.Errorf("backend returned 404: %w", appErrors.ErrNotFound)
	}
	return record, nil
}

func sampleFetcher() *stubFetcher {
	paper := &models.QuestionPaper{
		ID:              "qp-1",
		AccessionNumber: models.Present("A-100"),
		Year:            models.Present("2022"),
		Course:          models.Present("bcom"),
		Semester:        models.Present("3"),
		Subject:         models.Present("Maths"),
		Status:          models.Present("available"),
	}
	research := &models.ResearchPaper{
		ID:     "rp-1",
		Title:  models.Present("Graph Colouring"),
		Author: models.Present("Ada"),
		Status: models.Present("demolished"),
		Link:   models.Present("https://library.example.edu/rp-1.pdf"),
	}
	return &stubFetcher{
		collections: map[string][]models.Resource{
			service.TypeQuestionPapers: {paper},
			service.TypeResearchPapers: {research},
			"widgets":                  {&models.GenericResource{ID: "w-1"}},
		},
		items: map[string]models.Resource{
			service.TypeQuestionPapers + "/qp-1": paper,
			service.TypeResearchPapers + "/rp-1": research,
		},
	}
}

func failingFetcher() *stubFetcher {
	return &stubFetcher{err: errors.New("dial tcp: connection refused")}
}

func newCatalog(fetcher *stubFetcher) *service.CatalogService {
	return service.NewCatalogService(service.DefaultSchemaRegistry(), fetcher, service.NewMetricsService(), zap.NewNop())
}

func newHTMLRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	templates, err := web.Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(templates)
	return r
}
