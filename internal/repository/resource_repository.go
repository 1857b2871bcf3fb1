package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/library-portal/internal/models"
	appErrors "github.com/noah-isme/library-portal/pkg/errors"
)

// maxBodyBytes bounds how much of a backend response is read.
const maxBodyBytes = 8 << 20

// RecordDecoder turns a raw backend record into its typed shape.
type RecordDecoder interface {
	Decode(resourceType string, raw json.RawMessage) (models.Resource, error)
	Empty(resourceType string) models.Resource
}

// FetchObserver receives the outcome of every backend read.
type FetchObserver interface {
	ObserveUpstream(operation string, status int, duration time.Duration)
}

type collectionEnvelope struct {
	Resources []json.RawMessage `json:"resources"`
}

type itemEnvelope struct {
	Resource json.RawMessage `json:"resource"`
}

// ResourceRepository reads catalog resources from the backend API. Each call
// is a single GET with no retry and no caching.
type ResourceRepository struct {
	baseURL  string
	client   *http.Client
	decoder  RecordDecoder
	observer FetchObserver
	logger   *zap.Logger
}

// NewResourceRepository constructs a repository against baseURL.
func NewResourceRepository(baseURL string, client *http.Client, decoder RecordDecoder, observer FetchObserver, logger *zap.Logger) *ResourceRepository {
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceRepository{baseURL: baseURL, client: client, decoder: decoder, observer: observer, logger: logger}
}

// FetchCollection returns every record of a type. A missing "resources" key yields an empty list.
func (r *ResourceRepository) FetchCollection(ctx context.Context, resourceType string) ([]models.Resource, error) {
	endpoint := fmt.Sprintf("%s/api/resources/%s", r.baseURL, url.PathEscape(resourceType))

	var envelope collectionEnvelope
	if err := r.get(ctx, "fetch_collection", endpoint, &envelope); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, appErrors.ErrFetch.Message)
	}

	records := make([]models.Resource, 0, len(envelope.Resources))
	for _, raw := range envelope.Resources {
		record, err := r.decoder.Decode(resourceType, raw)
		if err != nil {
			r.logger.Warn("undecodable resource", zap.String("type", resourceType), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrFetch.Code, appErrors.ErrFetch.Status, appErrors.ErrFetch.Message)
		}
		records = append(records, record)
	}
	return records, nil
}

// FetchOne returns a single record. A missing "resource" key yields an empty record.
func (r *ResourceRepository) FetchOne(ctx context.Context, resourceType, id string) (models.Resource, error) {
	endpoint := fmt.Sprintf("%s/api/resources/%s/%s", r.baseURL, url.PathEscape(resourceType), url.PathEscape(id))

	var envelope itemEnvelope
	if err := r.get(ctx, "fetch_one", endpoint, &envelope); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrFetchDetail.Code, appErrors.ErrFetchDetail.Status, appErrors.ErrFetchDetail.Message)
	}

	if len(envelope.Resource) == 0 || string(envelope.Resource) == "null" {
		return r.decoder.Empty(resourceType), nil
	}
	record, err := r.decoder.Decode(resourceType, envelope.Resource)
	if err != nil {
		r.logger.Warn("undecodable resource", zap.String("type", resourceType), zap.String("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrFetchDetail.Code, appErrors.ErrFetchDetail.Status, appErrors.ErrFetchDetail.Message)
	}
	return record, nil
}

func (r *ResourceRepository) get(ctx context.Context, operation, endpoint string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if session := models.SessionFromContext(ctx); session != nil && session.Token != "" {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	start := time.Now()
	status := 0
	defer func() {
		if r.observer != nil {
			r.observer.ObserveUpstream(operation, status, time.Since(start))
		}
	}()

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("backend request failed", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("get %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("get %s: %w", endpoint, appErrors.ErrNotFound)
		}
		r.logger.Warn("backend returned error status", zap.String("url", endpoint), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("get %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(dest); err != nil {
		r.logger.Warn("backend returned malformed body", zap.String("url", endpoint), zap.Error(err))
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
