package service

import (
	"context"
	"sync"

	"github.com/noah-isme/library-portal/internal/models"
)

// PageController owns the state of one page session: the current navigation
// params, its load phase, the fetched data and, for listings, the filter
// state. Each navigation runs Loading -> Success|Error once; a new navigation
// cancels the previous in-flight load and its late result is discarded.
type PageController struct {
	catalog *CatalogService

	mu         sync.Mutex
	generation uint64
	revision   uint64
	cancel     context.CancelFunc
	params     models.PageParams
	records    []models.Resource
	listing    *models.ListingView
	detail     *models.DetailView
}

// NewPageController returns an idle controller.
func NewPageController(catalog *CatalogService) *PageController {
	return &PageController{catalog: catalog}
}

// Navigate starts a navigation and blocks until it resolves. The returned
// bool is false when another navigation superseded this one before it
// finished; the returned state is then the newer navigation's.
func (p *PageController) Navigate(ctx context.Context, params models.PageParams) (models.PageState, bool) {
	return p.Start(ctx, params)()
}

// Start moves the controller into the Loading phase for params, cancelling
// the previous load, and returns the function that performs the fetch. The
// Loading snapshot is observable through State as soon as Start returns.
// params.Filters are applied in the same step that stores the collection.
func (p *PageController) Start(ctx context.Context, params models.PageParams) func() (models.PageState, bool) {
	loadCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.generation++
	p.revision++
	gen := p.generation
	if params.Filters != nil {
		params.Filters = params.Filters.Clone()
	}
	p.cancel = cancel
	p.params = params
	p.records = nil
	if params.Detail() {
		p.listing = nil
		p.detail = p.catalog.LoadingDetail(params.Type, params.ID)
	} else {
		p.detail = nil
		p.listing = p.catalog.LoadingListing(params.Type)
	}
	p.mu.Unlock()

	return func() (models.PageState, bool) {
		defer cancel()

		if params.Detail() {
			record, err := p.catalog.Item(loadCtx, params.Type, params.ID)
			return p.resolve(gen, func() {
				if err != nil {
					p.detail = p.catalog.FailedDetail(params.Type, params.ID, err)
					return
				}
				p.detail = p.catalog.DetailFromRecord(params.Type, params.ID, record)
			})
		}

		records, err := p.catalog.Collection(loadCtx, params.Type)
		return p.resolve(gen, func() {
			if err != nil {
				p.listing = p.catalog.FailedListing(params.Type, err)
				return
			}
			p.records = records
			p.listing = p.catalog.ListingFromRecords(params.Type, records, params.Filters)
		})
	}
}

// Generation identifies the current navigation.
func (p *PageController) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

func (p *PageController) resolve(gen uint64, apply func()) (models.PageState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.generation {
		return p.snapshotLocked(), false
	}
	apply()
	p.revision++
	p.cancel = nil
	return p.snapshotLocked(), true
}

// SetFilter updates one listing filter and recomputes the visible cards. It
// is a no-op unless the current page is a loaded listing and the field
// belongs to its schema.
func (p *PageController) SetFilter(field, value string) models.PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listing == nil || p.listing.Phase != models.PhaseSuccess || !p.listing.Schema.Has(field) {
		return p.snapshotLocked()
	}
	filters := p.listing.Filters.Clone()
	filters[field] = value
	p.listing = p.catalog.ListingFromRecords(p.params.Type, p.records, filters)
	p.revision++
	return p.snapshotLocked()
}

// SetFilters replaces the whole filter state of a loaded listing.
func (p *PageController) SetFilters(filters models.FilterState) models.PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.listing == nil || p.listing.Phase != models.PhaseSuccess {
		return p.snapshotLocked()
	}
	p.listing = p.catalog.ListingFromRecords(p.params.Type, p.records, filters)
	p.revision++
	return p.snapshotLocked()
}

// State returns the current snapshot.
func (p *PageController) State() models.PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Close cancels any in-flight load.
func (p *PageController) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.generation++
}

func (p *PageController) snapshotLocked() models.PageState {
	state := models.PageState{Generation: p.generation, Revision: p.revision, Params: p.params}
	if p.params.Filters != nil {
		state.Params.Filters = p.params.Filters.Clone()
	}
	if p.listing != nil {
		listing := *p.listing
		listing.Filters = p.listing.Filters.Clone()
		state.Listing = &listing
	}
	if p.detail != nil {
		detail := *p.detail
		state.Detail = &detail
	}
	return state
}
