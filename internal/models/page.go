package models

// PagePhase is the load state of a listing or detail page.
type PagePhase string

const (
	PhaseLoading PagePhase = "loading"
	PhaseSuccess PagePhase = "success"
	PhaseError   PagePhase = "error"
)

// Terminal reports whether no further transition can happen for the current navigation.
func (p PagePhase) Terminal() bool {
	return p == PhaseSuccess || p == PhaseError
}

// PageParams are the navigation inputs: resource type, optional item id and,
// for listings, the filters to apply once the collection has loaded.
type PageParams struct {
	Type    string      `json:"type"`
	ID      string      `json:"id,omitempty"`
	Filters FilterState `json:"filters,omitempty"`
}

// Detail reports whether the params address a single item.
func (p PageParams) Detail() bool {
	return p.ID != ""
}

// ListingView is the state of the listing page after a load.
type ListingView struct {
	Type     string             `json:"type"`
	Title    string             `json:"title"`
	Phase    PagePhase          `json:"phase"`
	Error    string             `json:"error,omitempty"`
	Schema   ResourceTypeSchema `json:"schema"`
	Filters  FilterState        `json:"filters"`
	Controls []FilterControl    `json:"controls"`
	Total    int                `json:"total"`
	Cards    []Card             `json:"-"`
}

// CardViews returns the serialisable cards.
func (v ListingView) CardViews() []CardView {
	out := make([]CardView, len(v.Cards))
	for i, c := range v.Cards {
		out[i] = c.Wire()
	}
	return out
}

// DetailView is the state of the detail page after a load.
type DetailView struct {
	Type    string    `json:"type"`
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Phase   PagePhase `json:"phase"`
	Error   string    `json:"error,omitempty"`
	BackURL string    `json:"back_url"`
	Card    *Card     `json:"-"`
}

// PageState is a snapshot of a page controller. Exactly one of Listing and
// Detail is set once a navigation has started. Revision increases with every
// change to the controller, across navigations.
type PageState struct {
	Generation uint64       `json:"generation"`
	Revision   uint64       `json:"revision"`
	Params     PageParams   `json:"params"`
	Listing    *ListingView `json:"listing,omitempty"`
	Detail     *DetailView  `json:"detail,omitempty"`
}

// Phase returns the phase of whichever view is active.
func (s PageState) Phase() PagePhase {
	switch {
	case s.Listing != nil:
		return s.Listing.Phase
	case s.Detail != nil:
		return s.Detail.Phase
	}
	return PhaseLoading
}
