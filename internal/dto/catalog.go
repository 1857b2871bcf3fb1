package dto

import "github.com/noah-isme/library-portal/internal/models"

// CatalogTypeResponse describes one registered resource type.
type CatalogTypeResponse struct {
	Type       string                    `json:"type"`
	Title      string                    `json:"title"`
	ListingURL string                    `json:"listing_url"`
	Fields     models.ResourceTypeSchema `json:"fields"`
}

// ListingResponse is the JSON form of a listing page.
type ListingResponse struct {
	*models.ListingView
	Cards []models.CardView `json:"cards"`
}

// NewListingResponse flattens a listing view for the API.
func NewListingResponse(view *models.ListingView) ListingResponse {
	return ListingResponse{ListingView: view, Cards: view.CardViews()}
}

// DetailResponse is the JSON form of a detail page.
type DetailResponse struct {
	*models.DetailView
	Card *models.CardView `json:"card,omitempty"`
}

// NewDetailResponse flattens a detail view for the API.
func NewDetailResponse(view *models.DetailView) DetailResponse {
	resp := DetailResponse{DetailView: view}
	if view.Card != nil {
		card := view.Card.Wire()
		resp.Card = &card
	}
	return resp
}
