package dto

import "github.com/noah-isme/library-portal/internal/models"

// Live listing message types.
const (
	LiveNavigate = "navigate"
	LiveFilter   = "filter"
	LivePing     = "ping"

	LiveState = "state"
	LivePong  = "pong"
	LiveError = "error"
)

// LiveClientMessage is a message sent by the browser over the live listing socket.
type LiveClientMessage struct {
	Type     string `json:"type" validate:"required,oneof=navigate filter ping"`
	Resource string `json:"resource" validate:"required_if=Type navigate,max=128"`
	Field    string `json:"field" validate:"required_if=Type filter,max=128"`
	Value    string `json:"value" validate:"max=512"`
}

// LiveServerMessage is the envelope for every server message.
type LiveServerMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// LiveStateData is the listing snapshot pushed after every transition.
type LiveStateData struct {
	Generation uint64             `json:"generation"`
	Revision   uint64             `json:"revision"`
	Type       string             `json:"type"`
	Title      string             `json:"title"`
	Phase      models.PagePhase   `json:"phase"`
	Error      string             `json:"error,omitempty"`
	Filters    models.FilterState `json:"filters"`
	Total      int                `json:"total"`
	Cards      []models.CardView  `json:"cards"`
}

// LiveErrorData reports a rejected client message.
type LiveErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewLiveState converts a controller snapshot into a state message payload.
func NewLiveState(state models.PageState) LiveStateData {
	data := LiveStateData{Generation: state.Generation, Revision: state.Revision, Type: state.Params.Type, Phase: state.Phase()}
	if l := state.Listing; l != nil {
		data.Title = l.Title
		data.Error = l.Error
		data.Filters = l.Filters
		data.Total = l.Total
		data.Cards = l.CardViews()
	}
	if data.Cards == nil {
		data.Cards = []models.CardView{}
	}
	return data
}
