package dto

import (
	"next-action-be/internal/entity"
)

// RecommendRequest is the inbound recommendation payload. Events are
// ordered oldest-to-newest and must timestamp at or after everything
// already recorded for the user (caller contract, not re-validated).
type RecommendRequest struct {
	SpecURL string     `json:"spec_url" validate:"required,url"`
	UserId  string     `json:"user_id" validate:"required"`
	Events  []EventDTO `json:"events" validate:"required,min=1,dive"`
	K       int        `json:"k" validate:"omitempty,min=1"`
	Prompt  string     `json:"prompt"`
	Safe    bool       `json:"safe"`
}

// EventDTO is one interaction as sent by the client.
type EventDTO struct {
	Endpoint  string          `json:"endpoint" validate:"required"`
	Params    entity.ParamBag `json:"params"`
	Ts        string          `json:"ts" validate:"required"`
	SessionId string          `json:"session_id" validate:"required"`
}

// ToEntity converts the wire event into the internal representation for
// the given user.
func (e EventDTO) ToEntity(userId string) entity.Event {
	return entity.Event{
		SessionId: e.SessionId,
		UserId:    userId,
		Timestamp: e.Ts,
		Endpoint:  e.Endpoint,
		Params:    e.Params,
	}
}

// RecommendResponse wraps the final ordered action list. The id ties a
// served recommendation back to its log lines.
type RecommendResponse struct {
	RecommendationId string              `json:"recommendation_id"`
	Items            []entity.RerankItem `json:"items"`
}

// CommitEventsMessage is the event-commit bus payload: new events to be
// appended to the shared historical log after a successful recommendation.
type CommitEventsMessage struct {
	Events []entity.Event `json:"events"`
}
