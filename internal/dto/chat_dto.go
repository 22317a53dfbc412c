package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	// ConversationId is optional; omitting it starts a new conversation.
	ConversationId *uuid.UUID `json:"conversation_id"`
	Message        string     `json:"message" validate:"required"`
	Mode           string     `json:"mode" validate:"omitempty,oneof=personal workspace"`
}

type ProposedActionDTO struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type SendChatResponse struct {
	ConversationId   uuid.UUID          `json:"conversation_id"`
	Title            string             `json:"title"`
	Reply            string             `json:"reply"`
	Mode             string             `json:"mode"`
	RequiresApproval bool               `json:"requires_approval"`
	ProposedAction   *ProposedActionDTO `json:"proposed_action,omitempty"`
	Sources          []string           `json:"sources"`
}

type ApprovalRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Approved       bool      `json:"approved"`
}

type ApprovalResponse struct {
	Message        string             `json:"message"`
	ApprovalStatus string             `json:"approval_status"`
	ProposedAction *ProposedActionDTO `json:"proposed_action,omitempty"`
}

type CreateConversationRequest struct {
	Title string `json:"title"`
	Mode  string `json:"mode" validate:"omitempty,oneof=personal workspace"`
}

type CreateConversationResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllConversationsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Mode      string     `json:"mode"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type DeleteConversationRequest struct {
	ConversationId uuid.UUID `json:"conversation_id"`
}

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

func (e *LimitExceededError) Error() string {
	return "daily AI usage limit exceeded"
}

// LimitExceededData is the data payload for 429 responses
type LimitExceededData struct {
	Limit      int       `json:"limit"`
	Used       int       `json:"used"`
	ResetAfter time.Time `json:"reset_after"`
}

// LimitExceededResponse is the full 429 response structure
type LimitExceededResponse struct {
	Success   bool              `json:"success"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	ErrorType string            `json:"error_type"`
	Data      LimitExceededData `json:"data"`
}
