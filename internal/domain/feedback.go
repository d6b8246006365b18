package domain

import (
	"time"

	"github.com/google/uuid"
)

type Feedback struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type LikeResult struct {
	ProjectID  uuid.UUID `json:"project_id"`
	Liked      bool      `json:"liked"`
	LikesCount int       `json:"likes_count"`
}
