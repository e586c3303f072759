package model

import (
	"time"

	"github.com/google/uuid"
)

type CommentLikes struct {
	UserId         uuid.UUID
	CommentId      uuid.UUID
	CreateDatetime time.Time
}

type ToggleLikeResponse struct {
	Liked bool `json:"liked"`
}
