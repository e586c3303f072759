package model

import (
	"time"

	"github.com/google/uuid"
)

type Posts struct {
	Id             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	CreateDatetime time.Time `json:"createDatetime"`
}

type PostSummaryResponse struct {
	Id    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

type PostDetailResponse struct {
	Id       uuid.UUID          `json:"id"`
	Title    string             `json:"title"`
	Body     string             `json:"body"`
	Comments []AnnotatedComment `json:"comments"`
}
