package model

import (
	"time"

	"github.com/google/uuid"
)

type PostComments struct {
	Id             uuid.UUID
	PostId         uuid.UUID
	ParentId       *uuid.UUID
	AuthorId       uuid.UUID
	AuthorName     string
	Message        string
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type CreateCommentRequest struct {
	Message  string  `json:"message"`
	ParentId *string `json:"parentId"`
}

type EditCommentRequest struct {
	Message string `json:"message"`
}

type CommentUser struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// AnnotatedComment is a comment as seen by one caller: like totals, the
// caller's own like state and its replies, newest first.
type AnnotatedComment struct {
	Id        uuid.UUID          `json:"id"`
	Message   string             `json:"message"`
	ParentId  *uuid.UUID         `json:"parentId"`
	CreatedAt time.Time          `json:"createdAt"`
	User      CommentUser        `json:"user"`
	LikeCount int                `json:"likeCount"`
	LikedByMe bool               `json:"likedByMe"`
	Children  []AnnotatedComment `json:"children"`
}

type EditCommentResponse struct {
	Message string `json:"message"`
}

type DeleteCommentResponse struct {
	Id uuid.UUID `json:"id"`
}
