package model

import "errors"

// ErrLikeAlreadyExists is returned by the like ledger when the (user, comment)
// pair is already recorded.
var ErrLikeAlreadyExists = errors.New("like already exists")

// ErrLikeTargetMissing is returned by the like ledger when the comment being
// liked no longer exists.
var ErrLikeTargetMissing = errors.New("liked comment does not exist")

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type NotFoundError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *NotFoundError) Error() string {
	return e.Message
}

type ForbiddenError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

type UnauthorizedError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}
