package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")
	ErrEmptyContent = errors.New("content is required")
)
