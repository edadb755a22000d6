package post

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxContentLength is the cap in runes. Longer content is truncated,
// not rejected.
const MaxContentLength = 500

// CreatePostRequest - POST /post
type CreatePostRequest struct {
	Content string `json:"content"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
	)
}

// UpdatePostRequest - PUT /post/:id
type UpdatePostRequest struct {
	Content string `json:"content"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
	)
}
