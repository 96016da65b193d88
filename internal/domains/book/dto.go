package book

import (
	"github.com/google/uuid"
)

// UpdateRequest is the payload for PUT /books/:id. The id in the body
// must agree with the path id.
type UpdateRequest struct {
	ID uuid.UUID `json:"id"`
	Attributes
}
