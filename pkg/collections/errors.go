// Package collections manages the lifecycle of repeatable sub-entities
// inside a draft: creation, validated save-to-commit, and removal with
// deletion-marker emission for persisted identities.
package collections

import (
	"errors"
	"fmt"

	"github.com/coursedesk/coursedesk/pkg/models"
)

var (
	// ErrItemNotFound is returned when an item ID does not resolve.
	ErrItemNotFound = errors.New("collection item not found")

	// ErrConfirmationRequired is returned when RemoveItem is called
	// without the explicit confirmation flag.
	ErrConfirmationRequired = errors.New("removal requires explicit confirmation")

	// ErrUnknownCollection is returned for a collection name outside the
	// fixed set.
	ErrUnknownCollection = errors.New("unknown collection")
)

// ValidationError blocks an item's Entered → Saved transition. It is
// local, never touches the network, and is recoverable by correcting the
// named field.
type ValidationError struct {
	Collection models.CollectionName
	ItemID     string
	Field      string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s/%s: field %q: %s", e.Collection, e.ItemID, e.Field, e.Message)
}

// IsValidationError reports whether err is a save-blocking validation
// error.
func IsValidationError(err error) bool {
	var ve *ValidationError

	return errors.As(err, &ve)
}
