package repositories

import (
	"context"

	"hobbyhub/internal/models"
)

// UserRepository defines the interface for user data access. Users are
// write-only in this service: registration inserts the document and
// nothing ever reads it back.
type UserRepository interface {
	Insert(ctx context.Context, user models.User) (string, error)
}
