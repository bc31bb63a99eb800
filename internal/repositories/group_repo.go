package repositories

import (
	"context"
	"errors"

	"hobbyhub/internal/models"
)

// ErrNotFound is returned when no document matches the given identifier.
// An identifier that does not parse as a valid ObjectID is treated the
// same way: there is nothing it could refer to.
var ErrNotFound = errors.New("document not found")

// GroupListFilter narrows and pages a group listing.
type GroupListFilter struct {
	CreatorEmail string // already lower-cased by the caller; empty means no filter
	Page         int64
	Size         int64
}

// GroupUpdateResult reports the outcome of an update operation.
type GroupUpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// GroupRepository defines the interface for group data access.
type GroupRepository interface {
	Insert(ctx context.Context, group *models.Group) (string, error)
	Find(ctx context.Context, filter GroupListFilter) ([]models.GroupListItem, error)
	FindByID(ctx context.Context, id string) (*models.Group, error)
	// UpdateFields applies a $set-style partial update. Keys absent from
	// fields are left untouched in the stored document.
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*GroupUpdateResult, error)
	// AddJoinRequest appends req to the group's joinRequests as a single
	// conditional write: the append happens only if req.Email is present
	// in neither joinRequests nor joinedUsers. It reports whether the
	// append took place.
	AddJoinRequest(ctx context.Context, id string, req models.JoinRequest) (bool, error)
	Delete(ctx context.Context, id string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountByCreator(ctx context.Context, email string) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}
