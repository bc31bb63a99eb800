package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JoinRequest is a pending membership application recorded on a group.
type JoinRequest struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email" validate:"required"`
	Photo string `json:"photo,omitempty" bson:"photo,omitempty"`
}

// Group represents a hobby group document in the "groups" collection.
type Group struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	CreatorEmail string             `json:"creatorEmail" bson:"creatorEmail"` // always stored lower-case
	Category     string             `json:"category,omitempty" bson:"category,omitempty"`
	StartDate    string             `json:"startDate,omitempty" bson:"startDate,omitempty"`
	ImageURL     string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Status       string             `json:"status,omitempty" bson:"status,omitempty"` // "pending" at creation
	CreatedAt    time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	JoinRequests []JoinRequest      `json:"joinRequests" bson:"joinRequests,omitempty"`
	JoinedUsers  []JoinRequest      `json:"joinedUsers" bson:"joinedUsers,omitempty"`
}

// GroupListItem is the projected subset of a group returned by listing.
// Join requests, joined users, and status are deliberately withheld.
type GroupListItem struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Description string             `json:"description" bson:"description"`
	StartDate   string             `json:"startDate,omitempty" bson:"startDate,omitempty"`
	Category    string             `json:"category,omitempty" bson:"category,omitempty"`
}

// CreateGroupInput is the payload for group creation.
type CreateGroupInput struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description" validate:"required"`
	CreatorEmail string `json:"creatorEmail" validate:"required"`
	Category     string `json:"category"`
	StartDate    string `json:"startDate"`
	ImageURL     string `json:"imageUrl"`
	// Image is a legacy alias some clients send instead of imageUrl.
	Image string `json:"image"`
}

// UpdateGroupInput carries a partial metadata update. Nil fields are
// left untouched in the stored document, never overwritten.
type UpdateGroupInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	StartDate   *string `json:"startDate"`
	ImageURL    *string `json:"-"`
}

// DashboardSummary holds the aggregate counts shown on the dashboard.
type DashboardSummary struct {
	TotalGroups   int64 `json:"totalGroups"`
	MyGroups      int64 `json:"myGroups"`
	PendingGroups int64 `json:"pendingGroups"`
}
