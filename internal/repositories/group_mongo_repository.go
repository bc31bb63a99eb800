package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hobbyhub/internal/models"
)

// MongoGroupRepository is a MongoDB implementation of GroupRepository
// backed by the "groups" collection.
type MongoGroupRepository struct {
	coll *mongo.Collection
}

// NewMongoGroupRepository creates a new instance of MongoGroupRepository.
func NewMongoGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{
		coll: db.Collection("groups"),
	}
}

// EnsureIndexes creates the creatorEmail index used by listing and the
// dashboard counts. Safe to call on every startup.
func (r *MongoGroupRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "creatorEmail", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create creatorEmail index: %w", err)
	}
	return nil
}

// Insert stores a new group and returns its generated identifier.
func (r *MongoGroupRepository) Insert(ctx context.Context, group *models.Group) (string, error) {
	res, err := r.coll.InsertOne(ctx, group)
	if err != nil {
		return "", fmt.Errorf("failed to insert group: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// Find returns a page of groups projected to the listing subset.
func (r *MongoGroupRepository) Find(ctx context.Context, filter GroupListFilter) ([]models.GroupListItem, error) {
	query := bson.M{}
	if filter.CreatorEmail != "" {
		query["creatorEmail"] = filter.CreatorEmail
	}

	opts := options.Find().
		SetProjection(bson.M{
			"name":        1,
			"imageUrl":    1,
			"description": 1,
			"startDate":   1,
			"_id":         1,
			"category":    1,
		}).
		SetSkip(filter.Page * filter.Size).
		SetLimit(filter.Size)

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find groups: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.GroupListItem, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return items, nil
}

// FindByID returns the full group document, including join requests.
func (r *MongoGroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var group models.Group
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&group); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find group %s: %w", id, err)
	}
	return &group, nil
}

// UpdateFields applies a partial $set update to the group document.
func (r *MongoGroupRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*GroupUpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update group %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return &GroupUpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// AddJoinRequest pushes req onto joinRequests only when the email is not
// already present in joinRequests or joinedUsers. Filter and push run as
// one UpdateOne, so two concurrent requests cannot overwrite each other
// the way a read-append-write sequence could.
func (r *MongoGroupRepository) AddJoinRequest(ctx context.Context, id string, req models.JoinRequest) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, ErrNotFound
	}

	filter := bson.M{
		"_id":                oid,
		"joinRequests.email": bson.M{"$ne": req.Email},
		"joinedUsers.email":  bson.M{"$ne": req.Email},
	}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"joinRequests": req}})
	if err != nil {
		return false, fmt.Errorf("failed to add join request to group %s: %w", id, err)
	}
	return res.ModifiedCount > 0, nil
}

// Delete removes the group by id and returns the deleted count. A
// missing group yields count 0, not an error.
func (r *MongoGroupRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete group %s: %w", id, err)
	}
	return res.DeletedCount, nil
}

// CountAll returns the total number of groups.
func (r *MongoGroupRepository) CountAll(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count groups: %w", err)
	}
	return n, nil
}

// CountByCreator returns the number of groups owned by email.
func (r *MongoGroupRepository) CountByCreator(ctx context.Context, email string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"creatorEmail": email})
	if err != nil {
		return 0, fmt.Errorf("failed to count groups by creator: %w", err)
	}
	return n, nil
}

// CountByStatus returns the number of groups in the given status.
func (r *MongoGroupRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count groups by status: %w", err)
	}
	return n, nil
}
