package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hobbyhub/internal/models"
)

// MockGroupRepository is an in-memory implementation of GroupRepository.
type MockGroupRepository struct {
	groups map[string]models.Group
	order  []string // preserves insertion order for listing
	mu     sync.RWMutex
}

// NewMockGroupRepository creates a new instance of MockGroupRepository.
func NewMockGroupRepository() *MockGroupRepository {
	return &MockGroupRepository{
		groups: make(map[string]models.Group),
	}
}

// Insert adds a new group and assigns it a generated identifier.
func (r *MockGroupRepository) Insert(ctx context.Context, group *models.Group) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if group.ID.IsZero() {
		group.ID = primitive.NewObjectID()
	}
	id := group.ID.Hex()
	r.groups[id] = *group
	r.order = append(r.order, id)
	return id, nil
}

// Find returns a page of groups projected to the listing subset.
func (r *MockGroupRepository) Find(ctx context.Context, filter GroupListFilter) ([]models.GroupListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.GroupListItem, 0)
	for _, id := range r.order {
		g, ok := r.groups[id]
		if !ok {
			continue
		}
		if filter.CreatorEmail != "" && g.CreatorEmail != filter.CreatorEmail {
			continue
		}
		matched = append(matched, models.GroupListItem{
			ID:          g.ID,
			Name:        g.Name,
			ImageURL:    g.ImageURL,
			Description: g.Description,
			StartDate:   g.StartDate,
			Category:    g.Category,
		})
	}

	start := filter.Page * filter.Size
	if start >= int64(len(matched)) {
		return []models.GroupListItem{}, nil
	}
	end := start + filter.Size
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[start:end], nil
}

// FindByID returns the full group document.
func (r *MockGroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &group, nil
}

// UpdateFields applies a partial update to the stored group.
func (r *MockGroupRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*GroupUpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return nil, ErrNotFound
	}

	modified := int64(0)
	setString := func(dst *string, key string) {
		if v, ok := fields[key]; ok {
			s, _ := v.(string)
			if *dst != s {
				*dst = s
				modified = 1
			}
		}
	}
	setString(&group.Name, "name")
	setString(&group.Description, "description")
	setString(&group.Category, "category")
	setString(&group.StartDate, "startDate")
	setString(&group.ImageURL, "imageUrl")

	r.groups[id] = group
	return &GroupUpdateResult{MatchedCount: 1, ModifiedCount: modified}, nil
}

// AddJoinRequest appends req when the email is not already present in
// joinRequests or joinedUsers, under the repository lock.
func (r *MockGroupRepository) AddJoinRequest(ctx context.Context, id string, req models.JoinRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group, ok := r.groups[id]
	if !ok {
		return false, nil
	}
	for _, jr := range group.JoinRequests {
		if jr.Email == req.Email {
			return false, nil
		}
	}
	for _, ju := range group.JoinedUsers {
		if ju.Email == req.Email {
			return false, nil
		}
	}
	group.JoinRequests = append(group.JoinRequests, req)
	r.groups[id] = group
	return true, nil
}

// Delete removes the group by id and returns the deleted count.
func (r *MockGroupRepository) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return 0, nil
	}
	delete(r.groups, id)
	return 1, nil
}

// CountAll returns the total number of groups.
func (r *MockGroupRepository) CountAll(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.groups)), nil
}

// CountByCreator returns the number of groups owned by email.
func (r *MockGroupRepository) CountByCreator(ctx context.Context, email string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := int64(0)
	for _, g := range r.groups {
		if g.CreatorEmail == email {
			n++
		}
	}
	return n, nil
}

// CountByStatus returns the number of groups in the given status.
func (r *MockGroupRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := int64(0)
	for _, g := range r.groups {
		if g.Status == status {
			n++
		}
	}
	return n, nil
}
