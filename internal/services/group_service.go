package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hobbyhub/internal/models"
	"hobbyhub/internal/repositories"
	"hobbyhub/pkg/rabbitmq"
)

// GroupService handles business logic for the group lifecycle: creation,
// listing, retrieval, updates, deletion, and join requests.
type GroupService struct {
	repo     repositories.GroupRepository
	mqClient *rabbitmq.Client // may be nil; events are then skipped
	validate *validator.Validate
}

// NewGroupService creates a new GroupService.
func NewGroupService(repo repositories.GroupRepository, mqClient *rabbitmq.Client) *GroupService {
	return &GroupService{
		repo:     repo,
		mqClient: mqClient,
		validate: validator.New(),
	}
}

// DefaultListSize is the page size used when the caller does not supply
// one. Large enough to return every group in practice.
const DefaultListSize = 100000

// CreateGroup validates the input, normalizes the creator email, and
// stores a new pending group. It returns the generated identifier.
// Repeated identical submissions create distinct records; there is no
// duplicate detection.
func (s *GroupService) CreateGroup(ctx context.Context, input models.CreateGroupInput) (string, error) {
	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, e := range verrs {
				missing = append(missing, e.Field())
			}
			return "", NewValidationError(fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
		}
		return "", fmt.Errorf("failed to validate group input: %w", err)
	}

	imageURL := input.ImageURL
	if imageURL == "" {
		// Some clients send the legacy "image" key instead of "imageUrl".
		imageURL = input.Image
	}

	group := &models.Group{
		Name:         input.Name,
		Description:  input.Description,
		CreatorEmail: strings.ToLower(input.CreatorEmail),
		Category:     input.Category,
		StartDate:    input.StartDate,
		ImageURL:     imageURL,
		Status:       "pending",
		CreatedAt:    time.Now(),
	}

	id, err := s.repo.Insert(ctx, group)
	if err != nil {
		return "", fmt.Errorf("failed to create group: %w", err)
	}
	return id, nil
}

// ListGroups returns a page of groups projected to the listing subset,
// optionally filtered by creator email (matched case-insensitively
// against the lower-cased stored value).
func (s *GroupService) ListGroups(ctx context.Context, creatorEmail string, page, size int64) ([]models.GroupListItem, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultListSize
	}
	filter := repositories.GroupListFilter{
		CreatorEmail: strings.ToLower(creatorEmail),
		Page:         page,
		Size:         size,
	}
	return s.repo.Find(ctx, filter)
}

// GetGroup retrieves the full group document by its identifier.
func (s *GroupService) GetGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

// UpdateGroup applies a partial metadata update. Only fields present in
// the input are written; absent fields stay untouched. The caller's
// email must match the stored creator email, compared case-insensitively.
func (s *GroupService) UpdateGroup(ctx context.Context, id, actorEmail string, input models.UpdateGroupInput) (*repositories.GroupUpdateResult, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !strings.EqualFold(actorEmail, group.CreatorEmail) {
		return nil, ErrForbidden
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.StartDate != nil {
		fields["startDate"] = *input.StartDate
	}
	if input.ImageURL != nil {
		fields["imageUrl"] = *input.ImageURL
	}
	if len(fields) == 0 {
		return &repositories.GroupUpdateResult{MatchedCount: 1, ModifiedCount: 0}, nil
	}

	result, err := s.repo.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update group %s: %w", id, err)
	}
	return result, nil
}

// DeleteGroup removes the group by id and returns the deleted count. A
// missing group yields count 0, not an error. No ownership check is
// performed.
func (s *GroupService) DeleteGroup(ctx context.Context, id string) (int64, error) {
	return s.repo.Delete(ctx, id)
}

// RequestToJoin records a membership application on the group. The
// duplicate check and the append run as one conditional write in the
// repository, so concurrent requests for the same group cannot drop
// each other's entries. Email matching is case-sensitive.
func (s *GroupService) RequestToJoin(ctx context.Context, groupID string, req models.JoinRequest) error {
	if req.Email == "" {
		return NewValidationError("email is required")
	}

	if _, err := s.repo.FindByID(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	appended, err := s.repo.AddJoinRequest(ctx, groupID, req)
	if err != nil {
		return fmt.Errorf("failed to add join request to group %s: %w", groupID, err)
	}
	if !appended {
		return ErrConflict
	}

	s.publishJoinRequested(groupID, req)
	return nil
}

// publishJoinRequested emits a group.join_requested event. Publish
// failures are logged and never surfaced to the caller.
func (s *GroupService) publishJoinRequested(groupID string, req models.JoinRequest) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"type":    "group.join_requested",
		"groupId": groupID,
		"email":   req.Email,
		"name":    req.Name,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal join request event: %v", err)
		return
	}
	if err := s.mqClient.Publish("", rabbitmq.GroupEventsQueue, body); err != nil {
		log.Printf("Warning: Failed to publish join request event for group %s: %v", groupID, err)
	}
}
