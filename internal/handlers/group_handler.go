package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"hobbyhub/internal/models"
	"hobbyhub/internal/services"
	"hobbyhub/internal/storage"
)

// GroupHandler handles HTTP requests for groups.
type GroupHandler struct {
	service *services.GroupService
	images  *storage.ImageStore
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(service *services.GroupService, images *storage.ImageStore) *GroupHandler {
	return &GroupHandler{
		service: service,
		images:  images,
	}
}

// RegisterRoutes registers the group routes with the Fiber app.
func (h *GroupHandler) RegisterRoutes(router fiber.Router) {
	groupRoutes := router.Group("/groups")
	groupRoutes.Post("/", h.HandleCreateGroup)
	groupRoutes.Get("/", h.HandleListGroups)
	groupRoutes.Get("/:id", h.HandleGetGroup)
	groupRoutes.Put("/:id", h.HandleUpdateGroup)
	groupRoutes.Put("/:id/with-image", h.HandleUpdateGroupWithImage)
	groupRoutes.Delete("/:id", h.HandleDeleteGroup)
	groupRoutes.Post("/:id/join-request", h.HandleJoinRequest)
}

// HandleCreateGroup creates a new group.
func (h *GroupHandler) HandleCreateGroup(c *fiber.Ctx) error {
	var input models.CreateGroupInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create group body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	id, err := h.service.CreateGroup(c.Context(), input)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
			})
		}
		log.Printf("Error creating group: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create group",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"acknowledged": true,
		"insertedId":   id,
	})
}

// HandleListGroups returns a page of groups projected to the listing
// field subset, optionally filtered by creator email.
func (h *GroupHandler) HandleListGroups(c *fiber.Ctx) error {
	creatorEmail := c.Query("creatorEmail")
	page := int64(c.QueryInt("page", 0))
	size := int64(c.QueryInt("size", 0))

	groups, err := h.service.ListGroups(c.Context(), creatorEmail, page, size)
	if err != nil {
		log.Printf("Error listing groups: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch groups",
		})
	}
	return c.JSON(groups)
}

// HandleGetGroup returns the full group document by id.
func (h *GroupHandler) HandleGetGroup(c *fiber.Ctx) error {
	id := c.Params("id")
	group, err := h.service.GetGroup(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Group not found",
			})
		}
		log.Printf("Error getting group %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch group",
		})
	}
	return c.JSON(group)
}

// updateGroupRequest is the JSON body for a metadata-only update. Nil
// fields were absent from the request and must not be written.
type updateGroupRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Category     *string `json:"category"`
	StartDate    *string `json:"startDate"`
	CreatorEmail string  `json:"creatorEmail"`
}

// HandleUpdateGroup applies a metadata-only update to a group. The
// caller must supply the group's creator email.
func (h *GroupHandler) HandleUpdateGroup(c *fiber.Ctx) error {
	id := c.Params("id")

	var req updateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update group body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	input := models.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		StartDate:   req.StartDate,
	}
	result, err := h.service.UpdateGroup(c.Context(), id, req.CreatorEmail, input)
	if err != nil {
		return h.updateError(c, id, err)
	}

	return c.JSON(fiber.Map{
		"acknowledged":  true,
		"matchedCount":  result.MatchedCount,
		"modifiedCount": result.ModifiedCount,
	})
}

// HandleUpdateGroupWithImage applies a metadata update from multipart
// form fields and, when an image file accompanies the request, replaces
// the group's cover image with a compressed derivative.
func (h *GroupHandler) HandleUpdateGroupWithImage(c *fiber.Ctx) error {
	id := c.Params("id")

	form, err := c.MultipartForm()
	if err != nil {
		log.Printf("Error parsing multipart form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	input := models.UpdateGroupInput{
		Name:        formValue(form.Value, "name"),
		Description: formValue(form.Value, "description"),
		Category:    formValue(form.Value, "category"),
		StartDate:   formValue(form.Value, "startDate"),
	}
	actorEmail := ""
	if v := formValue(form.Value, "creatorEmail"); v != nil {
		actorEmail = *v
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		name, err := h.images.SaveUpload(file)
		if err != nil {
			log.Printf("Error saving upload for group %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to store uploaded image",
			})
		}
		derived, err := h.images.Compress(name)
		if err != nil {
			log.Printf("Error compressing upload for group %s: %v", id, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process uploaded image",
			})
		}
		imageURL := fmt.Sprintf("%s/uploads/%s", c.BaseURL(), derived)
		input.ImageURL = &imageURL
	}

	result, err := h.service.UpdateGroup(c.Context(), id, actorEmail, input)
	if err != nil {
		return h.updateError(c, id, err)
	}

	return c.JSON(fiber.Map{
		"acknowledged":  true,
		"matchedCount":  result.MatchedCount,
		"modifiedCount": result.ModifiedCount,
	})
}

// HandleDeleteGroup deletes a group by id. A missing group yields a
// zero deleted count, not an error.
func (h *GroupHandler) HandleDeleteGroup(c *fiber.Ctx) error {
	id := c.Params("id")
	count, err := h.service.DeleteGroup(c.Context(), id)
	if err != nil {
		log.Printf("Error deleting group %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete group",
		})
	}
	return c.JSON(fiber.Map{
		"acknowledged": true,
		"deletedCount": count,
	})
}

// HandleJoinRequest records a membership application on a group.
func (h *GroupHandler) HandleJoinRequest(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.JoinRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing join request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.service.RequestToJoin(c.Context(), id, req); err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
			})
		case errors.Is(err, services.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Group not found",
			})
		case errors.Is(err, services.ErrConflict):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "You have already requested or joined this group.",
			})
		}
		log.Printf("Error adding join request to group %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send join request",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Join request sent successfully",
	})
}

// updateError maps update failures onto their HTTP statuses.
func (h *GroupHandler) updateError(c *fiber.Ctx, id string, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You are not the creator of this group",
		})
	}
	log.Printf("Error updating group %s: %v", id, err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to update group",
	})
}

// formValue returns a pointer to the first value for key, or nil when
// the field was absent from the form.
func formValue(values map[string][]string, key string) *string {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return nil
	}
	return &vs[0]
}
