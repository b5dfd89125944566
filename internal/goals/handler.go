package goals

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goaltrack/goaltrack-backend/internal/auth"
	"github.com/goaltrack/goaltrack-backend/internal/domain"
	"github.com/goaltrack/goaltrack-backend/internal/store"
)

// Store is the persistence surface the handler needs.
type Store interface {
	Insert(ctx context.Context, g *domain.Goal) error
	ListByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	FindByID(ctx context.Context, id string) (*domain.Goal, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Goal, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	Store Store
}

func NewHandler(s Store) *Handler {
	return &Handler{Store: s}
}

// List returns the caller's goals in store order.
func (h *Handler) List(c *fiber.Ctx) error {
	goals, err := h.Store.ListByUser(c.UserContext(), auth.UserID(c))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch goals")
	}

	if goals == nil {
		goals = []domain.Goal{}
	}
	return c.JSON(goals)
}

// Create persists a new goal owned by the caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	var body createGoalRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	text := strings.TrimSpace(body.Goal)
	if text == "" {
		return fiber.NewError(fiber.StatusBadRequest, "no goal provided")
	}

	goal := &domain.Goal{
		UserID: auth.UserID(c),
		Text:   text,
	}
	if err := h.Store.Insert(c.UserContext(), goal); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create goal")
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

// Update replaces the goal's text when a non-empty value is supplied;
// otherwise the stored text stays as is. Only the owner may update.
func (h *Handler) Update(c *fiber.Ctx) error {
	var body updateGoalRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid body")
		}
	}

	ctx := c.UserContext()
	goal, err := h.loadOwned(ctx, c)
	if err != nil {
		return err
	}

	if body.Goal == nil || strings.TrimSpace(*body.Goal) == "" {
		return c.JSON(goal)
	}

	updated, err := h.Store.UpdateText(ctx, goal.ID, strings.TrimSpace(*body.Goal))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Deleted between the ownership read and the write.
			return fiber.NewError(fiber.StatusNotFound, "goal not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update goal")
	}

	return c.JSON(updated)
}

// Delete removes the goal permanently. Only the owner may delete.
func (h *Handler) Delete(c *fiber.Ctx) error {
	ctx := c.UserContext()
	goal, err := h.loadOwned(ctx, c)
	if err != nil {
		return err
	}

	if err := h.Store.Delete(ctx, goal.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "goal not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete goal")
	}

	return c.JSON(deleteGoalResponse{Message: "deleted goal " + goal.ID})
}

// loadOwned fetches the goal from the :id route param and enforces ownership.
// Non-owner access reuses the unauthorized status, matching the rest of the
// auth surface.
func (h *Handler) loadOwned(ctx context.Context, c *fiber.Ctx) (*domain.Goal, error) {
	goal, err := h.Store.FindByID(ctx, c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "goal not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "failed to fetch goal")
	}

	if goal.UserID != auth.UserID(c) {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "not authorized")
	}

	return goal, nil
}
