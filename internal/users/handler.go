package users

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/goaltrack/goaltrack-backend/internal/auth"
	"github.com/goaltrack/goaltrack-backend/internal/domain"
	"github.com/goaltrack/goaltrack-backend/internal/store"
)

// Store is the persistence surface the handler needs.
type Store interface {
	Insert(ctx context.Context, u *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type Handler struct {
	Store      Store
	Tokens     *auth.TokenService
	BcryptCost int
}

func NewHandler(s Store, tokens *auth.TokenService, bcryptCost int) *Handler {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Handler{Store: s, Tokens: tokens, BcryptCost: bcryptCost}
}

// Register creates a user with a bcrypt-hashed password and returns the
// summary plus a fresh token. Duplicate emails keep the observed 400 status.
func (h *Handler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.TrimSpace(body.Email)
	if body.Username == "" || body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username, email and password required")
	}

	ctx := c.UserContext()
	if _, err := h.Store.FindByEmail(ctx, body.Email); err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "user already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), h.BcryptCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not hash password")
	}

	user := &domain.User{
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: string(hashed),
	}
	if err := h.Store.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusBadRequest, "user already exists")
		}
		return err
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.Status(fiber.StatusCreated).JSON(authResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// Login verifies credentials and returns the same summary+token shape as
// Register. Unknown email and wrong password are indistinguishable to the
// caller.
func (h *Handler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	body.Email = strings.TrimSpace(body.Email)
	if body.Email == "" || body.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password required")
	}

	user, err := h.Store.FindByEmail(c.UserContext(), body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid email or password")
	}

	token, err := h.Tokens.Issue(user.ID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create token")
	}

	return c.JSON(authResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	})
}

// Profile returns the authenticated caller's summary. The record is re-read so
// a user deleted after the guard ran surfaces as 404.
func (h *Handler) Profile(c *fiber.Ctx) error {
	user, err := h.Store.FindByID(c.UserContext(), auth.UserID(c))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(profileResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
