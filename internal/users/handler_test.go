package users_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/goaltrack/goaltrack-backend/internal/auth"
	"github.com/goaltrack/goaltrack-backend/internal/domain"
	"github.com/goaltrack/goaltrack-backend/internal/router"
	"github.com/goaltrack/goaltrack-backend/internal/store"
	"github.com/goaltrack/goaltrack-backend/internal/users"
)

type fakeStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*domain.User{}}
}

func (f *fakeStore) Insert(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.users {
		if existing.Email == u.Email {
			return store.ErrEmailTaken
		}
	}

	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

func newTestApp(t *testing.T) (*fiber.App, *fakeStore, *auth.TokenService) {
	t.Helper()

	fs := newFakeStore()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)

	app := fiber.New(fiber.Config{ErrorHandler: router.ErrorHandler(false)})
	r := &router.Router{
		Users:  users.NewHandler(fs, tokens, bcrypt.MinCost),
		AuthMW: auth.Middleware(tokens, fs),
	}
	r.RegisterRoutes(app)

	return app, fs, tokens
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestRegister(t *testing.T) {
	app, _, tokens := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "pw1",
	}, "")

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["token"])

	// No password material in the response.
	assert.NotContains(t, body, "password")

	// The issued token resolves back to the new user.
	userID, err := tokens.Verify(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, body["id"], userID)
}

func TestRegister_MissingFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	cases := []map[string]string{
		{"email": "a@x.com", "password": "pw"},
		{"username": "a", "password": "pw"},
		{"username": "a", "email": "a@x.com"},
		{},
	}
	for _, payload := range cases {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/users/register", payload, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Different username and password make no difference.
	resp, body := doJSON(t, app, http.MethodPost, "/api/users/register", map[string]string{
		"username": "bob", "email": "a@x.com", "password": "pw2",
	}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "user already exists", body["error"])
}

func TestLogin(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, reg := doJSON(t, app, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	}, "")

	resp, body := doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
		"email": "a@x.com", "password": "pw1",
	}, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, reg["id"], body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["token"])
}

func TestLogin_BadCredentials(t *testing.T) {
	app, _, _ := newTestApp(t)

	doJSON(t, app, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	}, "")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
		"email": "a@x.com", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{
		"email": "nobody@x.com", "password": "pw1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_MissingFields(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{"email": "a@x.com"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/users/login", map[string]string{"password": "pw"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestProfile(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, reg := doJSON(t, app, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	}, "")

	resp, body := doJSON(t, app, http.MethodGet, "/api/users", nil, reg["token"].(string))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, reg["id"], body["id"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, body, "token")
}

func TestProfile_Unauthorized(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/users", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProfile_UserGone(t *testing.T) {
	app, fs, _ := newTestApp(t)

	_, reg := doJSON(t, app, http.MethodPost, "/api/users/register", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "pw1",
	}, "")

	fs.remove(reg["id"].(string))

	// The guard itself fails once the user record is gone.
	resp, _ := doJSON(t, app, http.MethodGet, "/api/users", nil, reg["token"].(string))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
