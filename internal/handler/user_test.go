package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"

	"funlife/internal/config"
	"funlife/internal/httputil"
	"funlife/internal/model"
	"funlife/internal/repository"
	"funlife/internal/service"
	"funlife/internal/transport/http/middleware"
)

type userHandlerFixture struct {
	router http.Handler
	users  *service.UserService
	alice  *model.User
	bob    *model.User
}

func setupUserHandler(t *testing.T) *userHandlerFixture {
	t.Helper()

	store := repository.NewMemStore()
	userService := service.NewUserService(store.Users(), store.Videos(), store.Follows())
	videoService := service.NewVideoService(store.Videos(), store.Users(), store.Likes(), store.Comments())
	authService := service.NewAuthService(&config.Config{
		JWTSecret:         "test-secret",
		AccessTokenMaxAge: 3600,
	})

	h := NewUserHandler(userService, videoService)
	r := chi.NewRouter()
	r.With(middleware.RequireAuth(authService)).Patch("/api/users/{id}", h.Update)

	seed := func(username string) *model.User {
		user, err := userService.Register(context.Background(), &model.RegisterRequest{
			Username: username,
			Password: "password123",
		})
		if err != nil {
			t.Fatalf("seed user %q: %v", username, err)
		}
		return user
	}

	return &userHandlerFixture{
		router: r,
		users:  userService,
		alice:  seed("alice"),
		bob:    seed("bob"),
	}
}

func patchProfile(f *userHandlerFixture, targetID, viewerID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("PATCH", "/api/users/"+strconv.FormatInt(targetID, 10), bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", strconv.FormatInt(viewerID, 10))
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestUpdateProfileRejectsOtherUser(t *testing.T) {
	f := setupUserHandler(t)

	w := patchProfile(f, f.alice.ID, f.bob.ID, `{"bio":"not yours"}`)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusForbidden)
	}

	var resp httputil.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error.Code != httputil.ErrCodeForbidden {
		t.Errorf("error code: got %q, want %q", resp.Error.Code, httputil.ErrCodeForbidden)
	}

	// Alice's profile is untouched.
	alice, err := f.users.GetByID(context.Background(), f.alice.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if alice.Bio != nil {
		t.Errorf("bio should be unchanged, got %q", *alice.Bio)
	}
}

func TestUpdateProfileAsOwner(t *testing.T) {
	f := setupUserHandler(t)

	w := patchProfile(f, f.alice.ID, f.alice.ID, `{"bio":"hello there"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var updated model.User
	if err := json.NewDecoder(w.Body).Decode(&updated); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if updated.Bio == nil || *updated.Bio != "hello there" {
		t.Errorf("bio: got %v, want %q", updated.Bio, "hello there")
	}
	if updated.ID != f.alice.ID {
		t.Errorf("id: got %d, want %d", updated.ID, f.alice.ID)
	}
}

func TestUpdateProfileEmptyBody(t *testing.T) {
	f := setupUserHandler(t)

	w := patchProfile(f, f.alice.ID, f.alice.ID, `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp httputil.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error.Code != httputil.ErrCodeValidation {
		t.Errorf("error code: got %q, want %q", resp.Error.Code, httputil.ErrCodeValidation)
	}
}
