package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"org-access-registry/internal/platform/httputil"
	"org-access-registry/internal/user/domain"
	"org-access-registry/internal/user/service"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks required fields.
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

// CreateUserResponse is returned by POST /users.
type CreateUserResponse struct {
	ID string `json:"id"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsersResponse is returned by GET /users. Count is the number of users matching the filter.
type ListUsersResponse struct {
	Count int64          `json:"count"`
	Data  []UserResponse `json:"data"`
}

// Handler serves the /users endpoints.
type Handler struct {
	svc          *service.UserService
	defaultLimit int64
}

// NewHandler returns a user Handler. defaultLimit applies when a listing omits limit.
func NewHandler(svc *service.UserService, defaultLimit int64) *Handler {
	return &Handler{svc: svc, defaultLimit: defaultLimit}
}

// RegisterRoutes mounts the user endpoints on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/users", h.createUser).Methods(http.MethodPost)
	r.HandleFunc("/users", h.listUsers).Methods(http.MethodGet)
	r.HandleFunc("/users/{user_id}", h.getUser).Methods(http.MethodGet)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	id, err := h.svc.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		httputil.WriteUnexpectedError(w, r, err)
		return
	}
	_ = httputil.WriteSuccess(w, CreateUserResponse{ID: id})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	params, err := httputil.ParsePagination(r, h.defaultLimit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	page, err := h.svc.List(r.Context(), params)
	if err != nil {
		httputil.WriteUnexpectedError(w, r, err)
		return
	}
	resp := ListUsersResponse{Count: page.Count, Data: make([]UserResponse, 0, len(page.Items))}
	for _, u := range page.Items {
		resp.Data = append(resp.Data, toUserResponse(u))
	}
	_ = httputil.WriteSuccess(w, resp)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), mux.Vars(r)["user_id"])
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		httputil.WriteBadRequest(w, "Invalid user id")
		return
	case errors.Is(err, domain.ErrUserNotFound):
		httputil.WriteNotFound(w, "User not found")
		return
	case err != nil:
		httputil.WriteUnexpectedError(w, r, err)
		return
	}
	_ = httputil.WriteSuccess(w, toUserResponse(u))
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
