package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	orgdomain "org-access-registry/internal/organization/domain"
	"org-access-registry/internal/permission/domain"
	"org-access-registry/internal/permission/service"
	"org-access-registry/internal/platform/httputil"
	userdomain "org-access-registry/internal/user/domain"
)

// PermissionRequest is one element of the POST and DELETE /permissions bodies. Fields are not
// checked here: assign validates them in order in the manager and revoke matches them as given.
type PermissionRequest struct {
	UserID  string `json:"user_id"`
	OrgName string `json:"org_name"`
	Role    string `json:"role"`
}

func (r *PermissionRequest) toDomain() domain.Permission {
	return domain.Permission{UserID: strings.TrimSpace(r.UserID), OrgName: r.OrgName, Role: domain.Role(r.Role)}
}

// AssignResponse is returned by POST /permissions.
type AssignResponse struct {
	Count int64 `json:"count"`
}

// RevokeResponse is returned by DELETE /permissions.
type RevokeResponse struct {
	DeletedCount int64  `json:"deleted_count"`
	Message      string `json:"message"`
}

// PermissionResponse is the wire form of a permission.
type PermissionResponse struct {
	UserID  string `json:"user_id"`
	OrgName string `json:"org_name"`
	Role    string `json:"role"`
}

// ListPermissionsResponse is returned by GET /permissions.
type ListPermissionsResponse struct {
	Count int64                `json:"count"`
	Data  []PermissionResponse `json:"data"`
}

// Handler serves the /permissions endpoints.
type Handler struct {
	mgr          *service.Manager
	defaultLimit int64
}

// NewHandler returns a permission Handler.
func NewHandler(mgr *service.Manager, defaultLimit int64) *Handler {
	return &Handler{mgr: mgr, defaultLimit: defaultLimit}
}

// RegisterRoutes mounts the permission endpoints on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/permissions", h.assign).Methods(http.MethodPost)
	r.HandleFunc("/permissions", h.revoke).Methods(http.MethodDelete)
	r.HandleFunc("/permissions", h.list).Methods(http.MethodGet)
}

// decodeBatch reads a JSON array of permissions. Only malformed JSON is rejected.
func decodeBatch(w http.ResponseWriter, r *http.Request) ([]domain.Permission, bool) {
	var reqs []PermissionRequest
	if !httputil.ParseJSONOrError(w, r, &reqs) {
		return nil, false
	}
	perms := make([]domain.Permission, 0, len(reqs))
	for i := range reqs {
		perms = append(perms, reqs[i].toDomain())
	}
	return perms, true
}

func (h *Handler) assign(w http.ResponseWriter, r *http.Request) {
	perms, ok := decodeBatch(w, r)
	if !ok {
		return
	}
	res, err := h.mgr.Assign(r.Context(), perms)
	switch {
	case errors.Is(err, userdomain.ErrUserNotFound):
		httputil.WriteBadRequest(w, "User not found")
	case errors.Is(err, userdomain.ErrInvalidUserID):
		httputil.WriteBadRequest(w, "Invalid user id")
	case errors.Is(err, orgdomain.ErrOrgNotFound):
		httputil.WriteBadRequest(w, "Org not found")
	case errors.Is(err, domain.ErrInvalidRole):
		httputil.WriteBadRequest(w, "Invalid role")
	case err != nil:
		httputil.WriteUnexpectedError(w, r, err)
	default:
		_ = httputil.WriteSuccess(w, AssignResponse{Count: res.Count})
	}
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	perms, ok := decodeBatch(w, r)
	if !ok {
		return
	}
	res, err := h.mgr.Revoke(r.Context(), perms)
	if err != nil {
		httputil.WriteUnexpectedError(w, r, err)
		return
	}
	_ = httputil.WriteSuccess(w, RevokeResponse{DeletedCount: res.DeletedCount, Message: res.Message})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	params, err := httputil.ParsePagination(r, h.defaultLimit)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	page, err := h.mgr.List(r.Context(), service.ListParams{
		UserID:  httputil.ParseQueryString(r, "user_id", ""),
		OrgName: httputil.ParseQueryString(r, "org_name", ""),
		Params:  params,
	})
	if err != nil {
		httputil.WriteUnexpectedError(w, r, err)
		return
	}
	resp := ListPermissionsResponse{Count: page.Count, Data: make([]PermissionResponse, 0, len(page.Items))}
	for _, p := range page.Items {
		resp.Data = append(resp.Data, PermissionResponse{UserID: p.UserID, OrgName: p.OrgName, Role: string(p.Role)})
	}
	_ = httputil.WriteSuccess(w, resp)
}
