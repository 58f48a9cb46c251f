package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"org-access-registry/internal/organization/domain"
	"org-access-registry/internal/organization/service"
	"org-access-registry/internal/platform/httputil"
)

// CreateOrgRequest is the body of POST /orgs.
type CreateOrgRequest struct {
	Name string `json:"name"`
}

// Validate checks required fields.
func (r *CreateOrgRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreateOrgResponse is returned by POST /orgs.
type CreateOrgResponse struct {
	ID string `json:"id"`
}

// OrgResponse is the wire form of an organization in listings. The id is not exposed.
type OrgResponse struct {
	Name string `json:"name"`
}

// ListOrgsResponse is returned by GET /orgs.
type ListOrgsResponse struct {
	Count int64         `json:"count"`
	Data  []OrgResponse `json:"data"`
}

// Handler serves the /orgs endpoints.
type Handler struct {
	svc          *service.OrgService
	defaultLimit int64
}

// NewHandler returns an organization Handler.
func NewHandler(svc *service.OrgService, defaultLimit int64) *Handler {
	return &Handler{svc: svc, defaultLimit: defaultLimit}
}

// RegisterRoutes mounts the organization endpoints on r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/orgs", h.createOrg).Methods(http.MethodPost)
	r.HandleFunc("/orgs", h.listOrgs).Methods(http.MethodGet)
}

func (h *Handler) createOrg(w http.ResponseWriter, r *http.Request) {
	var req CreateOrgRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	id, err := h.svc.Create(r.Context(), req.Name)
	if errors.Is(err, domain.ErrDuplicateOrg) {
		httputil.WriteBadRequest(w, "Org already exists")
		return
	}
	if err != nil {
		httputil.WriteUnexpectedError(w, r, err)
		return
	}
	_ = httputil.WriteSuccess(w, CreateOrgResponse{ID: id})
}

func (h *Handler) listOrgs(w http.ResponseWriter, r *http.Request) {
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
	resp := ListOrgsResponse{Count: page.Count, Data: make([]OrgResponse, 0, len(page.Items))}
	for _, o := range page.Items {
		resp.Data = append(resp.Data, OrgResponse{Name: o.Name})
	}
	_ = httputil.WriteSuccess(w, resp)
}
