package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tripbound/internal/models"
	"tripbound/internal/service"
)

// LinkHandler exposes trip links
type LinkHandler struct {
	linkService *service.LinkService
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkService *service.LinkService) *LinkHandler {
	return &LinkHandler{linkService: linkService}
}

type linkRequest struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

type linkResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	OwnerEmail string `json:"ownerEmail"`
}

func newLinkResponse(l *models.Link) linkResponse {
	return linkResponse{ID: l.ID, Title: l.Title, URL: l.URL, OwnerEmail: l.OwnerEmail}
}

// CreateLink handles POST /trips/{tripId}/links
func (h *LinkHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	link, err := h.linkService.CreateLink(r.PathValue("tripId"), caller.Email, req.Title, req.URL)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newLinkResponse(link))
}

// ListLinks handles GET /trips/{tripId}/links
func (h *LinkHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.linkService.ListLinks(r.PathValue("tripId"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	resp := make([]linkResponse, 0, len(links))
	for i := range links {
		resp = append(resp, newLinkResponse(&links[i]))
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// UpdateLink handles PUT /trips/{tripId}/links/{linkId}; trip owner or
// creator only
func (h *LinkHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	linkID, err := strconv.ParseInt(r.PathValue("linkId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid link id", err)
		return
	}

	var req linkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	link, err := h.linkService.UpdateLink(r.PathValue("tripId"), linkID, caller.Email, req.Title, req.URL)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newLinkResponse(link))
}

// DeleteLink handles DELETE /trips/{tripId}/links/{linkId}; trip owner
// or creator only
func (h *LinkHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	linkID, err := strconv.ParseInt(r.PathValue("linkId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid link id", err)
		return
	}

	if err := h.linkService.DeleteLink(r.PathValue("tripId"), linkID, caller.Email); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllLinks handles DELETE /trips/{tripId}/links; trip owner only
func (h *LinkHandler) DeleteAllLinks(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	if err := h.linkService.DeleteAllLinks(r.PathValue("tripId"), caller.Email); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
