package handlers

import (
	"encoding/json"
	"net/http"

	"tripbound/internal/models"
	"tripbound/internal/service"
)

// InviteHandler exposes the invite lifecycle
type InviteHandler struct {
	inviteService *service.InviteService
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteService *service.InviteService) *InviteHandler {
	return &InviteHandler{inviteService: inviteService}
}

type createInviteRequest struct {
	Email string `json:"email"`
}

type createInviteResponse struct {
	InvitedEmail string `json:"invitedEmail"`
}

// CreateInvite handles POST /trips/{tripId}/invites; owner only
func (h *InviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	var req createInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	invitedEmail, err := h.inviteService.CreateInvite(r.Context(), r.PathValue("tripId"), caller.Email, req.Email)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, createInviteResponse{InvitedEmail: invitedEmail})
}

type inviteResponse struct {
	Code         string `json:"code"`
	InviteeName  string `json:"inviteeName"`
	InviteeEmail string `json:"inviteeEmail"`
	IsValid      bool   `json:"isValid"`
}

func newInviteResponses(invites []models.Invite) []inviteResponse {
	resp := make([]inviteResponse, 0, len(invites))
	for _, inv := range invites {
		resp = append(resp, inviteResponse{
			Code:         inv.Code,
			InviteeName:  inv.InviteeName,
			InviteeEmail: inv.InviteeEmail,
			IsValid:      inv.IsValid,
		})
	}
	return resp
}

// ListInvites handles GET /trips/{tripId}/invites; owner only
func (h *InviteHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	invites, err := h.inviteService.ListInvites(r.PathValue("tripId"), caller.Email)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newInviteResponses(invites))
}

// RevokeInvite handles DELETE /trips/{tripId}/invites/{code}; owner only
func (h *InviteHandler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	if err := h.inviteService.RevokeInvite(r.PathValue("tripId"), caller.Email, r.PathValue("code")); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
