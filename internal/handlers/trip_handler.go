package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tripbound/internal/models"
	"tripbound/internal/service"
)

// tripDateFormat is the wire form of trip start/end dates
const tripDateFormat = "2006-01-02"

// TripHandler exposes trips, redemption and participant listings
type TripHandler struct {
	tripService        *service.TripService
	admissionService   *service.AdmissionService
	participantService *service.ParticipantService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *service.TripService, admissionService *service.AdmissionService, participantService *service.ParticipantService) *TripHandler {
	return &TripHandler{
		tripService:        tripService,
		admissionService:   admissionService,
		participantService: participantService,
	}
}

type tripRequest struct {
	Destination string `json:"destination"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
}

type tripResponse struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	OwnerName   string `json:"ownerName"`
	OwnerEmail  string `json:"ownerEmail"`
	StartsAt    string `json:"startsAt"`
	EndsAt      string `json:"endsAt"`
	IsConfirmed bool   `json:"isConfirmed"`
}

func newTripResponse(trip *models.Trip) tripResponse {
	return tripResponse{
		ID:          trip.ID,
		Destination: trip.Destination,
		OwnerName:   trip.OwnerName,
		OwnerEmail:  trip.OwnerEmail,
		StartsAt:    trip.StartsAt.Format(tripDateFormat),
		EndsAt:      trip.EndsAt.Format(tripDateFormat),
		IsConfirmed: trip.IsConfirmed,
	}
}

func parseTripDate(field, value string) (time.Time, error) {
	t, err := time.Parse(tripDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date in the form %s", service.ErrInvalidDate, field, tripDateFormat)
	}
	return t, nil
}

// CreateTrip handles POST /trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	startsAt, err := parseTripDate("startsAt", req.StartsAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	endsAt, err := parseTripDate("endsAt", req.EndsAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	trip, err := h.tripService.CreateTrip(caller.ID, caller.Name, caller.Email, req.Destination, startsAt, endsAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newTripResponse(trip))
}

// GetTrip handles GET /trips/{tripId}
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	trip, err := h.tripService.GetTripOrFail(r.PathValue("tripId"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newTripResponse(trip))
}

// UpdateTrip handles PUT /trips/{tripId}; owner only
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	var req tripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	startsAt, err := parseTripDate("startsAt", req.StartsAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	endsAt, err := parseTripDate("endsAt", req.EndsAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	trip, err := h.tripService.UpdateTrip(r.PathValue("tripId"), caller.Email, req.Destination, startsAt, endsAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newTripResponse(trip))
}

// ConfirmTrip handles PATCH /trips/{tripId}/confirm; owner only
func (h *TripHandler) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	if err := h.tripService.ConfirmTrip(r.PathValue("tripId"), caller.Email); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type participantResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListParticipants handles GET /trips/{tripId}/participants
func (h *TripHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.participantService.ListParticipants(r.PathValue("tripId"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	resp := make([]participantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, participantResponse{ID: p.ID, Name: p.Name, Email: p.Email})
	}
	respondWithJSON(w, http.StatusOK, resp)
}

type redeemResponse struct {
	Participant participantResponse `json:"participant"`
	Trip        models.TripSummary  `json:"trip"`
}

// RedeemInvite handles POST /participants/{code}/confirm: consumes the
// invite and admits the caller as a participant.
func (h *TripHandler) RedeemInvite(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	participant, summary, err := h.admissionService.Redeem(r.PathValue("code"), caller.ID, caller.Email)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, redeemResponse{
		Participant: participantResponse{ID: participant.ID, Name: participant.Name, Email: participant.Email},
		Trip:        summary,
	})
}
