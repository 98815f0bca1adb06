package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"tripbound/internal/models"
	"tripbound/internal/service"
	"tripbound/internal/validation"
)

// ActivityHandler exposes trip itinerary items
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type activityRequest struct {
	Title    string `json:"title"`
	OccursAt string `json:"occursAt"`
}

type activityResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	OccursAt   string `json:"occursAt"`
	OwnerEmail string `json:"ownerEmail"`
}

func newActivityResponse(a *models.Activity) activityResponse {
	return activityResponse{
		ID:         a.ID,
		Title:      a.Title,
		OccursAt:   a.OccursAt.Format(time.RFC3339),
		OwnerEmail: a.OwnerEmail,
	}
}

func parseOccursAt(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, validation.FieldError{Field: "occursAt", Message: "must be an RFC 3339 timestamp"}
	}
	return t, nil
}

// CreateActivity handles POST /trips/{tripId}/activities
func (h *ActivityHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	occursAt, err := parseOccursAt(req.OccursAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	activity, err := h.activityService.CreateActivity(r.PathValue("tripId"), caller.Email, req.Title, occursAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, newActivityResponse(activity))
}

// ListActivities handles GET /trips/{tripId}/activities
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activityService.ListActivities(r.PathValue("tripId"))
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	resp := make([]activityResponse, 0, len(activities))
	for i := range activities {
		resp = append(resp, newActivityResponse(&activities[i]))
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// UpdateActivity handles PUT /trips/{tripId}/activities/{activityId};
// trip owner or creator only
func (h *ActivityHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	activityID, err := strconv.ParseInt(r.PathValue("activityId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid activity id", err)
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	occursAt, err := parseOccursAt(req.OccursAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	activity, err := h.activityService.UpdateActivity(r.PathValue("tripId"), activityID, caller.Email, req.Title, occursAt)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newActivityResponse(activity))
}

// DeleteActivity handles DELETE /trips/{tripId}/activities/{activityId};
// trip owner or creator only
func (h *ActivityHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	activityID, err := strconv.ParseInt(r.PathValue("activityId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid activity id", err)
		return
	}

	if err := h.activityService.DeleteActivity(r.PathValue("tripId"), activityID, caller.Email); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllActivities handles DELETE /trips/{tripId}/activities; trip
// owner only
func (h *ActivityHandler) DeleteAllActivities(w http.ResponseWriter, r *http.Request) {
	caller := GetCallerFromContext(r.Context())

	if err := h.activityService.DeleteAllActivities(r.PathValue("tripId"), caller.Email); err != nil {
		respondWithServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
