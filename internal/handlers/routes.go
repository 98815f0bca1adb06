package handlers

import "net/http"

// TripServerRoutes assembles the trip service's route table. Every
// route requires the gateway's trusted identity headers.
func TripServerRoutes(trips *TripHandler, invites *InviteHandler, activities *ActivityHandler, links *LinkHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /trips", RequireIdentity(trips.CreateTrip))
	mux.HandleFunc("GET /trips/{tripId}", RequireIdentity(trips.GetTrip))
	mux.HandleFunc("PUT /trips/{tripId}", RequireIdentity(trips.UpdateTrip))
	mux.HandleFunc("PATCH /trips/{tripId}/confirm", RequireIdentity(trips.ConfirmTrip))
	mux.HandleFunc("GET /trips/{tripId}/participants", RequireIdentity(trips.ListParticipants))

	mux.HandleFunc("POST /trips/{tripId}/invites", RequireIdentity(invites.CreateInvite))
	mux.HandleFunc("GET /trips/{tripId}/invites", RequireIdentity(invites.ListInvites))
	mux.HandleFunc("DELETE /trips/{tripId}/invites/{code}", RequireIdentity(invites.RevokeInvite))

	mux.HandleFunc("POST /participants/{code}/confirm", RequireIdentity(trips.RedeemInvite))

	mux.HandleFunc("POST /trips/{tripId}/activities", RequireIdentity(activities.CreateActivity))
	mux.HandleFunc("GET /trips/{tripId}/activities", RequireIdentity(activities.ListActivities))
	mux.HandleFunc("PUT /trips/{tripId}/activities/{activityId}", RequireIdentity(activities.UpdateActivity))
	mux.HandleFunc("DELETE /trips/{tripId}/activities/{activityId}", RequireIdentity(activities.DeleteActivity))
	mux.HandleFunc("DELETE /trips/{tripId}/activities", RequireIdentity(activities.DeleteAllActivities))

	mux.HandleFunc("POST /trips/{tripId}/links", RequireIdentity(links.CreateLink))
	mux.HandleFunc("GET /trips/{tripId}/links", RequireIdentity(links.ListLinks))
	mux.HandleFunc("PUT /trips/{tripId}/links/{linkId}", RequireIdentity(links.UpdateLink))
	mux.HandleFunc("DELETE /trips/{tripId}/links/{linkId}", RequireIdentity(links.DeleteLink))
	mux.HandleFunc("DELETE /trips/{tripId}/links", RequireIdentity(links.DeleteAllLinks))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return Logging(mux)
}
