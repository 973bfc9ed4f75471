package handler

import (
	"net/http"

	"github.com/vidstream/vidstream/internal/ctxkeys"
	"github.com/vidstream/vidstream/internal/httpx"
	"github.com/vidstream/vidstream/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Channel handles GET /c/{username}: the channel profile aggregation as seen
// by the requesting user.
func (h *ProfileHandler) Channel(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	username := r.PathValue("username")

	profile, err := h.profileService.ChannelProfile(username, user.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, profile, "user channel fetched successfully")
}

// WatchHistory handles GET /history for the authenticated user.
func (h *ProfileHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	entries, err := h.profileService.WatchHistory(user.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, entries, "watch history fetched successfully")
}
