package handler

import (
	"net/http"

	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/ctxkeys"
	"github.com/vidstream/vidstream/internal/httpx"
	"github.com/vidstream/vidstream/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CurrentUser handles GET /current-user.
func (h *AccountHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	current, err := h.accountService.CurrentUser(user.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, current, "current user fetched successfully")
}

type updateAccountRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
}

// UpdateAccount handles PATCH /update-account: fullName and/or email.
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req updateAccountRequest
	err := decodeRequest(r, &req, func(form formReader) {
		if v := form("fullName"); v != "" {
			req.FullName = &v
		}
		if v := form("email"); v != "" {
			req.Email = &v
		}
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	updated, err := h.accountService.UpdateAccount(user.ID, req.FullName, req.Email)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, updated, "account updated successfully")
}

// UpdateAvatar handles PATCH /update-avatar with a single file.
func (h *AccountHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar")
}

// UpdateCoverImage handles PATCH /update-coverImage with a single file.
func (h *AccountHandler) UpdateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage")
}

func (h *AccountHandler) updateImage(w http.ResponseWriter, r *http.Request, field string) {
	user := ctxkeys.User(r.Context())

	err := r.ParseMultipartForm(maxMultipartMemory)
	if err != nil {
		httpx.Error(w, apperr.Validation("invalid multipart form"))
		return
	}

	file := formFile(r, field)

	var updated any
	switch field {
	case "avatar":
		updated, err = h.accountService.UpdateAvatar(r.Context(), user.ID, file)
	default:
		updated, err = h.accountService.UpdateCoverImage(r.Context(), user.ID, file)
	}
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, updated, field+" updated successfully")
}
