package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/ctxkeys"
	"github.com/vidstream/vidstream/internal/httpx"
	"github.com/vidstream/vidstream/internal/service"
)

const maxMultipartMemory = 16 << 20 // 16MB

type AuthHandler struct {
	authService    *service.AuthService
	accountService *service.AccountService
}

func NewAuthHandler(authService *service.AuthService, accountService *service.AccountService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
	}
}

// Register handles POST /register: multipart form with user fields, a
// required avatar file and an optional cover image.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxMultipartMemory)
	if err != nil {
		httpx.Error(w, apperr.Validation("invalid multipart form"))
		return
	}

	in := service.RegisterInput{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
		Password: r.FormValue("password"),
	}

	user, err := h.accountService.Register(r.Context(), in, formFile(r, "avatar"), formFile(r, "coverImage"))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, user, "user created successfully")
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /login and delivers the token pair both as cookies and
// in the response body.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeRequest(r, &req, func(form formReader) {
		req.Username = form("username")
		req.Email = form("email")
		req.Password = form("password")
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	user, pair, err := h.authService.Login(req.Username, req.Email, req.Password)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	h.authService.SetAuthCookies(w, pair)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout handles POST /logout: clears the stored refresh token and both
// cookies. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.authService.Logout(user.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	h.authService.ClearAuthCookies(w)
	slog.Info("user logged out", "user_id", user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{}, "user logged out successfully")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken handles POST /refresh-token. The token may arrive as a cookie
// or in the body; rotation invalidates the presented value.
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	presented := ""
	cookie, err := r.Cookie("refreshToken")
	if err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req refreshRequest
		err = decodeRequest(r, &req, func(form formReader) {
			req.RefreshToken = form("refreshToken")
		})
		if err != nil {
			httpx.Error(w, err)
			return
		}
		presented = req.RefreshToken
	}

	pair, err := h.authService.Refresh(presented)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	h.authService.SetAuthCookies(w, pair)
	httpx.JSON(w, http.StatusOK, pair, "access token refreshed")
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ChangePassword handles POST /change-password for the authenticated user.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req changePasswordRequest
	err := decodeRequest(r, &req, func(form formReader) {
		req.OldPassword = form("oldPassword")
		req.NewPassword = form("newPassword")
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	err = h.authService.ChangePassword(user.ID, req.OldPassword, req.NewPassword)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{}, "password updated")
}

// formFile returns the first uploaded file for the field, or nil when absent.
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}
