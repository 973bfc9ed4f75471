package routes

import (
	"net/http"

	"github.com/vidstream/vidstream/internal/apperr"
	"github.com/vidstream/vidstream/internal/app"
	"github.com/vidstream/vidstream/internal/handler"
	"github.com/vidstream/vidstream/internal/httpx"
	"github.com/vidstream/vidstream/internal/middleware"
)

const usersPrefix = "/api/v1/users"

func SetupRoutes(a *app.App) http.Handler {
	auth := handler.NewAuthHandler(a.AuthService, a.AccountService)
	account := handler.NewAccountHandler(a.AccountService)
	profile := handler.NewProfileHandler(a.ProfileService)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]any{"status": "ok"}, "service is up")
	})

	// Public
	mux.HandleFunc("POST "+usersPrefix+"/register", auth.Register)
	mux.HandleFunc("POST "+usersPrefix+"/login", auth.Login)
	mux.HandleFunc("POST "+usersPrefix+"/refresh-token", auth.RefreshToken)

	// Access token required
	mux.HandleFunc("POST "+usersPrefix+"/logout", middleware.RequireAuth(auth.Logout))
	mux.HandleFunc("POST "+usersPrefix+"/change-password", middleware.RequireAuth(auth.ChangePassword))
	mux.HandleFunc("GET "+usersPrefix+"/current-user", middleware.RequireAuth(account.CurrentUser))
	mux.HandleFunc("PATCH "+usersPrefix+"/update-account", middleware.RequireAuth(account.UpdateAccount))
	mux.HandleFunc("PATCH "+usersPrefix+"/update-avatar", middleware.RequireAuth(account.UpdateAvatar))
	mux.HandleFunc("PATCH "+usersPrefix+"/update-coverImage", middleware.RequireAuth(account.UpdateCoverImage))
	mux.HandleFunc("GET "+usersPrefix+"/c/{username}", middleware.RequireAuth(profile.Channel))
	mux.HandleFunc("GET "+usersPrefix+"/history", middleware.RequireAuth(profile.WatchHistory))

	// 404 fallback keeps the JSON envelope
	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		httpx.Error(w, apperr.NotFound("route not found"))
	})

	return middleware.Chain(
		mux,
		middleware.CORS(a.Cfg.CORSOrigin),
		middleware.RequestLogging,
		middleware.Auth(a.TokenService, a.UserRepository),
	)
}
