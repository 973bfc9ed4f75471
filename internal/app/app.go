package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vidstream/vidstream/internal/config"
	"github.com/vidstream/vidstream/internal/db"
	"github.com/vidstream/vidstream/internal/repository"
	"github.com/vidstream/vidstream/internal/service"
	"github.com/vidstream/vidstream/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	UserRepository repository.UserRepository
	TokenService   *service.TokenService
	AuthService    *service.AuthService
	AccountService *service.AccountService
	ProfileService *service.ProfileService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	profileRepository := repository.NewProfileRepository(database)

	// Storage
	mediaStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Services
	tokenService := service.NewTokenService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenExpiry,
		cfg.RefreshTokenExpiry,
	)
	authService := service.NewAuthService(userRepository, tokenService, cfg.IsProduction(), cfg.RefreshTokenExpiry)
	accountService := service.NewAccountService(userRepository, mediaStorage, authService)
	profileService := service.NewProfileService(profileRepository)

	return &App{
		Cfg:            cfg,
		DB:             database,
		UserRepository: userRepository,
		TokenService:   tokenService,
		AuthService:    authService,
		AccountService: accountService,
		ProfileService: profileService,
	}, nil
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
