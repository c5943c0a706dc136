package app

import (
	"fmt"

	"github.com/guardline/guardline/internal/config"
	"github.com/guardline/guardline/internal/db"
	"github.com/guardline/guardline/internal/notify"
	"github.com/guardline/guardline/internal/repository"
	"github.com/guardline/guardline/internal/service"
	"github.com/guardline/guardline/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	AuthService      *service.AuthService
	UserService      *service.UserService
	ContactService   *service.ContactService
	SosService       *service.SosService
	VoiceNoteService *service.VoiceNoteService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	contactRepository := repository.NewContactRepository(database)
	sosAlertRepository := repository.NewSosAlertRepository(database)
	voiceNoteRepository := repository.NewVoiceNoteRepository(database)

	// Storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.IsProduction(), cfg.JWTExpiry)
	userService := service.NewUserService(userRepository)
	contactService := service.NewContactService(contactRepository)
	sosService := service.NewSosService(sosAlertRepository, contactRepository, notify.NewLogNotifier())
	voiceNoteService := service.NewVoiceNoteService(voiceNoteRepository, blobStorage)

	return &App{
		Cfg:              cfg,
		DB:               database,
		AuthService:      authService,
		UserService:      userService,
		ContactService:   contactService,
		SosService:       sosService,
		VoiceNoteService: voiceNoteService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
