package di

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ripu1821/mobile-auth-service/internal/app"
	"github.com/ripu1821/mobile-auth-service/internal/config"
	"github.com/ripu1821/mobile-auth-service/internal/database"
	"github.com/ripu1821/mobile-auth-service/internal/http/handler"
	"github.com/ripu1821/mobile-auth-service/internal/http/middleware"
	"github.com/ripu1821/mobile-auth-service/internal/http/router"
	"github.com/ripu1821/mobile-auth-service/internal/observability"
	"github.com/ripu1821/mobile-auth-service/internal/repository"
	"github.com/ripu1821/mobile-auth-service/internal/security"
	"github.com/ripu1821/mobile-auth-service/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(provideLogger)

var InfraSet = wire.NewSet(provideDB, provideRedisClient)

var SecuritySet = wire.NewSet(provideTokenManager)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewDeviceSessionRepository,
)

var ServiceSet = wire.NewSet(
	provideTokenBlacklist,
	provideOTPVerifier,
	provideAuthService,
	wire.Bind(new(service.AuthServiceInterface), new(*service.AuthService)),
	provideUserService,
	wire.Bind(new(service.UserServiceInterface), new(*service.UserService)),
	service.NewDeviceService,
	wire.Bind(new(service.DeviceServiceInterface), new(*service.DeviceService)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewDeviceHandler,
	middleware.NewTokenGuard,
	provideRateLimiter,
	provideRouterDependencies,
	router.New,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

func provideLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.LogLevel)
}

func provideDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func provideTokenManager(cfg *config.Config) *security.TokenManager {
	return security.NewTokenManager(
		cfg.JWTIssuer,
		cfg.JWTAudience,
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTAccessTTL,
		cfg.JWTRefreshTTL,
	)
}

func provideTokenBlacklist(client redis.UniversalClient, cfg *config.Config) service.TokenBlacklist {
	return service.NewRedisTokenBlacklist(client, "revoked", cfg.JWTAccessTTL)
}

func provideOTPVerifier(cfg *config.Config) service.OTPVerifier {
	return service.NewStaticOTPVerifier(cfg.StaticOTPCode)
}

func provideAuthService(
	users repository.UserRepository,
	sessions repository.DeviceSessionRepository,
	tokens *security.TokenManager,
	blacklist service.TokenBlacklist,
	otp service.OTPVerifier,
	cfg *config.Config,
) *service.AuthService {
	return service.NewAuthService(users, sessions, tokens, blacklist, otp, cfg.EncryptionKey, cfg.PhoneDefaultRegion)
}

func provideUserService(users repository.UserRepository, cfg *config.Config) *service.UserService {
	return service.NewUserService(users, cfg.PhoneDefaultRegion)
}

func provideRateLimiter(client redis.UniversalClient, cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(client, cfg.AuthRateLimitPerMin)
}

func provideRouterDependencies(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	deviceHandler *handler.DeviceHandler,
	guard *middleware.TokenGuard,
	limiter *middleware.RateLimiter,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:   authHandler,
		UserHandler:   userHandler,
		DeviceHandler: deviceHandler,
		TokenGuard:    guard,
		RateLimiter:   limiter,
	}
}

func provideHTTPServer(cfg *config.Config, mux *chi.Mux) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
