package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mkandie/acquisitions/internal/auth"
	"github.com/mkandie/acquisitions/internal/config"
	"github.com/mkandie/acquisitions/internal/http/handlers"
	"github.com/mkandie/acquisitions/internal/http/middlewares"
	"github.com/mkandie/acquisitions/internal/observability"
	"github.com/mkandie/acquisitions/internal/repo/postgres"
	"github.com/mkandie/acquisitions/internal/repo/rediscache"
	"github.com/mkandie/acquisitions/internal/service"
)

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client, prom *observability.Prom, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(1 << 20))
	r.Use(otelgin.Middleware("acquisitions"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// health

	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	// wire up the store; redis decorates the hot read paths when present

	var usersRepo service.UserRepo = postgres.NewUsersRepo(pool, prom)

	if rdb != nil {
		usersRepo = rediscache.NewUsersRepo(usersRepo, rdb, 0, log)
	}

	jwtManager := auth.NewManager(cfg.JWTSecret, auth.TokenTTL)

	authHandler := handlers.NewAuthHandler(service.NewAuthService(usersRepo, log), jwtManager, cfg)
	usersHandler := handlers.NewUsersHandler(service.NewUsersService(usersRepo, log))

	r.POST("/signup", authHandler.SignUp)
	r.POST("/signin", authHandler.SignIn)
	r.POST("/signout", authHandler.SignOut)

	r.GET("/users", usersHandler.GetUsers)
	r.GET("/users/:id", usersHandler.GetUser)
	r.PUT("/users/:id", usersHandler.UpdateUser)
	r.DELETE("/users/:id", usersHandler.DeleteUser)

	return r
}
