package main // Entry point package

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/advenue/foodadmin/internal/config"
	"github.com/advenue/foodadmin/internal/database"
	"github.com/advenue/foodadmin/internal/handler"
	"github.com/advenue/foodadmin/internal/logger"
	"github.com/advenue/foodadmin/internal/repository"
	"github.com/advenue/foodadmin/internal/router"
	"github.com/advenue/foodadmin/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	lg, err := logger.Init(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()
	sugar := lg.Sugar()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Session store: Redis when reachable, in-process otherwise.
	var store session.Store
	if rdb := config.NewRedisClient(); rdb != nil {
		store = session.NewRedisStore(rdb)
		sugar.Info("sessions backed by redis")
	} else {
		store = session.NewMemoryStore()
		sugar.Warn("redis unavailable, sessions kept in process")
	}
	sessions := session.NewManager(store, time.Duration(cfg.SessionTTLMin)*time.Minute)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	foods := repository.NewFoodRepo(db)
	categories := repository.NewCategoryRepo(db)

	auth := handler.NewAuthHandler(cfg, users, tokens)
	food := handler.NewFoodHandler(cfg, foods, categories)
	adminAuth := handler.NewAdminAuthHandler(cfg, users, sessions)
	adminUsers := handler.NewAdminUserHandler(cfg, users, sessions)
	sso := handler.NewSSOHandler(cfg, users, sessions, lg)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, auth, food, tokens, users)
	router.RegisterAdmin(e, adminAuth, adminUsers, sso, sessions)

	addr := ":" + cfg.Port
	sugar.Infow("listening", "addr", addr, "env", cfg.Env)

	if err := e.Start(addr); err != nil {
		sugar.Fatal(err)
	}
}
