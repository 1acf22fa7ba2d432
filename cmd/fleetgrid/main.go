// Command fleetgrid runs the fleet management API: local and Azure AD
// authentication plus the base, trip, check-in/out, servicing, and quiz
// resources.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/driver/sqlite"

	"github.com/fleetgrid/fleetgrid/auth"
	"github.com/fleetgrid/fleetgrid/auth/azuread"
	"github.com/fleetgrid/fleetgrid/auth/password"
	"github.com/fleetgrid/fleetgrid/auth/token"
	"github.com/fleetgrid/fleetgrid/base"
	"github.com/fleetgrid/fleetgrid/checkinout"
	"github.com/fleetgrid/fleetgrid/config"
	"github.com/fleetgrid/fleetgrid/database"
	"github.com/fleetgrid/fleetgrid/logger"
	"github.com/fleetgrid/fleetgrid/quiz"
	"github.com/fleetgrid/fleetgrid/server"
	"github.com/fleetgrid/fleetgrid/servicing"
	"github.com/fleetgrid/fleetgrid/trip"
	"github.com/fleetgrid/fleetgrid/user"
	"github.com/fleetgrid/fleetgrid/validation"
)

func main() {
	if err := run(); err != nil {
		logger.GetGlobalLogger().Fatal("Startup failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func run() error {
	var cfg config.Config
	if err := config.Load("fleetgrid", &cfg); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(&cfg.Logging, cfg.Service.Name)
	log := logger.GetGlobalLogger()

	ctx := context.Background()

	db, err := database.Open(ctx, sqlite.Open(cfg.Database.DSN), cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		err := db.AutoMigrate(
			&user.User{},
			&base.Base{},
			&trip.Trip{},
			&checkinout.Event{},
			&servicing.Job{},
			&quiz.Quiz{},
			&quiz.Question{},
		)
		if err != nil {
			return err
		}
	}

	tokens, err := token.NewService(&cfg.JWT)
	if err != nil {
		return err
	}

	directory := user.NewGormDirectory(db.GormDB)
	hasher := password.NewHasher()

	var provider *azuread.Provider
	if cfg.Auth.AD.Configured() {
		provider, err = azuread.New(cfg.Auth.AD)
		if err != nil {
			return err
		}
	} else {
		log.Warn("Azure AD SSO not configured, SSO endpoints disabled")
	}

	local := auth.NewLocalStrategy(directory, hasher)
	ssoAPI := auth.NewSSOAPIStrategy(directory)
	ssoWeb := auth.NewSSOWebStrategy(directory)
	bearer := auth.NewBearerStrategy(tokens, directory)
	bearerQuery := auth.NewBearerQueryStrategy(tokens, directory)

	controller := auth.NewController(local, ssoAPI, ssoWeb, bearerQuery, tokens, provider, cfg.FrontEndHost, log)

	if err := validation.Register(); err != nil {
		return err
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterHealthEndpoint(cfg.Service.Name, db.PingContext)

	engine := srv.GinEngine()
	controller.RegisterRoutes(engine)

	guard := auth.BearerGuard(bearer)
	base.NewHandler(base.NewService(db.GormDB)).RegisterRoutes(engine, guard)
	trip.NewHandler(trip.NewService(db.GormDB)).RegisterRoutes(engine, guard)
	checkinout.NewHandler(checkinout.NewService(db.GormDB)).RegisterRoutes(engine, guard)
	servicing.NewHandler(servicing.NewService(db.GormDB)).RegisterRoutes(engine, guard)
	quiz.NewHandler(quiz.NewService(db.GormDB)).RegisterRoutes(engine, guard)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Info("Shutdown signal received", map[string]interface{}{
		"signal": s.String(),
	})

	return srv.Stop(ctx)
}
