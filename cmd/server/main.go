package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ArowuTest/lottery-odds/internal/auth"
	"github.com/ArowuTest/lottery-odds/internal/config"
	"github.com/ArowuTest/lottery-odds/internal/handlers"
	"github.com/ArowuTest/lottery-odds/internal/logger"
	"github.com/ArowuTest/lottery-odds/internal/models"
)

func main() {
	// Load config & init
	appCfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log.Logger = logger.New(os.Stdout, logger.ParseLevel(appCfg.LogLevel))

	db, err := config.InitDB(appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	if appCfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET_KEY is empty; admin login will fail")
	}
	auth.Init(appCfg.JWTSecret, appCfg.JWTTTL())

	// Seed the first admin when credentials are provided
	if appCfg.AdminUsername != "" && appCfg.AdminPassword != "" {
		created, err := models.EnsureAdmin(db, appCfg.AdminUsername, appCfg.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("seeding admin user failed")
		}
		if created {
			log.Info().Str("username", appCfg.AdminUsername).Msg("admin user created")
		}
	}

	r := handlers.NewRouter(appCfg)

	log.Info().Str("port", appCfg.Port).Msg("listening")
	if err := r.Run(":" + appCfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
