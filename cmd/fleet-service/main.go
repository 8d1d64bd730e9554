package main

import (
	"fmt"
	"os"

	"fleet-service/internal/auth"
	"fleet-service/internal/cache"
	"fleet-service/internal/config"
	"fleet-service/internal/db"
	httphandler "fleet-service/internal/http"
	"fleet-service/internal/http/middleware"
	"fleet-service/internal/logger"
	"fleet-service/internal/repository"
	"fleet-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, "fleet-service")

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	vehicleCache := cache.New(cfg.Redis, log)
	defer vehicleCache.Close()

	userRepo := repository.NewUserRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	vehicleRepo := repository.NewVehicleRepository(database)
	contractRepo := repository.NewContractRepository(database)
	fineRepo := repository.NewFineRepository(database)

	tokenIssuer := auth.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.TokenTTL)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	authService := service.NewAuthService(userRepo, tokenIssuer, log)
	companyService := service.NewCompanyService(companyRepo, log)
	vehicleService := service.NewVehicleService(vehicleRepo, vehicleCache, log)
	contractService := service.NewContractService(contractRepo, vehicleRepo, companyRepo, vehicleCache, cfg.Contract.AllowEmptyVehicleSet, log)
	fineService := service.NewFineService(fineRepo, vehicleRepo, log)

	handler := httphandler.NewHandler(authService, companyService, vehicleService, contractService, fineService, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting fleet service")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
