package main

import (
	"context"
	"fmt"
	stdlog "log"
	"log/slog"
	"os"

	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/github"

	"github.com/musec/clowder/internal/handler"
	"github.com/musec/clowder/internal/log"
	"github.com/musec/clowder/internal/middleware"
	"github.com/musec/clowder/internal/server"
	"github.com/musec/clowder/pkg/config"
	"github.com/musec/clowder/pkg/machine"
	"github.com/musec/clowder/pkg/reservation"
	"github.com/musec/clowder/pkg/role"
	"github.com/musec/clowder/pkg/storage"
	"github.com/musec/clowder/pkg/token"
	"github.com/musec/clowder/pkg/user"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.New(ctx)
	if err != nil {
		return err
	}

	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	db, err := storage.NewDatabase(cfg.Postgresql, logger)
	if err != nil {
		return fmt.Errorf("failed to setup database: %v", err)
	}

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	goth.UseProviders(github.New(cfg.Github.ClientID, cfg.Github.ClientSecret, cfg.Github.CallbackURL, "read:user"))

	privateKey, err := cfg.Authentication.GetPrivateKey()
	if err != nil {
		return err
	}

	sameSiteMode, err := cfg.Authentication.GetSameSiteMode()
	if err != nil {
		return err
	}

	tokenService := token.NewService(privateKey, cfg.Authentication.AccessTokenExpirationSeconds)

	userRepository := user.NewRepository(db)
	userService := user.NewService(userRepository)
	userHandler := user.NewHandler(userService)

	roleRepository := role.NewRepository(db)
	roleService := role.NewService(roleRepository)
	roleHandler := role.NewHandler(roleService)

	machineRepository := machine.NewRepository(db)
	machineService := machine.NewService(machineRepository)
	machineHandler := machine.NewHandler(machineService)

	reservationRepository := reservation.NewRepository(db)
	reservationService := reservation.NewService(reservationRepository, userService, machineService)
	reservationHandler := reservation.NewHandler(reservationService)

	authenticationMiddleware := middleware.NewAuthentication(tokenService, userService, cfg.Authentication.FakeGithubUsername)
	authorizationMiddleware := middleware.NewAuthorization(logger)
	ssoMiddleware := middleware.NewSSO(userService, tokenService, cfg.Hostname, sameSiteMode, cfg.Authentication.AccessTokenExpirationSeconds)

	handlers := server.Handlers{
		User:        userHandler,
		Role:        roleHandler,
		Machine:     machineHandler,
		Reservation: reservationHandler,
	}

	r := server.GetEngine(logger, cfg.BasePath, handlers, authenticationMiddleware, authorizationMiddleware, ssoMiddleware)
	return r.Run(fmt.Sprintf(":%d", cfg.Port))
}
