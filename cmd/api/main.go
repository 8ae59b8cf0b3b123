package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/crm-pro/internal/application/admin"
	"github.com/jhoicas/crm-pro/internal/application/auth"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/application/usecase"
	"github.com/jhoicas/crm-pro/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/crm-pro/internal/interfaces/http"
	"github.com/jhoicas/crm-pro/pkg/config"
	"github.com/jhoicas/crm-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas y escrituras simples).
	accountRepo := postgres.NewBusinessAccountRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	opportunityRepo := postgres.NewOpportunityRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	overrideRepo := postgres.NewOverrideRepository(pool)
	usageCounter := postgres.NewUsageCounter(pool)
	usageRecordRepo := postgres.NewUsageRecordRepository(pool)

	// Motor de permisos: resolver sobre el pool para chequeos de lectura y
	// guard transaccional para las creaciones con límite.
	resolver := permission.NewResolver(accountRepo, planRepo, overrideRepo, usageCounter)
	txRunner := postgres.NewTxRunner(pool)
	guard := permission.NewLimitGuard(txRunner)

	authUC := auth.NewAuthUseCase(userRepo, accountRepo, planRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, guard)
	companyUC := usecase.NewCompanyUseCase(companyRepo, guard)
	opportunityUC := usecase.NewOpportunityUseCase(opportunityRepo, companyRepo, guard)
	activityUC := usecase.NewActivityUseCase(activityRepo, guard)
	usageUC := usecase.NewUsageUseCase(resolver, usageRecordRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo, planRepo)
	overrideUC := admin.NewOverrideUseCase(resolver, overrideRepo, userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		CompanyUC:     companyUC,
		OpportunityUC: opportunityUC,
		ActivityUC:    activityUC,
		UsageUC:       usageUC,
		AccountUC:     accountUC,
		OverrideUC:    overrideUC,
		Resolver:      resolver,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
