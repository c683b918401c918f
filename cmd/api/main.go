package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/auth"
	"github.com/colhetron/separacao-api/internal/application/billing"
	"github.com/colhetron/separacao-api/internal/application/cadastro"
	"github.com/colhetron/separacao-api/internal/application/media"
	appsep "github.com/colhetron/separacao-api/internal/application/separation"
	"github.com/colhetron/separacao-api/internal/infrastructure/excel"
	"github.com/colhetron/separacao-api/internal/infrastructure/mail"
	infrapdf "github.com/colhetron/separacao-api/internal/infrastructure/pdf"
	"github.com/colhetron/separacao-api/internal/infrastructure/postgres"
	httpRouter "github.com/colhetron/separacao-api/internal/interfaces/http"
	"github.com/colhetron/separacao-api/pkg/config"
	"github.com/colhetron/separacao-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com o PostgreSQL")
	}
	defer pool.Close()

	// Repositórios
	userRepo := postgres.NewUserRepository(pool)
	sepRepo := postgres.NewSeparationRepository(pool)
	itemRepo := postgres.NewSeparationItemRepository(pool)
	qtyRepo := postgres.NewQuantityRepository(pool)
	mediaRepo := postgres.NewMediaRepository(pool)
	lojaRepo := postgres.NewLojaRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	recoveryRepo := postgres.NewRecoveryCodeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Adaptadores
	orderParser := excel.NewOrderParser()
	cadastroParser := excel.NewCadastroParser()
	billingWriter := excel.NewBillingWriter()
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	mailer := mail.NewGomailSender(cfg.SMTP)

	// Casos de uso
	activity := audit.NewActivityLogger(activityRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, recoveryRepo, mailer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	uploadUC := appsep.NewUploadUseCase(txRunner, sepRepo, materialRepo, orderParser, activity)
	sepUC := appsep.NewUseCase(txRunner, sepRepo, itemRepo, qtyRepo, activity)
	cutUC := appsep.NewCutUseCase(sepRepo, itemRepo, qtyRepo, activity)
	reinfUC := appsep.NewReinforcementUseCase(txRunner, sepRepo, orderParser, activity)
	mediaUC := media.NewUseCase(mediaRepo, sepRepo, qtyRepo, activity)
	cadastroUC := cadastro.NewUseCase(lojaRepo, materialRepo, cadastroParser, activity)
	billingUC := billing.NewExportUseCase(sepRepo, itemRepo, qtyRepo, billingWriter, reportGenerator, activity)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // planilhas de pedidos podem passar do limite padrão
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Colhetron API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UploadUC:   uploadUC,
		SepUC:      sepUC,
		CutUC:      cutUC,
		ReinfUC:    reinfUC,
		MediaUC:    mediaUC,
		CadastroUC: cadastroUC,
		BillingUC:  billingUC,
		Activity:   activity,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
