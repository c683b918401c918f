package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/colhetron/separacao-api/internal/application/audit"
	"github.com/colhetron/separacao-api/internal/application/auth"
	"github.com/colhetron/separacao-api/internal/application/billing"
	"github.com/colhetron/separacao-api/internal/application/cadastro"
	"github.com/colhetron/separacao-api/internal/application/media"
	appsep "github.com/colhetron/separacao-api/internal/application/separation"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	UploadUC   *appsep.UploadUseCase
	SepUC      *appsep.UseCase
	CutUC      *appsep.CutUseCase
	ReinfUC    *appsep.ReinforcementUseCase
	MediaUC    *media.UseCase
	CadastroUC *cadastro.UseCase
	BillingUC  *billing.ExportUseCase
	Activity   *audit.ActivityLogger
	JWTSecret  string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/recover", authHandler.RequestRecovery)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Separações (protegido)
	seps := protected.Group("/separations")
	sepHandler := NewSeparationHandler(deps.UploadUC, deps.SepUC, deps.CutUC, deps.ReinfUC)
	seps.Post("/upload", sepHandler.Upload)
	seps.Post("/reinforcement", sepHandler.Reinforcement)
	seps.Get("/", sepHandler.List)
	seps.Get("/active", sepHandler.GetActive)
	seps.Get("/active/items", sepHandler.ListItems)
	seps.Put("/active/quantities", sepHandler.UpdateQuantity)
	seps.Post("/active/cut", sepHandler.Cut)
	seps.Post("/active/finalize", sepHandler.Finalize)
	seps.Get("/:id", sepHandler.GetByID)

	// Análise de médias (protegido)
	mediaGroup := protected.Group("/media")
	mediaHandler := NewMediaHandler(deps.MediaUC)
	mediaGroup.Get("/", mediaHandler.List)
	mediaGroup.Post("/", mediaHandler.Add)
	mediaGroup.Delete("/", mediaHandler.Clear)
	mediaGroup.Put("/:id", mediaHandler.Update)
	mediaGroup.Post("/:id/force-ok", mediaHandler.ForceOK)
	mediaGroup.Post("/:id/custom-media", mediaHandler.SetCustomMedia)

	// Cadastros (protegido)
	cadastroHandler := NewCadastroHandler(deps.CadastroUC)
	lojas := protected.Group("/lojas")
	lojas.Post("/", cadastroHandler.CreateLoja)
	lojas.Get("/", cadastroHandler.ListLojas)
	lojas.Post("/import", cadastroHandler.ImportLojas)
	lojas.Get("/:codigo", cadastroHandler.GetLoja)
	lojas.Delete("/:codigo", RequireAdmin(), cadastroHandler.DeleteLoja)

	materiais := protected.Group("/materiais")
	materiais.Post("/", cadastroHandler.CreateMaterial)
	materiais.Get("/", cadastroHandler.ListMateriais)
	materiais.Post("/import", cadastroHandler.ImportMateriais)
	materiais.Get("/:codigo", cadastroHandler.GetMaterial)

	// Faturamento (protegido)
	billingGroup := protected.Group("/billing")
	billingHandler := NewBillingHandler(deps.BillingUC)
	billingGroup.Get("/sheet", billingHandler.DownloadSheet)
	billingGroup.Get("/report", billingHandler.DownloadReportPDF)

	// Histórico de atividades (protegido)
	activityHandler := NewActivityHandler(deps.Activity)
	protected.Get("/activity", activityHandler.List)
}
