package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/crm-pro/internal/application/admin"
	"github.com/jhoicas/crm-pro/internal/application/auth"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/application/usecase"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	CompanyUC     *usecase.CompanyUseCase
	OpportunityUC *usecase.OpportunityUseCase
	ActivityUC    *usecase.ActivityUseCase
	UsageUC       *usecase.UsageUseCase
	AccountUC     *usecase.AccountUseCase
	OverrideUC    *admin.OverrideUseCase
	Resolver      *permission.Resolver
	JWTSecret     string
}

// Router registra las rutas de la API. Cada grupo de recursos va detrás del
// middleware de permisos de su módulo; la acción de la ruta (view/create/
// edit/delete) decide qué capacidad se exige. El POST de users y companies
// NO lleva RequirePermission(create): el guard atómico del use case ya
// resuelve dentro de la transacción y el chequeo previo sin bloqueo sería
// solo una carrera perdida.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usage (protegido, informativo)
	usageHandler := NewUsageHandler(deps.UsageUC)
	protected.Get("/usage", usageHandler.Summary)

	// Users (protegido, módulo USERS)
	users := protected.Group("/users", RequirePermission(entity.ModuleUsers, ActionView, deps.Resolver))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Register)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", RequirePermission(entity.ModuleUsers, ActionDelete, deps.Resolver), userHandler.Delete)

	// Companies (protegido, módulo CONTACTS)
	companies := protected.Group("/companies", RequirePermission(entity.ModuleContacts, ActionView, deps.Resolver))
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", RequirePermission(entity.ModuleContacts, ActionEdit, deps.Resolver), companyHandler.Update)
	companies.Delete("/:id", RequirePermission(entity.ModuleContacts, ActionDelete, deps.Resolver), companyHandler.Delete)

	// Opportunities (protegido, módulo CRM)
	opportunities := protected.Group("/opportunities", RequirePermission(entity.ModuleCRM, ActionView, deps.Resolver))
	opportunityHandler := NewOpportunityHandler(deps.OpportunityUC)
	opportunities.Post("/", RequirePermission(entity.ModuleCRM, ActionCreate, deps.Resolver), opportunityHandler.Create)
	opportunities.Get("/", opportunityHandler.List)
	opportunities.Get("/:id", opportunityHandler.GetByID)
	opportunities.Put("/:id", RequirePermission(entity.ModuleCRM, ActionEdit, deps.Resolver), opportunityHandler.Update)
	opportunities.Delete("/:id", RequirePermission(entity.ModuleCRM, ActionDelete, deps.Resolver), opportunityHandler.Delete)

	// Activities (protegido, módulo ACTIVITIES)
	activities := protected.Group("/activities", RequirePermission(entity.ModuleActivities, ActionView, deps.Resolver))
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Post("/", RequirePermission(entity.ModuleActivities, ActionCreate, deps.Resolver), activityHandler.Create)
	activities.Get("/", activityHandler.List)
	activities.Put("/:id", RequirePermission(entity.ModuleActivities, ActionEdit, deps.Resolver), activityHandler.Update)
	activities.Delete("/:id", RequirePermission(entity.ModuleActivities, ActionDelete, deps.Resolver), activityHandler.Delete)

	// Admin (protegido, solo owner/admin)
	adminGroup := protected.Group("/admin", RequireAdmin())
	adminHandler := NewAdminHandler(deps.OverrideUC, deps.AccountUC)
	adminGroup.Get("/account", adminHandler.GetAccount)
	adminGroup.Put("/account/plan", adminHandler.ChangePlan)
	adminGroup.Delete("/account", adminHandler.DeactivateAccount)
	adminGroup.Post("/account/reactivate", adminHandler.ReactivateAccount)
	adminGroup.Put("/overrides", adminHandler.SetAccountOverride)
	adminGroup.Put("/permissions", adminHandler.SetUserPermission)
	adminGroup.Delete("/permissions/:userId", adminHandler.ResetUserPermissions)
}
