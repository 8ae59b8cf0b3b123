package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
	apphttp "github.com/jhoicas/crm-pro/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: un resolver real sobre repos en memoria, configurable por test.
// ──────────────────────────────────────────────────────────────────────────────

const fixPlanID = "plan-fix"

// fixture describe el estado que el resolver verá.
type fixture struct {
	planModule *entity.PlanModule                    // nil = módulo no incluido
	override   *entity.BusinessAccountModuleOverride // excepción por tenant
	count      int
	storeErr   error // inyectado en la consulta del plan
}

type fixAccounts struct{ f *fixture }

var _ repository.BusinessAccountRepository = fixAccounts{}

func (a fixAccounts) Create(context.Context, *entity.BusinessAccount) error { return nil }
func (a fixAccounts) GetByID(_ context.Context, id string) (*entity.BusinessAccount, error) {
	return &entity.BusinessAccount{
		ID: id, PlanID: fixPlanID, Status: entity.AccountStatusActive, IsActive: true,
	}, nil
}
func (a fixAccounts) Update(context.Context, *entity.BusinessAccount) error { return nil }
func (a fixAccounts) List(context.Context, int, int) ([]*entity.BusinessAccount, error) {
	return nil, nil
}
func (a fixAccounts) SetPlan(context.Context, string, string) error { return nil }
func (a fixAccounts) Deactivate(context.Context, string) error      { return nil }
func (a fixAccounts) Reactivate(context.Context, string) error      { return nil }

type fixPlans struct{ f *fixture }

var _ repository.PlanRepository = fixPlans{}

func (p fixPlans) GetByID(context.Context, string) (*entity.Plan, error)   { return nil, nil }
func (p fixPlans) GetByName(context.Context, string) (*entity.Plan, error) { return nil, nil }
func (p fixPlans) List(context.Context) ([]*entity.Plan, error)            { return nil, nil }
func (p fixPlans) GetModule(context.Context, string, entity.ModuleType) (*entity.PlanModule, error) {
	if p.f.storeErr != nil {
		return nil, p.f.storeErr
	}
	return p.f.planModule, nil
}
func (p fixPlans) ListModules(context.Context, string) ([]*entity.PlanModule, error) {
	return nil, nil
}
func (p fixPlans) UpsertPlan(context.Context, *entity.Plan) error         { return nil }
func (p fixPlans) UpsertModule(context.Context, *entity.PlanModule) error { return nil }

type fixOverrides struct{ f *fixture }

var _ repository.OverrideRepository = fixOverrides{}

func (o fixOverrides) GetAccountOverride(context.Context, string, entity.ModuleType) (*entity.BusinessAccountModuleOverride, error) {
	return o.f.override, nil
}
func (o fixOverrides) UpsertAccountOverride(context.Context, *entity.BusinessAccountModuleOverride) error {
	return nil
}
func (o fixOverrides) GetUserPermission(context.Context, string, entity.ModuleType) (*entity.UserModulePermission, error) {
	return nil, nil
}
func (o fixOverrides) UpsertUserPermission(context.Context, *entity.UserModulePermission) error {
	return nil
}
func (o fixOverrides) DeleteUserPermissions(context.Context, string, string) error { return nil }

type fixUsage struct{ f *fixture }

var _ repository.UsageCounter = fixUsage{}

func (u fixUsage) Count(context.Context, string, entity.ModuleType) (int, error) {
	return u.f.count, nil
}
func (u fixUsage) CountForUpdate(context.Context, string, entity.ModuleType) (int, error) {
	return u.f.count, nil
}

// buildPermissionApp monta una ruta protegida por RequirePermission sobre el
// fixture dado.
func buildPermissionApp(f *fixture, action apphttp.Action) *fiber.App {
	resolver := permission.NewResolver(fixAccounts{f}, fixPlans{f}, fixOverrides{f}, fixUsage{f})
	app := fiber.New()
	app.Get("/recurso",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequirePermission(entity.ModuleContacts, action, resolver),
		func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	return app
}

func includedModule(limit *int) *entity.PlanModule {
	return &entity.PlanModule{
		PlanID: fixPlanID, ModuleType: entity.ModuleContacts,
		IsIncluded: true, ItemLimit: limit,
		CanCreate: true, CanEdit: true, CanDelete: true, CanView: true,
	}
}

func permRequest(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	req.Header.Set("Authorization", tokenForRole(t, "member"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Plan con el módulo incluido y sin límite: pasa.
func TestRequirePermission_Incluido_Pasa(t *testing.T) {
	f := &fixture{planModule: includedModule(nil)}
	resp := permRequest(t, buildPermissionApp(f, apphttp.ActionView))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Módulo no incluido: 403 MODULE_NOT_INCLUDED.
func TestRequirePermission_NoIncluido_403(t *testing.T) {
	f := &fixture{planModule: nil}
	resp := permRequest(t, buildPermissionApp(f, apphttp.ActionView))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MODULE_NOT_INCLUDED", body["code"])
}

// Módulo apagado por tenant: 403 MODULE_DISABLED.
func TestRequirePermission_Deshabilitado_403(t *testing.T) {
	f := &fixture{
		planModule: includedModule(nil),
		override:   &entity.BusinessAccountModuleOverride{ModuleType: entity.ModuleContacts, IsDisabled: true},
	}
	resp := permRequest(t, buildPermissionApp(f, apphttp.ActionView))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "MODULE_DISABLED", body["code"])
}

// Acción create chocando con el límite: 403 con cuerpo de upsell.
func TestRequirePermission_CreateEnLimite_CuerpoDeUpsell(t *testing.T) {
	limit := 25
	f := &fixture{planModule: includedModule(&limit), count: 25}
	resp := permRequest(t, buildPermissionApp(f, apphttp.ActionCreate))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body struct {
		Error        string `json:"error"`
		CurrentCount int    `json:"currentCount"`
		Limit        int    `json:"limit"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "CONTACT_LIMIT_REACHED", body.Error)
	assert.Equal(t, 25, body.CurrentCount)
	assert.Equal(t, 25, body.Limit)
}

// En el límite la lectura sigue permitida: solo create se bloquea.
func TestRequirePermission_ViewEnLimite_Pasa(t *testing.T) {
	limit := 25
	f := &fixture{planModule: includedModule(&limit), count: 25}
	resp := permRequest(t, buildPermissionApp(f, apphttp.ActionView))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Fallo de store: 503 PERMISSION_CHECK_FAILED, nunca un 403 engañoso.
func TestRequirePermission_ErrorDeStore_503(t *testing.T) {
	f := &fixture{storeErr: errors.New("conexión perdida")}
	resp := permRequest(t, buildPermissionApp(f, apphttp.ActionView))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "PERMISSION_CHECK_FAILED", body["code"])
}
