package permission_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

// Caso base: miembro sin filas de override resuelve con los defaults del plan.
func TestResolve_PlanPorDefecto_Permite(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, intPtr(5))
	s.counts[key(testAccountID, entity.ModuleUsers)] = 2

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.True(t, dec.HasAccess)
	assert.Equal(t, permission.SourcePlan, dec.Source)
	assert.True(t, dec.Permissions.CanCreate)
	assert.True(t, dec.Permissions.CanView)
	assert.Equal(t, 2, dec.Permissions.CurrentCount)
	require.NotNil(t, dec.Permissions.ItemLimit)
	assert.Equal(t, 5, *dec.Permissions.ItemLimit)
	assert.False(t, dec.Permissions.IsAtLimit)
	assert.False(t, dec.Permissions.IsNearLimit)
}

// El plan no incluye el módulo: denegado total, aunque exista un grant de usuario.
func TestResolve_ModuloNoIncluido_DeniegaTodo(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)
	s.planModules[key(testPlanID, entity.ModuleCRM)] = &entity.PlanModule{
		PlanID: testPlanID, ModuleType: entity.ModuleCRM, IsIncluded: false,
	}
	s.userPerms[key(testMemberID, entity.ModuleCRM)] = &entity.UserModulePermission{
		UserID: testMemberID, ModuleType: entity.ModuleCRM, CanView: true, CanCreate: true,
	}

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleCRM, memberActor())
	require.NoError(t, err)

	assert.False(t, dec.HasAccess)
	assert.Equal(t, permission.SourceDenied, dec.Source)
	assert.Equal(t, permission.ReasonNoEntitlement, dec.Reason)
	assert.False(t, dec.Permissions.CanCreate)
	assert.True(t, dec.Permissions.IsAtLimit)
}

// Sin fila PlanModule para el módulo: equivale a no incluido.
func TestResolve_SinFilaDePlan_DeniegaTodo(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleAnalytics, memberActor())
	require.NoError(t, err)

	assert.False(t, dec.HasAccess)
	assert.Equal(t, permission.ReasonNoEntitlement, dec.Reason)
}

// El apagado por tenant gana sobre el plan y sobre cualquier grant de usuario.
func TestResolve_OverrideTenantDeshabilitado_GanaSobreTodo(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)
	s.accountOverrides[key(testAccountID, entity.ModuleUsers)] = &entity.BusinessAccountModuleOverride{
		BusinessAccountID: testAccountID, ModuleType: entity.ModuleUsers, IsDisabled: true,
	}
	s.userPerms[key(testMemberID, entity.ModuleUsers)] = &entity.UserModulePermission{
		UserID: testMemberID, ModuleType: entity.ModuleUsers,
		CanView: true, CanCreate: true, CanEdit: true, CanDelete: true,
	}

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.False(t, dec.HasAccess)
	assert.Equal(t, permission.SourceTenantOverride, dec.Source)
	assert.Equal(t, permission.ReasonTenantDisabled, dec.Reason)
}

// Al llegar al límite, CanCreate se apaga pero el acceso de lectura queda.
func TestResolve_EnElLimite_ApagaCanCreatePeroNoAcceso(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, intPtr(3))
	s.counts[key(testAccountID, entity.ModuleUsers)] = 3

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.True(t, dec.HasAccess)
	assert.False(t, dec.Permissions.CanCreate)
	assert.True(t, dec.Permissions.CanView)
	assert.True(t, dec.Permissions.IsAtLimit)
	assert.True(t, dec.Permissions.IsNearLimit)
}

// Al 80% del límite se enciende el aviso sin bloquear nada.
func TestResolve_CercaDelLimite_EnciendeAviso(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, intPtr(5))
	s.counts[key(testAccountID, entity.ModuleUsers)] = 4

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.True(t, dec.Permissions.CanCreate)
	assert.False(t, dec.Permissions.IsAtLimit)
	assert.True(t, dec.Permissions.IsNearLimit)
}

// El límite del override manda sobre el del plan, incluso siendo el plan ilimitado.
func TestResolve_LimiteDeOverride_MandaSobreElPlan(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil) // plan ilimitado
	s.accountOverrides[key(testAccountID, entity.ModuleUsers)] = &entity.BusinessAccountModuleOverride{
		BusinessAccountID: testAccountID, ModuleType: entity.ModuleUsers, ItemLimit: intPtr(2),
	}
	s.counts[key(testAccountID, entity.ModuleUsers)] = 2

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.True(t, dec.HasAccess)
	assert.False(t, dec.Permissions.CanCreate)
	require.NotNil(t, dec.Permissions.ItemLimit)
	assert.Equal(t, 2, *dec.Permissions.ItemLimit)
}

// Override con límite 0: cuota cero dura. El módulo sigue visible pero no
// admite creaciones; near-limit queda apagado (no hay fracción de cero).
func TestResolve_OverrideLimiteCero_CuotaCeroDura(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, intPtr(10))
	s.accountOverrides[key(testAccountID, entity.ModuleUsers)] = &entity.BusinessAccountModuleOverride{
		BusinessAccountID: testAccountID, ModuleType: entity.ModuleUsers, ItemLimit: intPtr(0),
	}

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.True(t, dec.HasAccess, "cuota cero no es apagado: el módulo sigue visible")
	assert.False(t, dec.Permissions.CanCreate)
	assert.True(t, dec.Permissions.IsAtLimit)
	assert.False(t, dec.Permissions.IsNearLimit)
}

// La fila de permisos del usuario es autoritativa para el miembro.
func TestResolve_FilaDeUsuario_EsAutoritativa(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)
	s.userPerms[key(testMemberID, entity.ModuleUsers)] = &entity.UserModulePermission{
		UserID: testMemberID, ModuleType: entity.ModuleUsers,
		CanView: true, CanCreate: false, CanEdit: true, CanDelete: false,
	}

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.True(t, dec.HasAccess)
	assert.Equal(t, permission.SourceUserOverride, dec.Source)
	assert.False(t, dec.Permissions.CanCreate)
	assert.True(t, dec.Permissions.CanEdit)
	assert.False(t, dec.Permissions.CanDelete)
}

// Fila con CanView=false: el usuario pierde el acceso al módulo completo.
func TestResolve_FilaDeUsuarioSinVista_DeniegaAcceso(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)
	s.userPerms[key(testMemberID, entity.ModuleUsers)] = &entity.UserModulePermission{
		UserID: testMemberID, ModuleType: entity.ModuleUsers, CanView: false,
	}

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.False(t, dec.HasAccess)
	assert.Equal(t, permission.SourceUserOverride, dec.Source)
	assert.Equal(t, permission.ReasonUserOverride, dec.Reason)
}

// El límite numérico fuerza CanCreate=false aunque la fila del usuario diga true.
func TestResolve_LimiteGanaSobreGrantDeUsuario(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, intPtr(3))
	s.counts[key(testAccountID, entity.ModuleUsers)] = 3
	s.userPerms[key(testMemberID, entity.ModuleUsers)] = &entity.UserModulePermission{
		UserID: testMemberID, ModuleType: entity.ModuleUsers, CanView: true, CanCreate: true,
	}

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.True(t, dec.HasAccess)
	assert.False(t, dec.Permissions.CanCreate, "el grant no puede saltarse el límite")
	assert.True(t, dec.Permissions.IsAtLimit)
}

// Owner/admin nunca pasan por la capa de usuario: resuelven con el plan.
func TestResolve_RolPrivilegiado_OmiteCapaDeUsuario(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)
	s.userPerms[key("user-admin", entity.ModuleUsers)] = &entity.UserModulePermission{
		UserID: "user-admin", ModuleType: entity.ModuleUsers, CanView: false,
	}

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, adminActor())
	require.NoError(t, err)

	assert.True(t, dec.HasAccess, "una fila residual no puede bloquear a un admin")
	assert.Equal(t, permission.SourcePlan, dec.Source)
	assert.True(t, dec.Permissions.CanCreate)
}

// Cuenta suspendida o con soft delete: todo denegado antes de mirar el plan.
func TestResolve_CuentaSuspendida_DeniegaTodo(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)
	now := time.Now()
	s.accounts[testAccountID].IsActive = false
	s.accounts[testAccountID].Status = entity.AccountStatusSuspended
	s.accounts[testAccountID].DeletedAt = &now

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())
	require.NoError(t, err)

	assert.False(t, dec.HasAccess)
	assert.Equal(t, permission.ReasonAccountInactive, dec.Reason)
}

// Cuenta inexistente: denegado sin error (no es fallo de infraestructura).
func TestResolve_CuentaInexistente_DeniegaSinError(t *testing.T) {
	s := newFakeStore()

	dec, err := newResolver(s).Resolve(context.Background(), "no-existe", entity.ModuleUsers, memberActor())
	require.NoError(t, err)
	assert.False(t, dec.HasAccess)
}

// Fail-closed: un error de store produce Decision denegada Y error aparte,
// para que el HTTP layer responda 503 en lugar de un 403 engañoso.
func TestResolve_ErrorDeStore_FallaCerrado(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)
	boom := errors.New("conexión perdida")
	s.failures["plans.GetModule"] = boom

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleUsers, memberActor())

	require.ErrorIs(t, err, boom)
	assert.False(t, dec.HasAccess)
	assert.Equal(t, permission.ReasonStoreError, dec.Reason)
	assert.False(t, dec.Permissions.CanCreate)
	assert.True(t, dec.Permissions.IsAtLimit)
}

// Módulo inválido: denegado sin error, nunca llega al store.
func TestResolve_ModuloInvalido_DeniegaSinError(t *testing.T) {
	s := newFakeStore()
	seedAccount(s, nil)

	dec, err := newResolver(s).Resolve(context.Background(), testAccountID, entity.ModuleType("PAGOS"), memberActor())
	require.NoError(t, err)
	assert.False(t, dec.HasAccess)
}
