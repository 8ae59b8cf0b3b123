package admin_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-pro/internal/application/admin"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

const (
	accID    = "acc-1"
	planID   = "plan-1"
	memberID = "user-member"
	adminID  = "user-admin"
)

// memStore implementa en memoria los puertos que OverrideUseCase necesita.
type memStore struct {
	accounts    map[string]*entity.BusinessAccount
	planModules map[string]*entity.PlanModule
	accOvr      map[string]*entity.BusinessAccountModuleOverride
	userPerms   map[string]*entity.UserModulePermission
	users       map[string]*entity.User
}

func k(a string, m entity.ModuleType) string { return a + "|" + string(m) }

func newMemStore() *memStore {
	s := &memStore{
		accounts:    make(map[string]*entity.BusinessAccount),
		planModules: make(map[string]*entity.PlanModule),
		accOvr:      make(map[string]*entity.BusinessAccountModuleOverride),
		userPerms:   make(map[string]*entity.UserModulePermission),
		users:       make(map[string]*entity.User),
	}
	s.accounts[accID] = &entity.BusinessAccount{
		ID: accID, PlanID: planID, Status: entity.AccountStatusActive, IsActive: true,
	}
	s.planModules[k(planID, entity.ModuleContacts)] = &entity.PlanModule{
		PlanID: planID, ModuleType: entity.ModuleContacts,
		IsIncluded: true, CanCreate: true, CanEdit: true, CanDelete: true, CanView: true,
	}
	s.users[memberID] = &entity.User{ID: memberID, BusinessAccountID: accID, Role: entity.RoleMember}
	s.users[adminID] = &entity.User{ID: adminID, BusinessAccountID: accID, Role: entity.RoleAdmin}
	return s
}

type memAccounts struct{ s *memStore }

var _ repository.BusinessAccountRepository = memAccounts{}

func (m memAccounts) Create(_ context.Context, a *entity.BusinessAccount) error { return nil }
func (m memAccounts) GetByID(_ context.Context, id string) (*entity.BusinessAccount, error) {
	return m.s.accounts[id], nil
}
func (m memAccounts) Update(_ context.Context, _ *entity.BusinessAccount) error { return nil }
func (m memAccounts) List(_ context.Context, _, _ int) ([]*entity.BusinessAccount, error) {
	return nil, nil
}
func (m memAccounts) SetPlan(_ context.Context, _, _ string) error { return nil }
func (m memAccounts) Deactivate(_ context.Context, _ string) error { return nil }
func (m memAccounts) Reactivate(_ context.Context, _ string) error { return nil }

type memPlans struct{ s *memStore }

var _ repository.PlanRepository = memPlans{}

func (m memPlans) GetByID(_ context.Context, _ string) (*entity.Plan, error)   { return nil, nil }
func (m memPlans) GetByName(_ context.Context, _ string) (*entity.Plan, error) { return nil, nil }
func (m memPlans) List(_ context.Context) ([]*entity.Plan, error)              { return nil, nil }
func (m memPlans) GetModule(_ context.Context, planID string, module entity.ModuleType) (*entity.PlanModule, error) {
	return m.s.planModules[k(planID, module)], nil
}
func (m memPlans) ListModules(_ context.Context, _ string) ([]*entity.PlanModule, error) {
	return nil, nil
}
func (m memPlans) UpsertPlan(_ context.Context, _ *entity.Plan) error       { return nil }
func (m memPlans) UpsertModule(_ context.Context, _ *entity.PlanModule) error { return nil }

type memOverrides struct{ s *memStore }

var _ repository.OverrideRepository = memOverrides{}

func (m memOverrides) GetAccountOverride(_ context.Context, accountID string, module entity.ModuleType) (*entity.BusinessAccountModuleOverride, error) {
	return m.s.accOvr[k(accountID, module)], nil
}
func (m memOverrides) UpsertAccountOverride(_ context.Context, ov *entity.BusinessAccountModuleOverride) error {
	m.s.accOvr[k(ov.BusinessAccountID, ov.ModuleType)] = ov
	return nil
}
func (m memOverrides) GetUserPermission(_ context.Context, userID string, module entity.ModuleType) (*entity.UserModulePermission, error) {
	return m.s.userPerms[k(userID, module)], nil
}
func (m memOverrides) UpsertUserPermission(_ context.Context, perm *entity.UserModulePermission) error {
	m.s.userPerms[k(perm.UserID, perm.ModuleType)] = perm
	return nil
}
func (m memOverrides) DeleteUserPermissions(_ context.Context, _, userID string) error {
	for key, p := range m.s.userPerms {
		if p.UserID == userID {
			delete(m.s.userPerms, key)
		}
	}
	return nil
}

type memUsage struct{}

var _ repository.UsageCounter = memUsage{}

func (memUsage) Count(_ context.Context, _ string, _ entity.ModuleType) (int, error) {
	return 0, nil
}
func (memUsage) CountForUpdate(_ context.Context, _ string, _ entity.ModuleType) (int, error) {
	return 0, nil
}

type memUsers struct{ s *memStore }

var _ repository.UserRepository = memUsers{}

func (m memUsers) Create(_ context.Context, _ *entity.User) error { return nil }
func (m memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.s.users[id], nil
}
func (m memUsers) GetByEmail(_ context.Context, _ string) (*entity.User, error) { return nil, nil }
func (m memUsers) GetByEmailAndAccount(_ context.Context, _, _ string) (*entity.User, error) {
	return nil, nil
}
func (m memUsers) Update(_ context.Context, _ *entity.User) error { return nil }
func (m memUsers) ListByAccount(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	return nil, nil
}
func (m memUsers) Delete(_ context.Context, _ string) error { return nil }

func newUseCase(s *memStore) *admin.OverrideUseCase {
	resolver := permission.NewResolver(memAccounts{s}, memPlans{s}, memOverrides{s}, memUsage{})
	return admin.NewOverrideUseCase(resolver, memOverrides{s}, memUsers{s})
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

// El override de tenant se crea con los campos enviados y merge de los omitidos.
func TestSetAccountOverride_CreaYMergea(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	ov, err := uc.SetAccountOverride(context.Background(), accID, dto.SetAccountOverrideRequest{
		Module:    "CONTACTS",
		ItemLimit: intPtr(10),
	})
	require.NoError(t, err)
	assert.False(t, ov.IsDisabled)
	require.NotNil(t, ov.ItemLimit)
	assert.Equal(t, 10, *ov.ItemLimit)

	// Segunda escritura solo con isDisabled: el límite previo se conserva.
	ov, err = uc.SetAccountOverride(context.Background(), accID, dto.SetAccountOverrideRequest{
		Module:     "CONTACTS",
		IsDisabled: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, ov.IsDisabled)
	require.NotNil(t, ov.ItemLimit)
	assert.Equal(t, 10, *ov.ItemLimit)
}

// Módulo desconocido o límite negativo: rechazo sin escribir nada.
func TestSetAccountOverride_EntradaInvalida(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	_, err := uc.SetAccountOverride(context.Background(), accID, dto.SetAccountOverrideRequest{Module: "PAGOS"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.SetAccountOverride(context.Background(), accID, dto.SetAccountOverrideRequest{
		Module: "CONTACTS", ItemLimit: intPtr(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.accOvr, "un rechazo no deja upsert parcial")
}

// Grant válido: fila nueva parte de CanView=true y registra quién otorgó.
func TestSetUserPermission_CreaFilaConDefaults(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	perm, err := uc.SetUserPermission(context.Background(), accID, dto.SetUserPermissionRequest{
		UserID: memberID, Module: "CONTACTS", CanCreate: boolPtr(true),
	}, adminID)
	require.NoError(t, err)

	assert.True(t, perm.CanView, "una fila nueva parte con vista habilitada")
	assert.True(t, perm.CanCreate)
	assert.False(t, perm.CanEdit)
	assert.Equal(t, adminID, perm.GrantedBy)
}

// No se puede otorgar sobre un módulo que la cuenta no tiene contratado.
func TestSetUserPermission_ModuloNoContratado_Rechaza(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	_, err := uc.SetUserPermission(context.Background(), accID, dto.SetUserPermissionRequest{
		UserID: memberID, Module: "CRM", CanView: boolPtr(true),
	}, adminID)

	assert.ErrorIs(t, err, domain.ErrModuleNotEntitled)
	assert.Empty(t, s.userPerms, "el rechazo no deja fila")
}

// El destinatario debe pertenecer a la cuenta.
func TestSetUserPermission_UsuarioDeOtraCuenta_Rechaza(t *testing.T) {
	s := newMemStore()
	s.users["ajeno"] = &entity.User{ID: "ajeno", BusinessAccountID: "otra-cuenta", Role: entity.RoleMember}
	uc := newUseCase(s)

	_, err := uc.SetUserPermission(context.Background(), accID, dto.SetUserPermissionRequest{
		UserID: "ajeno", Module: "CONTACTS", CanView: boolPtr(true),
	}, adminID)

	assert.ErrorIs(t, err, domain.ErrUserNotInAccount)
}

// Owner/admin nunca llevan filas de permisos.
func TestSetUserPermission_DestinatarioPrivilegiado_Rechaza(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	_, err := uc.SetUserPermission(context.Background(), accID, dto.SetUserPermissionRequest{
		UserID: adminID, Module: "CONTACTS", CanView: boolPtr(false),
	}, adminID)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El reset borra todas las filas del usuario y vuelve a defaults del plan.
func TestResetUserPermissions_BorraGrants(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	_, err := uc.SetUserPermission(context.Background(), accID, dto.SetUserPermissionRequest{
		UserID: memberID, Module: "CONTACTS", CanCreate: boolPtr(true),
	}, adminID)
	require.NoError(t, err)
	require.NotEmpty(t, s.userPerms)

	require.NoError(t, uc.ResetUserPermissions(context.Background(), accID, memberID))
	assert.Empty(t, s.userPerms)
}

// Reset de un usuario ajeno: rechazado.
func TestResetUserPermissions_UsuarioAjeno_Rechaza(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	err := uc.ResetUserPermissions(context.Background(), accID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotInAccount)
}
