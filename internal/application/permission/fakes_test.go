package permission_test

import (
	"context"
	"sync"

	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

// fakeStore es un store en memoria compartido por los repos fake. Usa un
// mutex propio porque los tests del guard lo golpean desde varias goroutines.
// failures permite inyectar un error por operación para probar el fail-closed.
type fakeStore struct {
	mu sync.Mutex

	accounts         map[string]*entity.BusinessAccount
	planModules      map[string]*entity.PlanModule                    // planID|module
	accountOverrides map[string]*entity.BusinessAccountModuleOverride // accountID|module
	userPerms        map[string]*entity.UserModulePermission          // userID|module
	counts           map[string]int                                   // accountID|module
	records          map[string]*entity.UsageRecord                   // accountID|module
	users            map[string]*entity.User

	failures map[string]error // nombre de operación → error inyectado
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		accounts:         make(map[string]*entity.BusinessAccount),
		planModules:      make(map[string]*entity.PlanModule),
		accountOverrides: make(map[string]*entity.BusinessAccountModuleOverride),
		userPerms:        make(map[string]*entity.UserModulePermission),
		counts:           make(map[string]int),
		records:          make(map[string]*entity.UsageRecord),
		users:            make(map[string]*entity.User),
		failures:         make(map[string]error),
	}
}

func key(a string, m entity.ModuleType) string { return a + "|" + string(m) }

func (s *fakeStore) fail(op string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[op]
}

// ── fakeAccounts ──────────────────────────────────────────────────────────────

type fakeAccounts struct{ s *fakeStore }

var _ repository.BusinessAccountRepository = fakeAccounts{}

func (f fakeAccounts) Create(_ context.Context, a *entity.BusinessAccount) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.accounts[a.ID] = a
	return nil
}

func (f fakeAccounts) GetByID(_ context.Context, id string) (*entity.BusinessAccount, error) {
	if err := f.s.fail("accounts.GetByID"); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.accounts[id], nil
}

func (f fakeAccounts) Update(_ context.Context, a *entity.BusinessAccount) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.accounts[a.ID] = a
	return nil
}

func (f fakeAccounts) List(_ context.Context, _, _ int) ([]*entity.BusinessAccount, error) {
	return nil, nil
}

func (f fakeAccounts) SetPlan(_ context.Context, id, planID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a := f.s.accounts[id]; a != nil {
		a.PlanID = planID
	}
	return nil
}

func (f fakeAccounts) Deactivate(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a := f.s.accounts[id]; a != nil {
		a.IsActive = false
		a.Status = entity.AccountStatusSuspended
	}
	return nil
}

func (f fakeAccounts) Reactivate(_ context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if a := f.s.accounts[id]; a != nil {
		a.IsActive = true
		a.Status = entity.AccountStatusActive
		a.DeletedAt = nil
	}
	return nil
}

// ── fakePlans ─────────────────────────────────────────────────────────────────

type fakePlans struct{ s *fakeStore }

var _ repository.PlanRepository = fakePlans{}

func (f fakePlans) GetByID(_ context.Context, _ string) (*entity.Plan, error)   { return nil, nil }
func (f fakePlans) GetByName(_ context.Context, _ string) (*entity.Plan, error) { return nil, nil }
func (f fakePlans) List(_ context.Context) ([]*entity.Plan, error)              { return nil, nil }

func (f fakePlans) GetModule(_ context.Context, planID string, module entity.ModuleType) (*entity.PlanModule, error) {
	if err := f.s.fail("plans.GetModule"); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.planModules[key(planID, module)], nil
}

func (f fakePlans) ListModules(_ context.Context, _ string) ([]*entity.PlanModule, error) {
	return nil, nil
}

func (f fakePlans) UpsertPlan(_ context.Context, _ *entity.Plan) error { return nil }

func (f fakePlans) UpsertModule(_ context.Context, pm *entity.PlanModule) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.planModules[key(pm.PlanID, pm.ModuleType)] = pm
	return nil
}

// ── fakeOverrides ─────────────────────────────────────────────────────────────

type fakeOverrides struct{ s *fakeStore }

var _ repository.OverrideRepository = fakeOverrides{}

func (f fakeOverrides) GetAccountOverride(_ context.Context, accountID string, module entity.ModuleType) (*entity.BusinessAccountModuleOverride, error) {
	if err := f.s.fail("overrides.GetAccountOverride"); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.accountOverrides[key(accountID, module)], nil
}

func (f fakeOverrides) UpsertAccountOverride(_ context.Context, ov *entity.BusinessAccountModuleOverride) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.accountOverrides[key(ov.BusinessAccountID, ov.ModuleType)] = ov
	return nil
}

func (f fakeOverrides) GetUserPermission(_ context.Context, userID string, module entity.ModuleType) (*entity.UserModulePermission, error) {
	if err := f.s.fail("overrides.GetUserPermission"); err != nil {
		return nil, err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.userPerms[key(userID, module)], nil
}

func (f fakeOverrides) UpsertUserPermission(_ context.Context, perm *entity.UserModulePermission) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.userPerms[key(perm.UserID, perm.ModuleType)] = perm
	return nil
}

func (f fakeOverrides) DeleteUserPermissions(_ context.Context, _, userID string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for k := range f.s.userPerms {
		if f.s.userPerms[k].UserID == userID {
			delete(f.s.userPerms, k)
		}
	}
	return nil
}

// ── fakeUsage ─────────────────────────────────────────────────────────────────

type fakeUsage struct{ s *fakeStore }

var _ repository.UsageCounter = fakeUsage{}

func (f fakeUsage) Count(_ context.Context, accountID string, module entity.ModuleType) (int, error) {
	if err := f.s.fail("usage.Count"); err != nil {
		return 0, err
	}
	if !module.Countable() {
		return 0, nil
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.counts[key(accountID, module)], nil
}

func (f fakeUsage) CountForUpdate(ctx context.Context, accountID string, module entity.ModuleType) (int, error) {
	if err := f.s.fail("usage.CountForUpdate"); err != nil {
		return 0, err
	}
	return f.Count(ctx, accountID, module)
}

// ── fakeUsageRecords ──────────────────────────────────────────────────────────

type fakeUsageRecords struct{ s *fakeStore }

var _ repository.UsageRecordRepository = fakeUsageRecords{}

func (f fakeUsageRecords) Get(_ context.Context, accountID string, module entity.ModuleType) (*entity.UsageRecord, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.records[key(accountID, module)], nil
}

func (f fakeUsageRecords) Upsert(_ context.Context, rec *entity.UsageRecord) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.records[key(rec.BusinessAccountID, rec.ModuleType)] = rec
	return nil
}

// ── fakeUsers ─────────────────────────────────────────────────────────────────

// fakeUsers.Create incrementa el conteo del módulo USERS: simula que el
// insert real hace crecer el conteo vivo que el contador consulta.
type fakeUsers struct{ s *fakeStore }

var _ repository.UserRepository = fakeUsers{}

func (f fakeUsers) Create(_ context.Context, u *entity.User) error {
	if err := f.s.fail("users.Create"); err != nil {
		return err
	}
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.users[u.ID] = u
	f.s.counts[key(u.BusinessAccountID, entity.ModuleUsers)]++
	return nil
}

func (f fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.s.users[id], nil
}

func (f fakeUsers) GetByEmail(_ context.Context, _ string) (*entity.User, error) { return nil, nil }
func (f fakeUsers) GetByEmailAndAccount(_ context.Context, _, _ string) (*entity.User, error) {
	return nil, nil
}
func (f fakeUsers) Update(_ context.Context, _ *entity.User) error { return nil }
func (f fakeUsers) ListByAccount(_ context.Context, _ string, _, _ int) ([]*entity.User, error) {
	return nil, nil
}
func (f fakeUsers) Delete(_ context.Context, _ string) error { return nil }

// ── fakeTxRunner ──────────────────────────────────────────────────────────────

// fakeTxRunner serializa las "transacciones" con un mutex, que es justo lo
// que hace el SELECT FOR UPDATE real sobre las filas del tenant: el segundo
// creador espera a que el primero confirme y ve el conteo actualizado.
type fakeTxRunner struct {
	s  *fakeStore
	mu sync.Mutex
}

var _ permission.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(repos permission.TxRepos) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(permission.TxRepos{
		Accounts:     fakeAccounts{r.s},
		Plans:        fakePlans{r.s},
		Overrides:    fakeOverrides{r.s},
		Usage:        fakeUsage{r.s},
		UsageRecords: fakeUsageRecords{r.s},
		Users:        fakeUsers{r.s},
	})
}

// ── builders de escenario ─────────────────────────────────────────────────────

const (
	testAccountID = "acc-1"
	testPlanID    = "plan-estandar"
	testMemberID  = "user-member"
)

// seedAccount crea una cuenta viva con un plan que incluye USERS con el
// límite dado (nil = ilimitado) y todas las capacidades en true.
func seedAccount(s *fakeStore, limit *int) {
	s.accounts[testAccountID] = &entity.BusinessAccount{
		ID:       testAccountID,
		Name:     "Acme SAS",
		PlanID:   testPlanID,
		Status:   entity.AccountStatusActive,
		IsActive: true,
	}
	s.planModules[key(testPlanID, entity.ModuleUsers)] = &entity.PlanModule{
		ID:         "pm-users",
		PlanID:     testPlanID,
		ModuleType: entity.ModuleUsers,
		IsIncluded: true,
		ItemLimit:  limit,
		CanCreate:  true,
		CanEdit:    true,
		CanDelete:  true,
		CanView:    true,
	}
	s.users[testMemberID] = &entity.User{
		ID:                testMemberID,
		BusinessAccountID: testAccountID,
		Email:             "member@acme.co",
		Role:              entity.RoleMember,
		Status:            "active",
	}
}

func newResolver(s *fakeStore) *permission.Resolver {
	return permission.NewResolver(fakeAccounts{s}, fakePlans{s}, fakeOverrides{s}, fakeUsage{s})
}

func memberActor() permission.Actor {
	return permission.Actor{UserID: testMemberID, Role: entity.RoleMember}
}

func adminActor() permission.Actor {
	return permission.Actor{UserID: "user-admin", Role: entity.RoleAdmin}
}

func intPtr(n int) *int { return &n }
