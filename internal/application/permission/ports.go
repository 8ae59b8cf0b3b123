package permission

import (
	"context"

	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD. El
// guard los usa para re-resolver permisos con el conteo bloqueado, y el
// createFn del llamador los usa para el insert real, todo en la misma tx.
type TxRepos struct {
	Accounts      repository.BusinessAccountRepository
	Plans         repository.PlanRepository
	Overrides     repository.OverrideRepository
	Usage         repository.UsageCounter
	UsageRecords  repository.UsageRecordRepository
	Users         repository.UserRepository
	Companies     repository.CompanyRepository
	Opportunities repository.OpportunityRepository
	Activities    repository.ActivityRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza Rollback ante cualquier error y Commit si fn
// retorna nil (adquisición con liberación garantizada).
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
