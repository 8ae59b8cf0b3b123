package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-pro/internal/application/dto"
	"github.com/jhoicas/crm-pro/internal/application/permission"
	"github.com/jhoicas/crm-pro/internal/domain"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/domain/repository"
)

// OverrideUseCase administra las dos capas de excepciones: por tenant y por
// usuario. Toda escritura valida primero contra el resolver (no se puede
// otorgar lo que la cuenta no tiene) y contra la membresía (sin grants entre
// cuentas); un rechazo no deja upsert parcial.
type OverrideUseCase struct {
	resolver  *permission.Resolver
	overrides repository.OverrideRepository
	users     repository.UserRepository
}

// NewOverrideUseCase construye el caso de uso.
func NewOverrideUseCase(resolver *permission.Resolver, overrides repository.OverrideRepository, users repository.UserRepository) *OverrideUseCase {
	return &OverrideUseCase{resolver: resolver, overrides: overrides, users: users}
}

// SetAccountOverride upsert de la excepción por tenant. IsDisabled=true apaga
// el módulo para toda la cuenta sin tocar el plan; ItemLimit=0 es cuota cero
// dura (independiente de IsDisabled; si ambos están, el apagado gana en el
// resolver).
func (uc *OverrideUseCase) SetAccountOverride(ctx context.Context, accountID string, in dto.SetAccountOverrideRequest) (*entity.BusinessAccountModuleOverride, error) {
	module, err := entity.ParseModuleType(in.Module)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.ItemLimit != nil && *in.ItemLimit < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	ov, err := uc.overrides.GetAccountOverride(ctx, accountID, module)
	if err != nil {
		return nil, err
	}
	if ov == nil {
		ov = &entity.BusinessAccountModuleOverride{
			ID:                uuid.New().String(),
			BusinessAccountID: accountID,
			ModuleType:        module,
			CreatedAt:         now,
		}
	}
	if in.IsDisabled != nil {
		ov.IsDisabled = *in.IsDisabled
	}
	if in.ItemLimit != nil {
		ov.ItemLimit = in.ItemLimit
	}
	ov.UpdatedAt = now

	if err := uc.overrides.UpsertAccountOverride(ctx, ov); err != nil {
		return nil, err
	}
	return ov, nil
}

// SetUserPermission upsert del grant por usuario. Valida que:
//   - la cuenta tenga acceso al módulo (ErrModuleNotEntitled si no),
//   - el usuario pertenezca a la cuenta (ErrUserNotInAccount si no),
//   - el destinatario sea un rol ordinario (owner/admin nunca llevan filas).
//
// Los campos nil del request conservan el valor previo; una fila nueva parte
// de CanView=true y el resto en false.
func (uc *OverrideUseCase) SetUserPermission(ctx context.Context, accountID string, in dto.SetUserPermissionRequest, grantedBy string) (*entity.UserModulePermission, error) {
	module, err := entity.ParseModuleType(in.Module)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// La cuenta debe tener el módulo: se resuelve a nivel de plan (sin
	// actor) para que un grant de usuario nunca exceda lo contratado.
	dec, err := uc.resolver.Resolve(ctx, accountID, module, permission.Actor{})
	if err != nil {
		return nil, err
	}
	if !dec.HasAccess {
		return nil, domain.ErrModuleNotEntitled
	}

	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.BusinessAccountID != accountID {
		return nil, domain.ErrUserNotInAccount
	}
	if entity.PrivilegedRole(user.Role) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	perm, err := uc.overrides.GetUserPermission(ctx, in.UserID, module)
	if err != nil {
		return nil, err
	}
	if perm == nil {
		perm = &entity.UserModulePermission{
			ID:                uuid.New().String(),
			BusinessAccountID: accountID,
			UserID:            in.UserID,
			ModuleType:        module,
			CanView:           true,
			CreatedAt:         now,
		}
	}
	if in.CanView != nil {
		perm.CanView = *in.CanView
	}
	if in.CanCreate != nil {
		perm.CanCreate = *in.CanCreate
	}
	if in.CanEdit != nil {
		perm.CanEdit = *in.CanEdit
	}
	if in.CanDelete != nil {
		perm.CanDelete = *in.CanDelete
	}
	perm.GrantedBy = grantedBy
	perm.UpdatedAt = now

	if err := uc.overrides.UpsertUserPermission(ctx, perm); err != nil {
		return nil, err
	}
	return perm, nil
}

// ResetUserPermissions borra en bloque los grants de un usuario de la
// cuenta: vuelve a resolver con los defaults del plan.
func (uc *OverrideUseCase) ResetUserPermissions(ctx context.Context, accountID, userID string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil || user.BusinessAccountID != accountID {
		return domain.ErrUserNotInAccount
	}
	return uc.overrides.DeleteUserPermissions(ctx, accountID, userID)
}
