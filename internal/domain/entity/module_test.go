package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-pro/internal/domain/entity"
)

func TestParseModuleType_Conocidos(t *testing.T) {
	for _, m := range entity.AllModules() {
		parsed, err := entity.ParseModuleType(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}

func TestParseModuleType_Desconocido_Rechaza(t *testing.T) {
	for _, s := range []string{"", "users", "PAGOS", "Users "} {
		_, err := entity.ParseModuleType(s)
		assert.Error(t, err, "el string %q no debe parsear", s)
	}
}

func TestCountable_SoloUsersYContacts(t *testing.T) {
	assert.True(t, entity.ModuleUsers.Countable())
	assert.True(t, entity.ModuleContacts.Countable())
	assert.False(t, entity.ModuleCRM.Countable())
	assert.False(t, entity.ModuleActivities.Countable())
	assert.False(t, entity.ModuleAnalytics.Countable())
}

func TestLimitCode_EstablesPorModulo(t *testing.T) {
	assert.Equal(t, "USER_LIMIT_REACHED", entity.ModuleUsers.LimitCode())
	assert.Equal(t, "CONTACT_LIMIT_REACHED", entity.ModuleContacts.LimitCode())
	assert.Equal(t, "OPPORTUNITY_LIMIT_REACHED", entity.ModuleCRM.LimitCode())
}

func TestAccountAlive(t *testing.T) {
	var nilAccount *entity.BusinessAccount
	assert.False(t, nilAccount.Alive(), "una cuenta nil nunca está viva")

	a := &entity.BusinessAccount{Status: entity.AccountStatusActive, IsActive: true}
	assert.True(t, a.Alive())

	a.Status = entity.AccountStatusSuspended
	assert.False(t, a.Alive())
}

func TestPrivilegedRole(t *testing.T) {
	assert.True(t, entity.PrivilegedRole(entity.RoleOwner))
	assert.True(t, entity.PrivilegedRole(entity.RoleAdmin))
	assert.False(t, entity.PrivilegedRole(entity.RoleMember))
	assert.False(t, entity.PrivilegedRole(""))
}
