package entity

import "fmt"

// ModuleType identifica un área funcional gobernada por el motor de
// permisos. Es un enum cerrado: los strings desconocidos se rechazan en el
// borde (ParseModuleType), nunca llegan al resolver.
type ModuleType string

const (
	ModuleUsers      ModuleType = "USERS"
	ModuleContacts   ModuleType = "CONTACTS"
	ModuleCRM        ModuleType = "CRM"
	ModuleActivities ModuleType = "ACTIVITIES"
	ModuleAnalytics  ModuleType = "ANALYTICS"
)

// AllModules devuelve los módulos conocidos en orden estable.
func AllModules() []ModuleType {
	return []ModuleType{ModuleUsers, ModuleContacts, ModuleCRM, ModuleActivities, ModuleAnalytics}
}

// ParseModuleType valida y convierte un string externo a ModuleType.
func ParseModuleType(s string) (ModuleType, error) {
	m := ModuleType(s)
	if !m.Valid() {
		return "", fmt.Errorf("módulo desconocido: %q", s)
	}
	return m, nil
}

// Valid informa si el módulo es uno de los conocidos.
func (m ModuleType) Valid() bool {
	switch m {
	case ModuleUsers, ModuleContacts, ModuleCRM, ModuleActivities, ModuleAnalytics:
		return true
	}
	return false
}

// Countable informa si el módulo tiene una entidad contable contra la cual
// aplican límites numéricos. Los módulos no contables reportan conteo 0 y
// solo se gobiernan por inclusión/capacidades.
func (m ModuleType) Countable() bool {
	switch m {
	case ModuleUsers, ModuleContacts:
		return true
	}
	return false
}

// LimitCode devuelve el código estable que el API expone cuando una creación
// choca con el límite del módulo.
func (m ModuleType) LimitCode() string {
	switch m {
	case ModuleUsers:
		return "USER_LIMIT_REACHED"
	case ModuleContacts:
		return "CONTACT_LIMIT_REACHED"
	case ModuleCRM:
		return "OPPORTUNITY_LIMIT_REACHED"
	case ModuleActivities:
		return "ACTIVITY_LIMIT_REACHED"
	case ModuleAnalytics:
		return "ANALYTICS_LIMIT_REACHED"
	default:
		return "LIMIT_REACHED"
	}
}

// String implementa fmt.Stringer.
func (m ModuleType) String() string {
	return string(m)
}
