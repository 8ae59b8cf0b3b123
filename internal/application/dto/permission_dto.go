package dto

import "time"

// SetAccountOverrideRequest excepción por tenant: apagar un módulo o imponer
// un límite más estricto que el del plan. Los campos nil no tocan el valor
// existente (upsert parcial a nivel de request, nunca a nivel de fila).
type SetAccountOverrideRequest struct {
	Module     string `json:"module"`
	IsDisabled *bool  `json:"isDisabled"`
	ItemLimit  *int   `json:"itemLimit"`
}

// SetUserPermissionRequest grant de capacidades para un usuario ordinario en
// un módulo. Los campos nil conservan el valor previo de la fila (o el
// default si la fila no existía).
type SetUserPermissionRequest struct {
	UserID    string `json:"userId"`
	Module    string `json:"module"`
	CanView   *bool  `json:"canView"`
	CanCreate *bool  `json:"canCreate"`
	CanEdit   *bool  `json:"canEdit"`
	CanDelete *bool  `json:"canDelete"`
}

// ModuleUsageResponse resumen de uso/permisos de un módulo para la UI
// (advisory: jamás autoriza una escritura, solo pinta banners y botones).
type ModuleUsageResponse struct {
	Module       string `json:"module"`
	HasAccess    bool   `json:"hasAccess"`
	CanCreate    bool   `json:"canCreate"`
	CanEdit      bool   `json:"canEdit"`
	CanDelete    bool   `json:"canDelete"`
	CanView      bool   `json:"canView"`
	ItemLimit    *int   `json:"itemLimit"`
	CurrentCount int    `json:"currentCount"`
	IsAtLimit    bool   `json:"isAtLimit"`
	IsNearLimit  bool   `json:"isNearLimit"`
	Source       string `json:"source"`
}

// UsageSummaryResponse respuesta de GET /api/usage.
type UsageSummaryResponse struct {
	Modules      []ModuleUsageResponse `json:"modules"`
	CalculatedAt time.Time             `json:"calculatedAt"`
}
