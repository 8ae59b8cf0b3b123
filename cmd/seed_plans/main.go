// seed_plans puebla el catálogo de planes y sus módulos (gratis, estandar,
// profesional). Es idempotente: corre upserts, no duplica filas.
//
// Uso: go run ./cmd/seed_plans
// Lee la misma configuración de DB que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-pro/internal/domain/entity"
	"github.com/jhoicas/crm-pro/internal/infrastructure/postgres"
	"github.com/jhoicas/crm-pro/pkg/config"
)

// moduleSeed define qué ofrece un plan para un módulo.
type moduleSeed struct {
	module   entity.ModuleType
	included bool
	limit    *int // nil = ilimitado
}

type planSeed struct {
	name        string
	description string
	modules     []moduleSeed
}

func intPtr(n int) *int { return &n }

func catalog() []planSeed {
	return []planSeed{
		{
			name:        "gratis",
			description: "Plan de entrada: 3 usuarios, 25 contactos, sin pipeline de ventas",
			modules: []moduleSeed{
				{entity.ModuleUsers, true, intPtr(3)},
				{entity.ModuleContacts, true, intPtr(25)},
				{entity.ModuleCRM, false, nil},
				{entity.ModuleActivities, false, nil},
				{entity.ModuleAnalytics, false, nil},
			},
		},
		{
			name:        "estandar",
			description: "Plan estándar: 5 usuarios, 500 contactos, CRM y actividades",
			modules: []moduleSeed{
				{entity.ModuleUsers, true, intPtr(5)},
				{entity.ModuleContacts, true, intPtr(500)},
				{entity.ModuleCRM, true, nil},
				{entity.ModuleActivities, true, nil},
				{entity.ModuleAnalytics, false, nil},
			},
		},
		{
			name:        "profesional",
			description: "Plan profesional: todo ilimitado, todos los módulos",
			modules: []moduleSeed{
				{entity.ModuleUsers, true, nil},
				{entity.ModuleContacts, true, nil},
				{entity.ModuleCRM, true, nil},
				{entity.ModuleActivities, true, nil},
				{entity.ModuleAnalytics, true, nil},
			},
		},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewPlanRepository(pool)
	now := time.Now()

	for _, ps := range catalog() {
		// Reusar el ID si el plan ya existe para no romper FKs de cuentas.
		existing, err := repo.GetByName(ctx, ps.name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "consultar plan %s: %v\n", ps.name, err)
			os.Exit(1)
		}
		planID := uuid.New().String()
		if existing != nil {
			planID = existing.ID
		}

		if err := repo.UpsertPlan(ctx, &entity.Plan{
			ID:          planID,
			Name:        ps.name,
			Description: ps.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "upsert plan %s: %v\n", ps.name, err)
			os.Exit(1)
		}

		for _, ms := range ps.modules {
			pm := &entity.PlanModule{
				ID:         uuid.New().String(),
				PlanID:     planID,
				ModuleType: ms.module,
				IsIncluded: ms.included,
				ItemLimit:  ms.limit,
				CanCreate:  ms.included,
				CanEdit:    ms.included,
				CanDelete:  ms.included,
				CanView:    ms.included,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := repo.UpsertModule(ctx, pm); err != nil {
				fmt.Fprintf(os.Stderr, "upsert módulo %s del plan %s: %v\n", ms.module, ps.name, err)
				os.Exit(1)
			}
		}
		fmt.Printf("plan %s listo (%d módulos)\n", ps.name, len(ps.modules))
	}
}
