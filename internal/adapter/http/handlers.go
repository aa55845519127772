package http

import (
	"time"

	"github.com/Strob0t/SkillBridge/internal/config"
	"github.com/Strob0t/SkillBridge/internal/domain/plan"
	"github.com/Strob0t/SkillBridge/internal/service"
)

// Handlers holds the dependencies of the HTTP handlers.
type Handlers struct {
	Plans            *service.PlanService
	Catalog          plan.Catalog
	Server           config.Server
	APIKeyConfigured bool
	Version          string
	StartedAt        time.Time
}
