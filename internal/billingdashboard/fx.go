package billingdashboard

import (
	"github.com/legatepro/legatepro/internal/billingdashboard/repository"
	"github.com/legatepro/legatepro/internal/billingdashboard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billingdashboard.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
