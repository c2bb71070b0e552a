package estate

import (
	"github.com/legatepro/legatepro/internal/estate/repository"
	"github.com/legatepro/legatepro/internal/estate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("estate.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
