package timeentry

import (
	"github.com/legatepro/legatepro/internal/timeentry/repository"
	"github.com/legatepro/legatepro/internal/timeentry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("timeentry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
