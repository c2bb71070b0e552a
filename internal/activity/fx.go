package activity

import (
	"github.com/legatepro/legatepro/internal/activity/repository"
	"github.com/legatepro/legatepro/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
