package task

import (
	"github.com/legatepro/legatepro/internal/task/repository"
	"github.com/legatepro/legatepro/internal/task/service"
	"go.uber.org/fx"
)

var Module = fx.Module("task.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
