package workspace

import (
	"github.com/legatepro/legatepro/internal/workspace/repository"
	"github.com/legatepro/legatepro/internal/workspace/service"
	"go.uber.org/fx"
)

var Module = fx.Module("workspace.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
