package auth

import (
	"github.com/legatepro/legatepro/internal/auth/repository"
	"github.com/legatepro/legatepro/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
