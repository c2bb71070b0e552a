package invoice

import (
	"github.com/legatepro/legatepro/internal/invoice/repository"
	"github.com/legatepro/legatepro/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
