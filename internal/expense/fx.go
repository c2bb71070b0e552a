package expense

import (
	"github.com/legatepro/legatepro/internal/expense/repository"
	"github.com/legatepro/legatepro/internal/expense/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expense.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
