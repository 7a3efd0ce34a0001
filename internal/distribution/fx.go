package distribution

import (
	"github.com/smallbiznis/waterline/internal/distribution/repository"
	"github.com/smallbiznis/waterline/internal/distribution/service"
	"go.uber.org/fx"
)

var Module = fx.Module("distribution.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
