package facility

import (
	"github.com/smallbiznis/waterline/internal/facility/repository"
	"github.com/smallbiznis/waterline/internal/facility/service"
	"go.uber.org/fx"
)

var Module = fx.Module("facility.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
