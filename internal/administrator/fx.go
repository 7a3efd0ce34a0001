package administrator

import (
	"github.com/smallbiznis/waterline/internal/administrator/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("administrator.repository",
	fx.Provide(repository.Provide),
)
