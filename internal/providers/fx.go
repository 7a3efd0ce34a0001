package providers

import (
	"github.com/smallbiznis/waterline/internal/providers/pdf"
	"github.com/smallbiznis/waterline/internal/providers/spreadsheet"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	pdf.Module,
	spreadsheet.Module,
)
