package spreadsheet

import (
	"context"
	"io"

	"go.uber.org/fx"
)

var Module = fx.Module("providers.spreadsheet",
	fx.Provide(New),
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Column is a header cell. Width is in characters; 0 keeps the default.
type Column struct {
	Label string
	Width float64
}

type Sheet struct {
	Name     string
	Title    string
	Subtitle string
	Columns  []Column
	Rows     [][]any
}

type Provider interface {
	Generate(ctx context.Context, sheet Sheet) (io.Reader, error)
}
