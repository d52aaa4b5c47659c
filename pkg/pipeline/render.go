package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/render"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, doc *chart.Document, formats []string) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	var dot string
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(render.Text(doc))
		case FormatJSON:
			data, err = chart.Marshal(doc)
		case FormatDOT, FormatSVG, FormatPNG:
			if dot == "" {
				dot = render.ToDOT(doc)
			}
			switch format {
			case FormatDOT:
				data = []byte(dot)
			case FormatSVG:
				data, err = render.RenderSVG(ctx, dot)
			case FormatPNG:
				data, err = render.RenderPNG(ctx, dot)
			}
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
