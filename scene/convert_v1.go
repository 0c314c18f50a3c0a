package scene

import (
	v1 "github.com/almindor/texel-types/scene/v1"
	v2 "github.com/almindor/texel-types/scene/v2"
)

// UpgradeFromV1 converts a version 1 scene to version 2. The upgrade is
// total: it succeeds for every schema-valid input. The scene receives the
// default palette, embedded cell colors become palette references (appended
// when not present yet) and every layer becomes visible. The deprecated
// selection flag has no version 2 field and is not carried over; it is the
// single documented exception to the format's lossless round-trip promise.
func UpgradeFromV1(old *v1.Scene) *v2.Scene {
	out := &v2.Scene{
		Canvas:  v2.Canvas{Columns: old.Canvas.Columns, Rows: old.Canvas.Rows},
		Layers:  make([]v2.Layer, len(old.Layers)),
		Palette: v2.DefaultPalette(),
	}

	for i, layer := range old.Layers {
		cells := make([]v2.Cell, len(layer.Cells))
		for c, cell := range layer.Cells {
			cells[c] = v2.Cell{
				Glyph:      cell.Glyph,
				Foreground: internColor(&out.Palette, v2.Color(cell.Foreground)),
				Background: internColor(&out.Palette, v2.Color(cell.Background)),
				Styles:     v2.Style(cell.Styles),
			}
		}
		out.Layers[i] = v2.Layer{
			ID:      layer.ID,
			Offset:  v2.Offset{X: layer.Offset.X, Y: layer.Offset.Y},
			Width:   layer.Width,
			Height:  layer.Height,
			Cells:   cells,
			Visible: true,
		}
	}

	return out
}

// internColor returns the palette index of c, appending a new entry if the
// palette does not contain it yet. Colors are 8 bit values, so the palette
// can never outgrow the index space.
func internColor(palette *v2.Palette, c v2.Color) v2.PaletteIndex {
	if index, exists := palette.IndexOf(c); exists {
		return index
	}
	*palette = append(*palette, c)
	return v2.PaletteIndex(len(*palette) - 1)
}

// DowngradeToV1 converts a version 2 scene to version 1 for interchange with
// older consumers. Palette references are resolved to their concrete colors
// before the palette is discarded, preserving visual fidelity as the
// reference mechanism disappears. The reported loss covers the palette and,
// when the scene has layers, the visibility flags.
func DowngradeToV1(s *v2.Scene) (*v1.Scene, Loss) {
	out := &v1.Scene{
		Canvas: v1.Canvas{Columns: s.Canvas.Columns, Rows: s.Canvas.Rows},
		Layers: make([]v1.Layer, len(s.Layers)),
	}

	for i, layer := range s.Layers {
		cells := make([]v1.Cell, len(layer.Cells))
		for c, cell := range layer.Cells {
			cells[c] = v1.Cell{
				Glyph:      cell.Glyph,
				Foreground: resolveColor(s.Palette, cell.Foreground, v1.DefaultForeground),
				Background: resolveColor(s.Palette, cell.Background, v1.DefaultBackground),
				Styles:     v1.Style(cell.Styles),
			}
		}
		out.Layers[i] = v1.Layer{
			ID:     layer.ID,
			Offset: v1.Offset{X: layer.Offset.X, Y: layer.Offset.Y},
			Width:  layer.Width,
			Height: layer.Height,
			Cells:  cells,
		}
	}

	fields := []string{FieldPalette}
	if len(s.Layers) > 0 {
		fields = append(fields, FieldVisible)
	}
	return out, lossOf(fields...)
}

// resolveColor resolves a palette reference to its concrete color. Dangling
// references cannot occur in a schema-valid scene; should one slip through
// it resolves to the given default rather than failing the downgrade.
func resolveColor(palette v2.Palette, index v2.PaletteIndex, fallback v1.Color) v1.Color {
	if int(index) < len(palette) {
		return v1.Color(palette[index])
	}
	return fallback
}
