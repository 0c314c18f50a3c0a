package scene

import (
	v2 "github.com/almindor/texel-types/scene/v2"
	v3 "github.com/almindor/texel-types/scene/v3"
)

// UpgradeFromV2 converts a version 2 scene to version 3. The upgrade is
// total and lossless: all shared fields carry over unchanged, the new
// bookmark, animation and label fields start empty.
func UpgradeFromV2(old *v2.Scene) *v3.Scene {
	out := &v3.Scene{
		Canvas:  v3.Canvas{Columns: old.Canvas.Columns, Rows: old.Canvas.Rows},
		Layers:  make([]v3.Layer, len(old.Layers)),
		Palette: convertPaletteToV3(old.Palette),
	}

	for i, layer := range old.Layers {
		cells := make([]v3.Cell, len(layer.Cells))
		for c, cell := range layer.Cells {
			cells[c] = v3.Cell{
				Glyph:      cell.Glyph,
				Foreground: v3.PaletteIndex(cell.Foreground),
				Background: v3.PaletteIndex(cell.Background),
				Styles:     v3.Style(cell.Styles),
			}
		}
		out.Layers[i] = v3.Layer{
			ID:      layer.ID,
			Offset:  v3.Offset{X: layer.Offset.X, Y: layer.Offset.Y},
			Width:   layer.Width,
			Height:  layer.Height,
			Cells:   cells,
			Visible: layer.Visible,
		}
	}

	return out
}

// DowngradeToV2 converts a version 3 scene to version 2. Bookmarks and
// animations have no version 2 representation and are reported when the
// scene carries any; the same goes for layer labels.
func DowngradeToV2(s *v3.Scene) (*v2.Scene, Loss) {
	out := &v2.Scene{
		Canvas:  v2.Canvas{Columns: s.Canvas.Columns, Rows: s.Canvas.Rows},
		Layers:  make([]v2.Layer, len(s.Layers)),
		Palette: convertPaletteToV2(s.Palette),
	}

	var fields []string
	for i, layer := range s.Layers {
		cells := make([]v2.Cell, len(layer.Cells))
		for c, cell := range layer.Cells {
			cells[c] = v2.Cell{
				Glyph:      cell.Glyph,
				Foreground: v2.PaletteIndex(cell.Foreground),
				Background: v2.PaletteIndex(cell.Background),
				Styles:     v2.Style(cell.Styles),
			}
		}
		out.Layers[i] = v2.Layer{
			ID:      layer.ID,
			Offset:  v2.Offset{X: layer.Offset.X, Y: layer.Offset.Y},
			Width:   layer.Width,
			Height:  layer.Height,
			Cells:   cells,
			Visible: layer.Visible,
		}
		if len(layer.Labels) > 0 {
			fields = append(fields, FieldLabels)
		}
	}

	if len(s.Bookmarks) > 0 {
		fields = append(fields, FieldBookmarks)
	}
	if len(s.Animations) > 0 {
		fields = append(fields, FieldAnimations)
	}
	return out, lossOf(fields...)
}

func convertPaletteToV3(palette v2.Palette) v3.Palette {
	out := make(v3.Palette, len(palette))
	for i, c := range palette {
		out[i] = v3.Color(c)
	}
	return out
}

func convertPaletteToV2(palette v3.Palette) v2.Palette {
	out := make(v2.Palette, len(palette))
	for i, c := range palette {
		out[i] = v2.Color(c)
	}
	return out
}
