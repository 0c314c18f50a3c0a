package v2

import (
	"slices"

	"github.com/almindor/texel-types/runtime"
)

// Version is the schema version tag of this package. Version 2 introduces
// the per-layer visibility flag and the scene palette; cell colors become
// palette indices instead of embedded values. The deprecated selection flag
// of version 1 is not carried over.
const Version = runtime.Version(2)

// EmptyGlyph is the sentinel glyph of a cell with no visible content.
const EmptyGlyph = ' '

// Color is a concrete terminal color as an ANSI-256 value.
type Color uint8

// PaletteIndex references a palette entry. Index 0 is the implicit default
// color and always exists in a schema-valid scene.
type PaletteIndex uint8

// DefaultIndex is the palette index of the default color.
const DefaultIndex = PaletteIndex(0)

// Palette is an ordered table of colors referenced by index from cells.
type Palette []Color

// defaultPalette is the version-pinned palette assigned by the upgrade from
// version 1: the default foreground followed by the 16 standard terminal
// colors. Established once and never mutated.
var defaultPalette = Palette{
	248,
	0, 1, 2, 3, 4, 5, 6, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
}

// DefaultPalette returns a fresh copy of the version-pinned default palette.
func DefaultPalette() Palette {
	return slices.Clone(defaultPalette)
}

// IndexOf returns the index of the first entry equal to c.
// The second return value is false if the palette does not contain c.
func (p Palette) IndexOf(c Color) (PaletteIndex, bool) {
	for i, entry := range p {
		if entry == c {
			return PaletteIndex(i), true
		}
	}
	return 0, false
}

// Style is a bitmask of display attributes applied to a cell's glyph.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUnderline
)

// Has reports whether all bits of flag are set.
func (s Style) Has(flag Style) bool {
	return s&flag == flag
}

// Canvas is the drawable area of a scene in character cells.
type Canvas struct {
	Columns uint16 `json:"columns"`
	Rows    uint16 `json:"rows"`
}

// Offset is a signed 2D position relative to the canvas origin.
type Offset struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Cell is one glyph position's displayable content. Colors reference the
// scene palette; a dangling reference is a schema violation, not a
// runtime-tolerated state.
type Cell struct {
	Glyph      rune         `json:"glyph"`
	Foreground PaletteIndex `json:"fg"`
	Background PaletteIndex `json:"bg"`
	Styles     Style        `json:"styles,omitempty"`
}

// Layer is a positioned rectangular grid of cells within a scene. Cells is
// row-major and must hold exactly Width*Height entries.
type Layer struct {
	ID      uint32 `json:"id"`
	Offset  Offset `json:"offset"`
	Width   uint16 `json:"width"`
	Height  uint16 `json:"height"`
	Cells   []Cell `json:"cells"`
	Visible bool   `json:"visible"`
}

// Scene is the full persisted state of one editor document under schema
// version 2.
type Scene struct {
	Canvas  Canvas  `json:"canvas"`
	Layers  []Layer `json:"layers"`
	Palette Palette `json:"palette"`
}

var _ runtime.Versioned = &Scene{}

func (s *Scene) GetVersion() runtime.Version {
	return Version
}

func (s *Scene) DeepCopyVersioned() runtime.Versioned {
	return s.DeepCopy()
}

func (s *Scene) DeepCopy() *Scene {
	out := &Scene{
		Canvas:  s.Canvas,
		Layers:  make([]Layer, len(s.Layers)),
		Palette: slices.Clone(s.Palette),
	}
	for i, layer := range s.Layers {
		out.Layers[i] = layer
		out.Layers[i].Cells = slices.Clone(layer.Cells)
	}
	return out
}

// EmptyCell returns a cell with the empty glyph and the default color.
func EmptyCell() Cell {
	return Cell{Glyph: EmptyGlyph}
}

// CellAt returns the cell at column x, row y of the layer's own grid.
// The second return value is false outside the grid.
func (l *Layer) CellAt(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= int(l.Width) || y >= int(l.Height) {
		return Cell{}, false
	}
	return l.Cells[y*int(l.Width)+x], true
}
