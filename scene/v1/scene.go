package v1

import (
	"github.com/almindor/texel-types/runtime"
)

// Version is the schema version tag of this package. The package is frozen:
// released field shapes are never edited in place, new fields only ever
// arrive in a new version package.
const Version = runtime.Version(1)

// Default colors assigned to cells created without explicit colors.
const (
	// DefaultForeground is the default cell foreground, ANSI-256 value.
	DefaultForeground = Color(248)
	// DefaultBackground is the default cell background, ANSI-256 value.
	DefaultBackground = Color(0)
)

// EmptyGlyph is the sentinel glyph of a cell with no visible content.
const EmptyGlyph = ' '

// Color is a concrete terminal color as an ANSI-256 value. Version 1 has no
// palette, colors are embedded directly in every cell.
type Color uint8

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

// Offset is a signed 2D position relative to the canvas origin. Layers may
// sit partially or fully outside the canvas.
type Offset struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Cell is one glyph position's displayable content.
type Cell struct {
	Glyph      rune  `json:"glyph"`
	Foreground Color `json:"fg"`
	Background Color `json:"bg"`
	Styles     Style `json:"styles,omitempty"`
}

// Layer is a positioned rectangular grid of cells within a scene. Cells is
// row-major and must hold exactly Width*Height entries.
type Layer struct {
	// ID identifies the layer independently of its position in the scene's
	// layer sequence. Unique within a scene.
	ID     uint32 `json:"id"`
	Offset Offset `json:"offset"`
	Width  uint16 `json:"width"`
	Height uint16 `json:"height"`
	Cells  []Cell `json:"cells"`
	// Selected is editor selection state serialized by mistake in the
	// initial release. Dropped in version 2, the single lossy step of the
	// format's history.
	Selected bool `json:"selected,omitempty"`
}

// Scene is the full persisted state of one editor document under schema
// version 1. The layer sequence is the z-order and is preserved exactly
// through all conversions.
type Scene struct {
	Canvas Canvas  `json:"canvas"`
	Layers []Layer `json:"layers"`
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
		Canvas: s.Canvas,
		Layers: make([]Layer, len(s.Layers)),
	}
	for i, layer := range s.Layers {
		out.Layers[i] = layer
		out.Layers[i].Cells = make([]Cell, len(layer.Cells))
		copy(out.Layers[i].Cells, layer.Cells)
	}
	return out
}

// EmptyCell returns a cell with the empty glyph and default colors.
func EmptyCell() Cell {
	return Cell{
		Glyph:      EmptyGlyph,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
	}
}

// NewLayer creates a layer of the given size filled with empty cells.
func NewLayer(id uint32, width, height uint16) Layer {
	cells := make([]Cell, int(width)*int(height))
	for i := range cells {
		cells[i] = EmptyCell()
	}
	return Layer{
		ID:     id,
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// CellAt returns the cell at column x, row y of the layer's own grid.
// The second return value is false outside the grid.
func (l *Layer) CellAt(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= int(l.Width) || y >= int(l.Height) {
		return Cell{}, false
	}
	return l.Cells[y*int(l.Width)+x], true
}
