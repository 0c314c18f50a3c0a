package v3

import (
	"maps"
	"slices"

	"github.com/almindor/texel-types/runtime"
)

// Version is the schema version tag of this package, the canonical version
// of this build. Version 3 introduces per-layer labels, scene bookmarks and
// animations on top of version 2.
const Version = runtime.Version(3)

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

// defaultPalette mirrors the version 2 default: the default foreground
// followed by the 16 standard terminal colors. Established once and never
// mutated.
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
// scene palette.
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
	// Labels group layers for bulk selection in the editor.
	Labels []string `json:"labels,omitempty"`
}

// Frame is one step of an animation, shown for Duration milliseconds.
type Frame struct {
	LayerID  uint32 `json:"layerId"`
	Duration uint32 `json:"duration"`
}

// Animation is a named sequence of frames referencing layers by id.
type Animation struct {
	Name   string  `json:"name"`
	Frames []Frame `json:"frames"`
}

// Scene is the full persisted state of one editor document under schema
// version 3, the application's working representation.
type Scene struct {
	Canvas  Canvas  `json:"canvas"`
	Layers  []Layer `json:"layers"`
	Palette Palette `json:"palette"`
	// Bookmarks map jump slots to canvas positions.
	Bookmarks  map[uint32]Offset `json:"bookmarks,omitempty"`
	Animations []Animation       `json:"animations,omitempty"`
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
		out.Layers[i].Labels = slices.Clone(layer.Labels)
	}
	if s.Bookmarks != nil {
		out.Bookmarks = maps.Clone(s.Bookmarks)
	}
	if s.Animations != nil {
		out.Animations = make([]Animation, len(s.Animations))
		for i, animation := range s.Animations {
			out.Animations[i] = animation
			out.Animations[i].Frames = slices.Clone(animation.Frames)
		}
	}
	return out
}

// New creates an empty canonical scene of the given canvas size with the
// default palette and no layers.
func New(columns, rows uint16) *Scene {
	return &Scene{
		Canvas:  Canvas{Columns: columns, Rows: rows},
		Palette: DefaultPalette(),
	}
}

// EmptyCell returns a cell with the empty glyph and the default color.
func EmptyCell() Cell {
	return Cell{Glyph: EmptyGlyph}
}

// NewLayer creates a visible layer of the given size filled with empty cells.
func NewLayer(id uint32, width, height uint16) Layer {
	cells := make([]Cell, int(width)*int(height))
	for i := range cells {
		cells[i] = EmptyCell()
	}
	return Layer{
		ID:      id,
		Width:   width,
		Height:  height,
		Cells:   cells,
		Visible: true,
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

// LayerByID returns the layer with the given id.
// The second return value is false if no layer carries the id.
func (s *Scene) LayerByID(id uint32) (*Layer, bool) {
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			return &s.Layers[i], true
		}
	}
	return nil, false
}
