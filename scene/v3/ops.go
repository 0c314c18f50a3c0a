package v3

import (
	"errors"
	"fmt"
	"slices"
)

// Mutation errors. A rejected operation leaves the scene unmodified, there
// is no partial mutation to roll back.
var (
	ErrUnknownLayer        = errors.New("no layer with the given id")
	ErrDuplicateLayerID    = errors.New("layer id already in use")
	ErrLayerReferenced     = errors.New("layer is referenced by an animation")
	ErrInvalidDimensions   = errors.New("dimensions must be positive")
	ErrGridMismatch        = errors.New("cell grid does not match layer dimensions")
	ErrInvalidPaletteEntry = errors.New("palette entry does not exist")
	ErrDefaultPaletteEntry = errors.New("palette entry 0 is the default color and cannot be removed")
	ErrPaletteFull         = errors.New("palette cannot hold more than 256 entries")
	ErrOutOfGrid           = errors.New("position outside the layer grid")
	ErrUnknownAnimation    = errors.New("no animation with the given name")
	ErrDanglingReference   = errors.New("cell references a palette entry outside the palette")
)

// ResizeCanvas resizes the canvas and every layer's grid to the new
// dimensions. Each layer is cropped from its origin corner or padded with
// empty cells independently of the others; the retained region is preserved
// cell for cell.
func (s *Scene) ResizeCanvas(columns, rows uint16) error {
	if columns == 0 || rows == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, columns, rows)
	}

	for i := range s.Layers {
		layer := &s.Layers[i]
		cells := make([]Cell, int(columns)*int(rows))
		for y := 0; y < int(rows); y++ {
			for x := 0; x < int(columns); x++ {
				if cell, ok := layer.CellAt(x, y); ok {
					cells[y*int(columns)+x] = cell
				} else {
					cells[y*int(columns)+x] = EmptyCell()
				}
			}
		}
		layer.Width = columns
		layer.Height = rows
		layer.Cells = cells
	}

	s.Canvas = Canvas{Columns: columns, Rows: rows}
	return nil
}

// InsertLayer inserts a layer at the given z-order index, shifting later
// layers back. The layer must carry an unused id, positive dimensions, a
// matching grid and palette references that resolve.
func (s *Scene) InsertLayer(index int, layer Layer) error {
	if index < 0 || index > len(s.Layers) {
		return fmt.Errorf("layer index %d out of range [0, %d]", index, len(s.Layers))
	}
	if _, exists := s.LayerByID(layer.ID); exists {
		return fmt.Errorf("%w: %d", ErrDuplicateLayerID, layer.ID)
	}
	if layer.Width == 0 || layer.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, layer.Width, layer.Height)
	}
	if expected := int(layer.Width) * int(layer.Height); len(layer.Cells) != expected {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrGridMismatch, len(layer.Cells), layer.Width, layer.Height)
	}
	for _, cell := range layer.Cells {
		if int(cell.Foreground) >= len(s.Palette) || int(cell.Background) >= len(s.Palette) {
			return fmt.Errorf("%w: fg %d, bg %d of %d entries",
				ErrDanglingReference, cell.Foreground, cell.Background, len(s.Palette))
		}
	}

	s.Layers = slices.Insert(s.Layers, index, layer)
	return nil
}

// AppendLayer inserts a layer at the back of the z-order.
func (s *Scene) AppendLayer(layer Layer) error {
	return s.InsertLayer(len(s.Layers), layer)
}

// RemoveLayer removes the layer with the given id, keeping the z-order of
// the remaining sequence contiguous. Removal is rejected while any animation
// frame references the layer, so no dangling reference can be left behind.
func (s *Scene) RemoveLayer(id uint32) error {
	index := -1
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, id)
	}

	for _, animation := range s.Animations {
		for _, frame := range animation.Frames {
			if frame.LayerID == id {
				return fmt.Errorf("%w: layer %d in animation %q", ErrLayerReferenced, id, animation.Name)
			}
		}
	}

	s.Layers = slices.Delete(s.Layers, index, index+1)
	return nil
}

// MoveLayer moves the layer with the given id to a new z-order index.
func (s *Scene) MoveLayer(id uint32, index int) error {
	if index < 0 || index >= len(s.Layers) {
		return fmt.Errorf("layer index %d out of range [0, %d)", index, len(s.Layers))
	}
	from := -1
	for i := range s.Layers {
		if s.Layers[i].ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, id)
	}

	layer := s.Layers[from]
	s.Layers = slices.Delete(s.Layers, from, from+1)
	s.Layers = slices.Insert(s.Layers, index, layer)
	return nil
}

// SetCell replaces the cell at column x, row y of the given layer's grid.
// The cell's palette references must resolve.
func (s *Scene) SetCell(id uint32, x, y int, cell Cell) error {
	layer, exists := s.LayerByID(id)
	if !exists {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, id)
	}
	if x < 0 || y < 0 || x >= int(layer.Width) || y >= int(layer.Height) {
		return fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfGrid, x, y, layer.Width, layer.Height)
	}
	if int(cell.Foreground) >= len(s.Palette) || int(cell.Background) >= len(s.Palette) {
		return fmt.Errorf("%w: fg %d, bg %d of %d entries",
			ErrDanglingReference, cell.Foreground, cell.Background, len(s.Palette))
	}

	layer.Cells[y*int(layer.Width)+x] = cell
	return nil
}

// AddPaletteColor returns the index of the given color, appending a new
// palette entry only if the color is not present yet.
func (s *Scene) AddPaletteColor(c Color) (PaletteIndex, error) {
	if index, exists := s.Palette.IndexOf(c); exists {
		return index, nil
	}
	if len(s.Palette) >= 256 {
		return 0, ErrPaletteFull
	}
	s.Palette = append(s.Palette, c)
	return PaletteIndex(len(s.Palette) - 1), nil
}

// RemovePaletteEntry removes the palette entry at the given index. Every
// cell referencing the removed index is remapped to index 0, the default
// color, as part of the removal; references above the removed index shift
// down with their entries. Index 0 itself cannot be removed.
func (s *Scene) RemovePaletteEntry(index PaletteIndex) error {
	if index == DefaultIndex {
		return ErrDefaultPaletteEntry
	}
	if int(index) >= len(s.Palette) {
		return fmt.Errorf("%w: %d of %d entries", ErrInvalidPaletteEntry, index, len(s.Palette))
	}

	remap := func(ref PaletteIndex) PaletteIndex {
		switch {
		case ref == index:
			return DefaultIndex
		case ref > index:
			return ref - 1
		default:
			return ref
		}
	}

	for i := range s.Layers {
		for c := range s.Layers[i].Cells {
			cell := &s.Layers[i].Cells[c]
			cell.Foreground = remap(cell.Foreground)
			cell.Background = remap(cell.Background)
		}
	}

	s.Palette = slices.Delete(s.Palette, int(index), int(index)+1)
	return nil
}

// SetBookmark stores a canvas position under the given jump slot, replacing
// any previous position in that slot.
func (s *Scene) SetBookmark(slot uint32, pos Offset) {
	if s.Bookmarks == nil {
		s.Bookmarks = make(map[uint32]Offset)
	}
	s.Bookmarks[slot] = pos
}

// RemoveBookmark clears the given jump slot.
// It reports whether the slot held a position.
func (s *Scene) RemoveBookmark(slot uint32) bool {
	if _, exists := s.Bookmarks[slot]; !exists {
		return false
	}
	delete(s.Bookmarks, slot)
	return true
}

// AddAnimation appends a new empty animation with the given name.
func (s *Scene) AddAnimation(name string) error {
	if name == "" {
		return errors.New("animation name must not be empty")
	}
	for _, animation := range s.Animations {
		if animation.Name == name {
			return fmt.Errorf("animation %q already exists", name)
		}
	}
	s.Animations = append(s.Animations, Animation{Name: name})
	return nil
}

// AppendFrame appends a frame to the named animation. The referenced layer
// must exist.
func (s *Scene) AppendFrame(name string, layerID uint32, duration uint32) error {
	if _, exists := s.LayerByID(layerID); !exists {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, layerID)
	}
	for i := range s.Animations {
		if s.Animations[i].Name == name {
			s.Animations[i].Frames = append(s.Animations[i].Frames, Frame{LayerID: layerID, Duration: duration})
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
}

// RemoveAnimation removes the named animation and with it every frame
// reference it held.
func (s *Scene) RemoveAnimation(name string) error {
	for i := range s.Animations {
		if s.Animations[i].Name == name {
			s.Animations = slices.Delete(s.Animations, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
}
