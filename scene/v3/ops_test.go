package v3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/almindor/texel-types/scene/v3"
)

// letterScene builds a 10x10 scene with one layer whose cells carry their
// grid position as a glyph, so truncation fidelity is easy to check.
func letterScene(t *testing.T) *v3.Scene {
	t.Helper()

	s := v3.New(10, 10)
	layer := v3.NewLayer(1, 10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			layer.Cells[y*10+x].Glyph = rune('a' + (y*10+x)%26)
		}
	}
	require.NoError(t, s.AppendLayer(layer))
	return s
}

func TestResizeCanvas_Truncates(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)
	original := s.DeepCopy()

	r.NoError(s.ResizeCanvas(5, 5))
	r.Equal(v3.Canvas{Columns: 5, Rows: 5}, s.Canvas)
	r.NoError(v3.Validate(s))

	layer := s.Layers[0]
	r.Equal(uint16(5), layer.Width)
	r.Equal(uint16(5), layer.Height)
	r.Len(layer.Cells, 25)

	// retained region is the top-left corner, cell for cell
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			expected, _ := original.Layers[0].CellAt(x, y)
			got, ok := layer.CellAt(x, y)
			r.True(ok)
			r.Equal(expected, got, "cell (%d, %d)", x, y)
		}
	}
}

func TestResizeCanvas_Pads(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)

	r.NoError(s.ResizeCanvas(12, 11))
	layer := s.Layers[0]
	r.Len(layer.Cells, 12*11)

	cell, ok := layer.CellAt(11, 10)
	r.True(ok)
	r.Equal(v3.EmptyCell(), cell)

	cell, ok = layer.CellAt(9, 9)
	r.True(ok)
	r.Equal(rune('a'+99%26), cell.Glyph)
}

func TestResizeCanvas_RejectsZero(t *testing.T) {
	s := letterScene(t)
	require.ErrorIs(t, s.ResizeCanvas(0, 5), v3.ErrInvalidDimensions)
	require.Equal(t, v3.Canvas{Columns: 10, Rows: 10}, s.Canvas)
}

func TestInsertLayer(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)

	r.NoError(s.InsertLayer(0, v3.NewLayer(2, 3, 3)))
	r.Equal(uint32(2), s.Layers[0].ID)
	r.Equal(uint32(1), s.Layers[1].ID)

	r.ErrorIs(s.InsertLayer(0, v3.NewLayer(1, 3, 3)), v3.ErrDuplicateLayerID)

	ragged := v3.NewLayer(3, 3, 3)
	ragged.Cells = ragged.Cells[:4]
	r.ErrorIs(s.AppendLayer(ragged), v3.ErrGridMismatch)

	dangling := v3.NewLayer(4, 1, 1)
	dangling.Cells[0].Background = v3.PaletteIndex(len(s.Palette))
	r.ErrorIs(s.AppendLayer(dangling), v3.ErrDanglingReference)

	// rejected inserts leave the scene unmodified
	r.Len(s.Layers, 2)
}

func TestRemoveLayer(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)
	r.NoError(s.AppendLayer(v3.NewLayer(2, 2, 2)))

	r.NoError(s.RemoveLayer(1))
	r.Len(s.Layers, 1)
	r.Equal(uint32(2), s.Layers[0].ID)

	r.ErrorIs(s.RemoveLayer(9), v3.ErrUnknownLayer)
}

func TestRemoveLayer_ReferencedByAnimation(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)
	r.NoError(s.AddAnimation("blink"))
	r.NoError(s.AppendFrame("blink", 1, 120))

	err := s.RemoveLayer(1)
	r.ErrorIs(err, v3.ErrLayerReferenced)
	r.Len(s.Layers, 1)

	// removal works once the referencing animation is gone
	r.NoError(s.RemoveAnimation("blink"))
	r.NoError(s.RemoveLayer(1))
	r.Empty(s.Layers)
}

func TestMoveLayer(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)
	r.NoError(s.AppendLayer(v3.NewLayer(2, 2, 2)))
	r.NoError(s.AppendLayer(v3.NewLayer(3, 2, 2)))

	r.NoError(s.MoveLayer(3, 0))
	r.Equal(uint32(3), s.Layers[0].ID)
	r.Equal(uint32(1), s.Layers[1].ID)
	r.Equal(uint32(2), s.Layers[2].ID)

	r.ErrorIs(s.MoveLayer(9, 0), v3.ErrUnknownLayer)
	r.Error(s.MoveLayer(1, 3))
}

func TestRemovePaletteEntry_Remaps(t *testing.T) {
	r := require.New(t)

	s := v3.New(2, 1)
	s.Palette = v3.Palette{248, 196, 21} // default, red, blue
	layer := v3.NewLayer(1, 2, 1)
	layer.Cells[0].Foreground = 1 // red
	layer.Cells[1].Foreground = 2 // blue
	r.NoError(s.AppendLayer(layer))

	r.NoError(s.RemovePaletteEntry(1))
	r.Equal(v3.Palette{248, 21}, s.Palette)

	// the red reference fell back to the default, the blue one shifted down
	r.Equal(v3.DefaultIndex, s.Layers[0].Cells[0].Foreground)
	r.Equal(v3.PaletteIndex(1), s.Layers[0].Cells[1].Foreground)
	r.NoError(v3.Validate(s))
}

func TestRemovePaletteEntry_Rejects(t *testing.T) {
	r := require.New(t)
	s := v3.New(1, 1)

	r.ErrorIs(s.RemovePaletteEntry(0), v3.ErrDefaultPaletteEntry)
	r.ErrorIs(s.RemovePaletteEntry(v3.PaletteIndex(len(s.Palette))), v3.ErrInvalidPaletteEntry)
	r.Len(s.Palette, 17)
}

func TestAddPaletteColor(t *testing.T) {
	r := require.New(t)
	s := v3.New(1, 1)

	index, err := s.AddPaletteColor(196)
	r.NoError(err)
	r.Equal(v3.PaletteIndex(17), index)

	// adding the same color again returns the existing entry
	again, err := s.AddPaletteColor(196)
	r.NoError(err)
	r.Equal(index, again)
	r.Len(s.Palette, 18)

	existing, err := s.AddPaletteColor(248)
	r.NoError(err)
	r.Equal(v3.DefaultIndex, existing)
}

func TestSetCell(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)

	cell := v3.Cell{Glyph: '@', Foreground: 1, Background: 0, Styles: v3.StyleBold}
	r.NoError(s.SetCell(1, 3, 4, cell))
	got, ok := s.Layers[0].CellAt(3, 4)
	r.True(ok)
	r.Equal(cell, got)

	r.ErrorIs(s.SetCell(9, 0, 0, cell), v3.ErrUnknownLayer)
	r.ErrorIs(s.SetCell(1, 10, 0, cell), v3.ErrOutOfGrid)

	cell.Foreground = v3.PaletteIndex(len(s.Palette))
	r.ErrorIs(s.SetCell(1, 0, 0, cell), v3.ErrDanglingReference)
}

func TestBookmarks(t *testing.T) {
	r := require.New(t)
	s := v3.New(4, 4)

	s.SetBookmark(1, v3.Offset{X: 2, Y: 3})
	s.SetBookmark(1, v3.Offset{X: 0, Y: 1})
	r.Equal(v3.Offset{X: 0, Y: 1}, s.Bookmarks[1])

	r.True(s.RemoveBookmark(1))
	r.False(s.RemoveBookmark(1))
}

func TestAnimations(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)

	r.Error(s.AddAnimation(""))
	r.NoError(s.AddAnimation("blink"))
	r.Error(s.AddAnimation("blink"))

	r.ErrorIs(s.AppendFrame("blink", 9, 100), v3.ErrUnknownLayer)
	r.ErrorIs(s.AppendFrame("walk", 1, 100), v3.ErrUnknownAnimation)
	r.NoError(s.AppendFrame("blink", 1, 100))

	r.NoError(v3.Validate(s))
	r.ErrorIs(s.RemoveAnimation("walk"), v3.ErrUnknownAnimation)
}

func TestValidate_AnimationReferences(t *testing.T) {
	s := letterScene(t)
	s.Animations = []v3.Animation{{Name: "blink", Frames: []v3.Frame{{LayerID: 42}}}}

	err := v3.Validate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `animation "blink" frame 0 references missing layer id 42`)
}

func TestDeepCopy_Isolated(t *testing.T) {
	r := require.New(t)
	s := letterScene(t)
	s.SetBookmark(0, v3.Offset{X: 1, Y: 1})
	r.NoError(s.AddAnimation("blink"))
	r.NoError(s.AppendFrame("blink", 1, 50))

	clone := s.DeepCopy()
	r.Equal(s, clone)

	clone.Layers[0].Cells[0].Glyph = '#'
	clone.Palette[0] = 1
	clone.SetBookmark(0, v3.Offset{X: 9, Y: 9})
	clone.Animations[0].Frames[0].Duration = 999

	r.NotEqual(s.Layers[0].Cells[0].Glyph, clone.Layers[0].Cells[0].Glyph)
	r.NotEqual(s.Palette[0], clone.Palette[0])
	r.NotEqual(s.Bookmarks[0], clone.Bookmarks[0])
	r.NotEqual(s.Animations[0].Frames[0].Duration, clone.Animations[0].Frames[0].Duration)
}
