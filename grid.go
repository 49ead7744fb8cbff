package icondraft

// Pixel-grid bounds. Grids are always square.
const (
	MinGridSize     = 4
	MaxGridSize     = 64
	DefaultGridSize = 12
)

// PixelGrid is a square grid of cell colors in row-major order. An empty
// string means the cell is transparent. PixelGrid values are treated as
// immutable: mutating helpers return a new grid.
type PixelGrid struct {
	Size  int      `json:"size"`
	Cells []string `json:"cells"`
}

// NewPixelGrid creates an empty grid of size n, clamped to
// [MinGridSize, MaxGridSize].
func NewPixelGrid(n int) PixelGrid {
	n = clampGridSize(n)
	return PixelGrid{Size: n, Cells: make([]string, n*n)}
}

func clampGridSize(n int) int {
	if n < MinGridSize {
		return MinGridSize
	}
	if n > MaxGridSize {
		return MaxGridSize
	}
	return n
}

// normalized returns a grid whose size is within bounds and whose cell slice
// has exactly Size*Size entries. Deserialized grids pass through here before
// rendering.
func (g PixelGrid) normalized() PixelGrid {
	n := clampGridSize(g.Size)
	cells := make([]string, n*n)
	copy(cells, g.Cells)
	return PixelGrid{Size: n, Cells: cells}
}

// At returns the cell color at row r, column c, or "" when out of bounds.
func (g PixelGrid) At(r, c int) string {
	if r < 0 || r >= g.Size || c < 0 || c >= g.Size {
		return ""
	}
	i := r*g.Size + c
	if i >= len(g.Cells) {
		return ""
	}
	return g.Cells[i]
}

// Set returns a copy of the grid with the cell at row r, column c set to the
// given color. Out-of-bounds coordinates return the grid unchanged.
func (g PixelGrid) Set(r, c int, color string) PixelGrid {
	if r < 0 || r >= g.Size || c < 0 || c >= g.Size {
		return g
	}
	out := g.normalized()
	out.Cells[r*out.Size+c] = color
	return out
}

// Filled reports whether the cell at row r, column c holds a color.
// Out-of-bounds cells count as empty.
func (g PixelGrid) Filled(r, c int) bool {
	return g.At(r, c) != ""
}

// IsEmpty reports whether no cell holds a color.
func (g PixelGrid) IsEmpty() bool {
	for _, c := range g.Cells {
		if c != "" {
			return false
		}
	}
	return true
}

// Resized returns a grid of size n with the existing cell contents preserved
// anchored at the top-left corner; cells beyond the preserved region are
// cleared.
func (g PixelGrid) Resized(n int) PixelGrid {
	out := NewPixelGrid(n)
	keep := min(g.Size, out.Size)
	for r := 0; r < keep; r++ {
		for c := 0; c < keep; c++ {
			out.Cells[r*out.Size+c] = g.At(r, c)
		}
	}
	return out
}

// CornerFlags reports which corners of a cell render rounded.
type CornerFlags struct {
	TopLeft     bool
	TopRight    bool
	BottomLeft  bool
	BottomRight bool
}

// Any reports whether at least one corner is rounded.
func (f CornerFlags) Any() bool {
	return f.TopLeft || f.TopRight || f.BottomLeft || f.BottomRight
}

// All reports whether every corner is rounded.
func (f CornerFlags) All() bool {
	return f.TopLeft && f.TopRight && f.BottomLeft && f.BottomRight
}

// CornerFlags computes the smart-rounding flags for the cell at row r,
// column c. A corner is rounded iff both of its two orthogonally-adjacent
// cells are empty; cells outside the grid count as empty. A filled diagonal
// neighbor alone never suppresses rounding. Both export paths consume these
// flags, so the rule holds identically for raster and vector output.
func (g PixelGrid) CornerFlags(r, c int) CornerFlags {
	up := g.Filled(r-1, c)
	down := g.Filled(r+1, c)
	left := g.Filled(r, c-1)
	right := g.Filled(r, c+1)
	return CornerFlags{
		TopLeft:     !up && !left,
		TopRight:    !up && !right,
		BottomLeft:  !down && !left,
		BottomRight: !down && !right,
	}
}
