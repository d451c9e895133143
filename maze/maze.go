// Package maze generates perfect mazes on rectangular grids.
//
// A maze is a spanning tree of the grid graph whose nodes are the cells of a
// Width×Height grid and whose edges join orthogonally adjacent cells. Every
// pair of cells is connected by exactly one path.
package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"
)

// ErrInvalidSize is returned for grids with no cells.
var ErrInvalidSize = errors.New("invalid maze size")

// Cell types of [Maze.Grid].
const (
	Wall    = true
	Passage = false
)

// Point is a cell coordinate. X grows to the right, Y grows downwards.
type Point struct {
	X, Y int
}

type Config struct {
	Width, Height int
	// Start is where the backtracker begins. It has to lie inside the grid.
	Start Point
	// Seed seeds the random walk. Zero picks a seed from the clock.
	Seed uint64
}

// dir is a set of open sides of a cell.
type dir uint8

const (
	north dir = 1 << iota
	south
	west
	east
)

var steps = [...]struct {
	d      dir
	dx, dy int
}{
	{north, 0, -1},
	{south, 0, 1},
	{west, -1, 0},
	{east, 1, 0},
}

func (d dir) opposite() dir {
	switch d {
	case north:
		return south
	case south:
		return north
	case west:
		return east
	default:
		return west
	}
}

// Maze is a generated maze. Cells are numbered row by row, so the cell at
// (x, y) has index y*Width+x.
type Maze struct {
	Width, Height int
	// Order lists every cell in the order the generator first reached it.
	Order []int

	open []dir
}

// Generate builds a maze with an iterative recursive backtracker: a random
// walk that carves into unvisited neighbours and backs up along its own trail
// when it gets stuck.
func Generate(cfg Config) (*Maze, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	m := &Maze{
		Width:  cfg.Width,
		Height: cfg.Height,
		Order:  make([]int, 0, cfg.Width*cfg.Height),
		open:   make([]dir, cfg.Width*cfg.Height),
	}
	if !m.inside(cfg.Start) {
		return nil, fmt.Errorf("start %v outside %dx%d maze", cfg.Start, cfg.Width, cfg.Height)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	visited := make([]bool, len(m.open))
	start := m.Cell(cfg.Start.X, cfg.Start.Y)
	visited[start] = true
	m.Order = append(m.Order, start)
	stack := []int{start}

	var candidates [4]int
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		p := m.Point(curr)

		n := 0
		for i, s := range steps {
			next := Point{p.X + s.dx, p.Y + s.dy}
			if m.inside(next) && !visited[m.Cell(next.X, next.Y)] {
				candidates[n] = i
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		s := steps[candidates[rng.IntN(n)]]
		next := m.Cell(p.X+s.dx, p.Y+s.dy)
		m.open[curr] |= s.d
		m.open[next] |= s.d.opposite()
		visited[next] = true
		m.Order = append(m.Order, next)
		stack = append(stack, next)
	}
	return m, nil
}

func (m *Maze) inside(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// Cell returns the index of the cell at (x, y).
func (m *Maze) Cell(x, y int) int { return y*m.Width + x }

// Point returns the coordinates of cell c.
func (m *Maze) Point(c int) Point { return Point{c % m.Width, c / m.Width} }

// Len returns the number of cells.
func (m *Maze) Len() int { return len(m.open) }

func (m *Maze) checkCell(c int) {
	if c < 0 || c >= len(m.open) {
		panic(fmt.Sprintf("cell %d out of range [0, %d)", c, len(m.open)))
	}
}

// Neighbors returns the cells joined to c by a passage.
func (m *Maze) Neighbors(c int) []int {
	m.checkCell(c)
	p := m.Point(c)
	var out []int
	for _, s := range steps {
		if m.open[c]&s.d != 0 {
			out = append(out, m.Cell(p.X+s.dx, p.Y+s.dy))
		}
	}
	return out
}

// Connected reports whether a passage joins the cells a and b directly.
func (m *Maze) Connected(a, b int) bool {
	return slices.Contains(m.Neighbors(a), b)
}

// Edges returns the number of passages between cells.
func (m *Maze) Edges() int {
	n := 0
	for _, o := range m.open {
		// Count each passage from its west or north end only.
		if o&east != 0 {
			n++
		}
		if o&south != 0 {
			n++
		}
	}
	return n
}

// Solve returns the cells on the path from one cell to another, both
// included.
func (m *Maze) Solve(from, to int) []int {
	m.checkCell(from)
	m.checkCell(to)

	cameFrom := make([]int, len(m.open))
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	cameFrom[from] = from
	queue := []int{from}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == to {
			break
		}
		for _, next := range m.Neighbors(curr) {
			if cameFrom[next] == -1 {
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	if cameFrom[to] == -1 {
		return nil
	}

	var path []int
	for c := to; c != from; c = cameFrom[c] {
		path = append(path, c)
	}
	path = append(path, from)
	slices.Reverse(path)
	return path
}

// Grid returns the maze as a (2*Height+1)×(2*Width+1) raster of walls and
// passages, indexed [row][column]. Cell (x, y) sits at row 2y+1, column
// 2x+1.
func (m *Maze) Grid() [][]bool {
	rows, cols := 2*m.Height+1, 2*m.Width+1
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
		for j := range grid[i] {
			grid[i][j] = Wall
		}
	}
	for c, o := range m.open {
		p := m.Point(c)
		gx, gy := 2*p.X+1, 2*p.Y+1
		grid[gy][gx] = Passage
		for _, s := range steps {
			if o&s.d != 0 {
				grid[gy+s.dy][gx+s.dx] = Passage
			}
		}
	}
	return grid
}

// WriteText draws the maze with block characters, marking the cells of path
// and the passages between consecutive path cells.
func (m *Maze) WriteText(w io.Writer, path []int) error {
	grid := m.Grid()
	marked := make([][]bool, len(grid))
	for i := range marked {
		marked[i] = make([]bool, len(grid[i]))
	}
	for i, c := range path {
		m.checkCell(c)
		p := m.Point(c)
		marked[2*p.Y+1][2*p.X+1] = true
		if i > 0 {
			q := m.Point(path[i-1])
			marked[p.Y+q.Y+1][p.X+q.X+1] = true
		}
	}

	bw := bufio.NewWriter(w)
	for y, row := range grid {
		for x, wall := range row {
			switch {
			case wall:
				bw.WriteString("█")
			case marked[y][x]:
				bw.WriteString("•")
			default:
				bw.WriteByte(' ')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
