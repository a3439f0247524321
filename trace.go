package brandforge

import (
	"fmt"
	"image"
	"strings"
)

// minRegionSize is the noise filter cutoff: connected regions with fewer
// cells are discarded before path emission.
const minRegionSize = 10

// Region is one 4-connected cluster of foreground cells together with its
// bounding box.
type Region struct {
	Cells                  []image.Point
	MinX, MinY, MaxX, MaxY int
}

// Size returns the number of member cells.
func (r *Region) Size() int { return len(r.Cells) }

// PathFragment is the run-length silhouette of a single region expressed
// as SVG path data built from M/h/v/z commands only.
type PathFragment struct {
	D    string
	Fill string
}

// FindRegions collects the connected foreground regions of the mask.
// Cells are scanned in row-major order and each unvisited foreground cell
// seeds a stack based 4-connected flood fill. Regions smaller than
// minRegionSize cells are dropped as noise. The returned slice is ordered
// by the scan position of each region's first discovered cell, so the
// output is deterministic for identical input.
func FindRegions(m *Mask) []Region {
	visited := make([][]bool, m.Height)
	for y := range visited {
		visited[y] = make([]bool, m.Width)
	}

	var regions []Region

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if visited[y][x] || !m.Cells[y][x] {
				continue
			}

			region := Region{MinX: x, MinY: y, MaxX: x, MaxY: y}
			stack := []image.Point{{X: x, Y: y}}
			visited[y][x] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				region.Cells = append(region.Cells, p)
				if p.X < region.MinX {
					region.MinX = p.X
				}
				if p.X > region.MaxX {
					region.MaxX = p.X
				}
				if p.Y < region.MinY {
					region.MinY = p.Y
				}
				if p.Y > region.MaxY {
					region.MaxY = p.Y
				}

				neighbors := [4]image.Point{
					{X: p.X, Y: p.Y - 1},
					{X: p.X, Y: p.Y + 1},
					{X: p.X - 1, Y: p.Y},
					{X: p.X + 1, Y: p.Y},
				}
				for _, n := range neighbors {
					if n.X < 0 || n.Y < 0 || n.X >= m.Width || n.Y >= m.Height {
						continue
					}
					if visited[n.Y][n.X] || !m.Cells[n.Y][n.X] {
						continue
					}
					visited[n.Y][n.X] = true
					stack = append(stack, n)
				}
			}

			if region.Size() >= minRegionSize {
				regions = append(regions, region)
			}
		}
	}

	return regions
}

// TracePaths converts the mask into one path fragment per surviving region.
// Each region is approximated by unit-height horizontal strips: every row
// inside the bounding box is scanned left to right and each contiguous run
// of foreground cells becomes one closed rectangle command. The result is a
// blocky pixel-run silhouette rather than a smoothed outline; see
// TraceContours for the curve fitting alternative.
func TracePaths(m *Mask, fill string) []PathFragment {
	if fill == "" {
		fill = "#000000"
	}

	regions := FindRegions(m)
	paths := make([]PathFragment, 0, len(regions))

	for _, region := range regions {
		var d strings.Builder

		for y := region.MinY; y <= region.MaxY; y++ {
			for x := region.MinX; x <= region.MaxX; x++ {
				if !m.Cells[y][x] {
					continue
				}
				run := 0
				for x+run <= region.MaxX && m.Cells[y][x+run] {
					run++
				}
				fmt.Fprintf(&d, "M%d %dh%dv1h-%dz", x, y, run, run)
				x += run
			}
		}

		paths = append(paths, PathFragment{D: d.String(), Fill: fill})
	}

	return paths
}
