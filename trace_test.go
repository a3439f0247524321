package brandforge

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

// newMask builds an all-background mask of the given size.
func newMask(width, height int) *Mask {
	cells := make([][]bool, height)
	for y := range cells {
		cells[y] = make([]bool, width)
	}
	return &Mask{Width: width, Height: height, Cells: cells}
}

func TestTrace_BlankMask(t *testing.T) {
	mask := newMask(imgWidth, imgHeight)

	regions := FindRegions(mask)
	if len(regions) != 0 {
		t.Errorf("Blank mask expected to produce 0 regions. Got %v", len(regions))
	}

	paths := TracePaths(mask, "#000000")
	if len(paths) != 0 {
		t.Errorf("Blank mask expected to produce 0 paths. Got %v", len(paths))
	}
}

func TestTrace_NoiseFilter(t *testing.T) {
	// A 3x3 block is 9 connected cells, one below the cutoff.
	mask := newMask(imgWidth, imgHeight)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			mask.Cells[y][x] = true
		}
	}
	if paths := TracePaths(mask, "#000000"); len(paths) != 0 {
		t.Errorf("A 9 cell region expected to be filtered as noise. Got %v paths", len(paths))
	}

	// Two more connected cells push it to 11, above the cutoff.
	mask.Cells[3][0] = true
	mask.Cells[3][1] = true
	if paths := TracePaths(mask, "#000000"); len(paths) < 1 {
		t.Errorf("An 11 cell region expected to produce at least one path. Got %v", len(paths))
	}
}

func TestTrace_SeparateRegions(t *testing.T) {
	// Two 4x4 blocks separated by a background column are distinct regions,
	// emitted in row-major discovery order.
	mask := newMask(20, 10)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			mask.Cells[y][x] = true
			mask.Cells[y][x+10] = true
		}
	}

	regions := FindRegions(mask)
	if len(regions) != 2 {
		t.Fatalf("Expected 2 regions. Got %v", len(regions))
	}
	if regions[0].MinX != 0 || regions[1].MinX != 10 {
		t.Errorf("Regions expected in scan order with MinX 0 and 10. Got %v and %v",
			regions[0].MinX, regions[1].MinX)
	}
	if regions[0].Size() != 16 || regions[1].Size() != 16 {
		t.Errorf("Region sizes expected to be 16 and 16. Got %v and %v",
			regions[0].Size(), regions[1].Size())
	}
}

func TestTrace_DiagonalIsNotConnected(t *testing.T) {
	// Diagonal neighbors do not touch under 4-connectivity, so a diagonal
	// line of single cells never reaches the size cutoff.
	mask := newMask(imgWidth, imgHeight)
	for i := 0; i < imgWidth; i++ {
		mask.Cells[i][i] = true
	}

	regions := FindRegions(mask)
	if len(regions) != 0 {
		t.Errorf("Diagonal single cells expected to be filtered as noise. Got %v regions", len(regions))
	}
}

func TestTrace_Deterministic(t *testing.T) {
	mask := newMask(imgWidth, imgHeight)
	for y := 2; y < 8; y++ {
		for x := 1; x < 7; x++ {
			mask.Cells[y][x] = true
		}
	}

	first := TracePaths(mask, "#000000")
	second := TracePaths(mask, "#000000")

	if len(first) != len(second) {
		t.Fatalf("Path counts expected to be equal. Got %v and %v", len(first), len(second))
	}
	for i := range first {
		if first[i].D != second[i].D {
			t.Errorf("Tracing the same mask twice expected to yield identical output.\nFirst: %s\nSecond: %s",
				first[i].D, second[i].D)
		}
	}
}

func TestTrace_BlackSquareEndToEnd(t *testing.T) {
	// A 100x100 fully opaque black square traces into exactly one region of
	// 10000 cells and one path made of 100 full-width row strips.
	img := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.SetNRGBA(x, y, color.NRGBA{A: 0xff})
		}
	}

	mask := ToMask(img, DefaultThreshold)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if !mask.Cells[y][x] {
				t.Fatalf("Cell (%v,%v) expected to be foreground", x, y)
			}
		}
	}

	regions := FindRegions(mask)
	if len(regions) != 1 {
		t.Fatalf("Expected exactly 1 region. Got %v", len(regions))
	}
	if regions[0].Size() != 10000 {
		t.Errorf("Region size expected to be 10000. Got %v", regions[0].Size())
	}

	paths := TracePaths(mask, "#000000")
	if len(paths) != 1 {
		t.Fatalf("Expected exactly 1 path. Got %v", len(paths))
	}

	if n := strings.Count(paths[0].D, "M"); n != 100 {
		t.Errorf("Expected 100 row strips. Got %v", n)
	}
	if n := strings.Count(paths[0].D, "h100v1h-100z"); n != 100 {
		t.Errorf("Every row strip expected to span the full 100px width. Got %v full runs", n)
	}
}
