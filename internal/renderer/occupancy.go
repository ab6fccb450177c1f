package renderer

import (
	"image"
	"math/rand/v2"
)

// occupancy tracks which canvas pixels are taken, with a summed-area table
// so any box can be tested for overlap in constant time.
type occupancy struct {
	w, h     int
	taken    []uint8
	integral []uint32 // (w+1)*(h+1); integral[y*(w+1)+x] sums taken over [0,x)×[0,y)
}

// newOccupancy starts from the mask: pure white (255) pixels are excluded
func newOccupancy(w, h int, mask *image.Gray) *occupancy {
	o := &occupancy{
		w:        w,
		h:        h,
		taken:    make([]uint8, w*h),
		integral: make([]uint32, (w+1)*(h+1)),
	}
	if mask != nil {
		mb := mask.Bounds()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if mask.GrayAt(mb.Min.X+x, mb.Min.Y+y).Y == 255 {
					o.taken[y*w+x] = 1
				}
			}
		}
	}
	o.recompute(0)
	return o
}

// recompute rebuilds the summed-area table from row fromY downwards
func (o *occupancy) recompute(fromY int) {
	stride := o.w + 1
	for y := fromY; y < o.h; y++ {
		var rowSum uint32
		for x := 0; x < o.w; x++ {
			rowSum += uint32(o.taken[y*o.w+x])
			o.integral[(y+1)*stride+x+1] = o.integral[y*stride+x+1] + rowSum
		}
	}
}

func (o *occupancy) area(x, y, bw, bh int) uint32 {
	stride := o.w + 1
	return o.integral[(y+bh)*stride+x+bw] - o.integral[y*stride+x+bw] -
		o.integral[(y+bh)*stride+x] + o.integral[y*stride+x]
}

// sample picks a free bw×bh box uniformly among all free positions
func (o *occupancy) sample(bw, bh int, rng *rand.Rand) (image.Point, bool) {
	if bw > o.w || bh > o.h {
		return image.Point{}, false
	}

	hits := 0
	for y := 0; y <= o.h-bh; y++ {
		for x := 0; x <= o.w-bw; x++ {
			if o.area(x, y, bw, bh) == 0 {
				hits++
			}
		}
	}
	if hits == 0 {
		return image.Point{}, false
	}

	goal := rng.IntN(hits)
	for y := 0; y <= o.h-bh; y++ {
		for x := 0; x <= o.w-bw; x++ {
			if o.area(x, y, bw, bh) != 0 {
				continue
			}
			if goal == 0 {
				return image.Point{X: x, Y: y}, true
			}
			goal--
		}
	}
	return image.Point{}, false
}

// mark records the inked pixels of glyph drawn at the given position
func (o *occupancy) mark(glyph *image.Alpha, at image.Point) {
	gb := glyph.Bounds()
	for y := 0; y < gb.Dy(); y++ {
		cy := at.Y + y
		if cy < 0 || cy >= o.h {
			continue
		}
		for x := 0; x < gb.Dx(); x++ {
			cx := at.X + x
			if cx < 0 || cx >= o.w {
				continue
			}
			if glyph.AlphaAt(gb.Min.X+x, gb.Min.Y+y).A > 0 {
				o.taken[cy*o.w+cx] = 1
			}
		}
	}
	o.recompute(max(at.Y, 0))
}
