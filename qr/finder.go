// Package qr implements the QR version-1 decode pipeline: finder-pattern
// localization, homography-based grid sampling, format-information
// recovery, mask removal, zig-zag data extraction, and Byte-mode parsing.
// There is no decode-side teacher counterpart in nayuki/qrcodegen (an
// encoder only); the finder/sample geometry is grounded on the point
// classification and homography solver in original_source's
// src/qr/finder.rs and src/qr/sample.rs, reimplemented in the teacher's
// small-free-function style rather than translated line for line.
package qr

import (
	"github.com/mlidesign/barcodescan/binarize"
	"github.com/mlidesign/barcodescan/core"
)

// Point is a subpixel image-space coordinate.
type Point struct {
	X, Y float64
}

// FinderCenter is a candidate finder-pattern center with its cluster
// support count.
type FinderCenter struct {
	Point
	Support int
}

const finderRatioTolerance = 1.6

// finderRatioError scores how closely five consecutive run widths match
// the canonical 1:1:3:1:1 finder signature (lower is better); a window
// whose widths sum to zero scores mathInf.
func finderRatioError(w [5]int) float64 {
	sum := 0
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return mathInf
	}
	unit := float64(sum) / 7.0
	ideal := [5]float64{1, 1, 3, 1, 1}
	errSum := 0.0
	for i, v := range w {
		errSum += abs(float64(v)/unit - ideal[i])
	}
	return errSum
}

const mathInf = 1e18

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// runStartOffsets returns the pixel offset of the start of each run.
func runStartOffsets(lengths []int) []int {
	offsets := make([]int, len(lengths))
	acc := 0
	for i, l := range lengths {
		offsets[i] = acc
		acc += l
	}
	return offsets
}

// findOnLine locates finder candidates along a single scanline of pixels,
// returning each candidate's offset along the line.
func findOnLine(row []byte) []float64 {
	runs := binarize.ToRuns(binarize.Adaptive(row))
	if len(runs.Lengths) < 5 {
		runs = binarize.ToRuns(binarize.Global(row))
	}
	if len(runs.Lengths) < 5 {
		return nil
	}
	offsets := runStartOffsets(runs.Lengths)
	var centers []float64
	for i := 0; i+5 <= len(runs.Lengths); i++ {
		dark := runs.StartDark
		if i%2 == 1 {
			dark = !runs.StartDark
		}
		if !dark {
			continue
		}
		var w [5]int
		copy(w[:], runs.Lengths[i:i+5])
		if finderRatioError(w) <= finderRatioTolerance {
			center := float64(offsets[i]) + float64(w[0]+w[1]) + float64(w[2])/2
			centers = append(centers, center)
		}
	}
	return centers
}

// cluster is an incremental-centroid accumulator.
type cluster struct {
	sumX, sumY float64
	count      int
}

func (c *cluster) centroid() Point {
	return Point{X: c.sumX / float64(c.count), Y: c.sumY / float64(c.count)}
}

// FindFinderPatterns scans scanLines horizontal and vertical lines across
// img, clusters 1:1:3:1:1 candidates, and returns the three
// highest-population clusters. Returns fewer than 3 if not enough distinct
// clusters were found.
func FindFinderPatterns(img core.Image, scanLines int) []FinderCenter {
	if img.Empty() || scanLines < 1 {
		return nil
	}
	var clusters []*cluster
	joinRadius := 0.05 * float64(minInt(img.Width, img.Height))

	addCandidate := func(x, y float64) {
		for _, c := range clusters {
			cx, cy := c.sumX/float64(c.count), c.sumY/float64(c.count)
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= joinRadius*joinRadius {
				c.sumX += x
				c.sumY += y
				c.count++
				return
			}
		}
		clusters = append(clusters, &cluster{sumX: x, sumY: y, count: 1})
	}

	for i := 0; i < scanLines; i++ {
		y := (i + 1) * img.Height / (scanLines + 1)
		if y < 0 || y >= img.Height {
			continue
		}
		for _, x := range findOnLine(img.Row(y)) {
			addCandidate(x, float64(y))
		}
	}
	for i := 0; i < scanLines; i++ {
		x := (i + 1) * img.Width / (scanLines + 1)
		if x < 0 || x >= img.Width {
			continue
		}
		col := make([]byte, img.Height)
		for y := 0; y < img.Height; y++ {
			col[y] = img.At(x, y)
		}
		for _, y := range findOnLine(col) {
			addCandidate(float64(x), y)
		}
	}

	// Sort clusters by population descending (simple selection, small N).
	for i := 0; i < len(clusters); i++ {
		best := i
		for j := i + 1; j < len(clusters); j++ {
			if clusters[j].count > clusters[best].count {
				best = j
			}
		}
		clusters[i], clusters[best] = clusters[best], clusters[i]
	}
	if len(clusters) > 3 {
		clusters = clusters[:3]
	}

	out := make([]FinderCenter, len(clusters))
	for i, c := range clusters {
		out[i] = FinderCenter{Point: c.centroid(), Support: c.count}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// sub/dot are small vector helpers for corner classification.
func sub(a, b Point) Point { return Point{X: a.X - b.X, Y: a.Y - b.Y} }
func dot(a, b Point) float64 { return a.X*b.X + a.Y*b.Y }

// ClassifyTLTRBL orders three finder centers into (TL, TR, BL): the vertex
// with the smallest |dot product| between its two edges is the near-90°
// corner (TL); the remaining two are split by the sign of the cross product
// (a-TL)x(b-TL): with image y growing downward, a positive sign makes a TR.
func ClassifyTLTRBL(pts []FinderCenter) (tl, tr, bl Point, ok bool) {
	if len(pts) != 3 {
		return Point{}, Point{}, Point{}, false
	}
	p0, p1, p2 := pts[0].Point, pts[1].Point, pts[2].Point

	d0 := abs(dot(sub(p1, p0), sub(p2, p0)))
	d1 := abs(dot(sub(p0, p1), sub(p2, p1)))
	d2 := abs(dot(sub(p0, p2), sub(p1, p2)))

	var a, b Point
	switch {
	case d0 <= d1 && d0 <= d2:
		tl, a, b = p0, p1, p2
	case d1 <= d0 && d1 <= d2:
		tl, a, b = p1, p0, p2
	default:
		tl, a, b = p2, p0, p1
	}
	if (a.X-tl.X)*(b.Y-tl.Y)-(a.Y-tl.Y)*(b.X-tl.X) > 0 {
		tr, bl = a, b
	} else {
		tr, bl = b, a
	}
	return tl, tr, bl, true
}
