package qr

import "github.com/mlidesign/barcodescan/core"

// Grid21 is a sampled 21x21 QR v1 module grid, row-major, true = dark.
type Grid21 [441]bool

func (g *Grid21) at(x, y int) bool  { return g[y*21+x] }
func (g *Grid21) set(x, y int, v bool) { g[y*21+x] = v }

// homography is a 3x3 projective map, applied as [X,Y,1]^T ~ H*[x,y,1]^T.
type homography [3][3]float64

// homographyFrom4 solves for the 8 free homography coefficients (h22 fixed
// at 1) mapping four source points to four destination points, via Gaussian
// elimination on an 8x8 linear system. Grounded on
// original_source/src/qr/sample.rs's homography_from_4 / solve_8x8.
func homographyFrom4(src, dst [4]Point) (homography, bool) {
	var a [8][8]float64
	var b [8]float64
	for k := 0; k < 4; k++ {
		x, y := src[k].X, src[k].Y
		xd, yd := dst[k].X, dst[k].Y

		a[2*k][0], a[2*k][1], a[2*k][2] = x, y, 1
		a[2*k][6], a[2*k][7] = -x*xd, -y*xd
		b[2*k] = xd

		a[2*k+1][3], a[2*k+1][4], a[2*k+1][5] = x, y, 1
		a[2*k+1][6], a[2*k+1][7] = -x*yd, -y*yd
		b[2*k+1] = yd
	}

	h, ok := solve8x8(a, b)
	if !ok {
		return homography{}, false
	}
	return homography{
		{h[0], h[1], h[2]},
		{h[3], h[4], h[5]},
		{h[6], h[7], 1},
	}, true
}

func solve8x8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for i := 0; i < 8; i++ {
		piv := i
		max := abs(a[i][i])
		for r := i + 1; r < 8; r++ {
			if v := abs(a[r][i]); v > max {
				max = v
				piv = r
			}
		}
		if max < 1e-8 {
			return [8]float64{}, false
		}
		if piv != i {
			a[i], a[piv] = a[piv], a[i]
			b[i], b[piv] = b[piv], b[i]
		}
		diag := a[i][i]
		for j := i; j < 8; j++ {
			a[i][j] /= diag
		}
		b[i] /= diag
		for r := i + 1; r < 8; r++ {
			factor := a[r][i]
			if factor == 0 {
				continue
			}
			for j := i; j < 8; j++ {
				a[r][j] -= factor * a[i][j]
			}
			b[r] -= factor * b[i]
		}
	}
	var x [8]float64
	for i := 7; i >= 0; i-- {
		s := b[i]
		for j := i + 1; j < 8; j++ {
			s -= a[i][j] * x[j]
		}
		x[i] = s
	}
	return x, true
}

func (h homography) project(x, y float64) (float64, float64) {
	nx := h[0][0]*x + h[0][1]*y + h[0][2]
	ny := h[1][0]*x + h[1][1]*y + h[1][2]
	d := h[2][0]*x + h[2][1]*y + h[2][2]
	if abs(d) < 1e-9 {
		return nx, ny
	}
	return nx / d, ny / d
}

const gridSize = 21

// supersampleOffsets are the 3x3 sub-module sampling offsets (in module
// units), per spec.md section 4.5.
var supersampleOffsets = [3]float64{-0.18, 0, 0.18}

// SampleGrid builds a Grid21 by solving a homography from the three finder
// centers (reconstructing the fourth, bottom-right corner as a
// parallelogram) and 3x3-supersampling each module center with bilinear
// interpolation. Binarization uses the mean luminance of all 441 sampled
// centers as threshold. Returns InvalidFormat if any sample falls outside
// the image.
func SampleGrid(img core.Image, tl, tr, bl Point) (Grid21, error) {
	br := Point{X: tr.X + bl.X - tl.X, Y: tr.Y + bl.Y - tl.Y}

	const n = gridSize
	src := [4]Point{{3.5, 3.5}, {n - 3.5, 3.5}, {3.5, n - 3.5}, {n - 3.5, n - 3.5}}
	dst := [4]Point{tl, tr, bl, br}

	h, ok := homographyFrom4(src, dst)
	if !ok {
		return Grid21{}, core.ErrInvalidFormat
	}

	var luminance [gridSize * gridSize]float64
	idx := 0
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			var sum float64
			var count int
			for _, oy := range supersampleOffsets {
				for _, ox := range supersampleOffsets {
					sx := float64(x) + 0.5 + ox
					sy := float64(y) + 0.5 + oy
					ix, iy := h.project(sx, sy)
					if ix < 0 || iy < 0 || ix > float64(img.Width-1) || iy > float64(img.Height-1) {
						return Grid21{}, core.ErrInvalidFormat
					}
					sum += img.BilinearAt(ix, iy)
					count++
				}
			}
			luminance[idx] = sum / float64(count)
			idx++
		}
	}

	var total float64
	for _, v := range luminance {
		total += v
	}
	threshold := total / float64(len(luminance))

	var grid Grid21
	idx = 0
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			grid.set(x, y, luminance[idx] < threshold)
			idx++
		}
	}
	return grid, nil
}
