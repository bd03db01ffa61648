package deconv

import (
	"math"

	"github.com/jvlmdr/go-cv/rimg64"
)

// Boundary extension for frequency-domain deconvolution, after
// "Reducing Boundary Artifacts in Image Deconvolution" by Liu and Jia
// (ICIP 2008). The observed image is placed on an enlarged canvas and
// the margins are synthesized so that circular convolution does not
// wrap visible content across the true boundary.

// padMargins returns the (full) margin allocated on each side of the
// source, and the seam width alpha.
func padMargins(w, h int) (px, py, alpha int) {
	alpha = 1
	if w/3 < alpha {
		alpha = w / 3
	}
	if h/3 < alpha {
		alpha = h / 3
	}
	px, py = w/2, h/2
	if px < 3*alpha {
		px = 3 * alpha
	}
	if py < 3*alpha {
		py = 3 * alpha
	}
	return px, py, alpha
}

// padBoundary returns the working canvas for an observed image.
// A margin of px x py is allocated on every side and filled, then the
// canvas is trimmed to half the allocated margin, giving a final size
// of (w + px, h + py). Interior samples are copied, never modified.
func padBoundary(im *rimg64.Multi) *rimg64.Multi {
	w, h, nc := im.Width, im.Height, im.Channels
	px, py, alpha := padMargins(w, h)
	big := rimg64.NewMulti(w+2*px, h+2*py, nc)
	for k := 0; k < nc; k++ {
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				big.Set(px+i, py+j, k, im.At(i, j, k))
			}
		}
	}
	if alpha > 0 {
		// Fill the top margin over the source columns, duplicate it to
		// the bottom, then fill the side margins over the full height.
		fillRows(big, w, h, px, py, alpha)
		fillCols(big, w, h, px, py, alpha)
	}
	return cropMulti(big, px/2, py/2, w+px, h+py)
}

// fillRows synthesizes the top margin for columns [px, px+w) and
// copies the finished top block to the bottom margin. Rows [0, alpha)
// receive the far edge of the source (wrap continuity) and rows
// [py-alpha, py) the near edge; the strip between them is blended
// toward the near edge and low-passed.
func fillRows(big *rimg64.Multi, w, h, px, py, alpha int) {
	for k := 0; k < big.Channels; k++ {
		for y := 0; y < alpha; y++ {
			for x := px; x < px+w; x++ {
				big.Set(x, y, k, big.At(x, y-alpha+h+py, k))
				big.Set(x, py-alpha+y, k, big.At(x, y+py, k))
			}
		}
		for y := alpha; y < py-alpha; y++ {
			weight := 1 / float64(py-alpha-(y-1))
			for x := px; x < px+w; x++ {
				v := big.At(x, y-1, k)*(1-weight) + big.At(x, py-alpha, k)*weight
				big.Set(x, y, k, v)
			}
			blurRow(big, y, k, px, px+w, py)
		}
		for y := 0; y < py; y++ {
			for x := px; x < px+w; x++ {
				big.Set(x, y+h+py, k, big.At(x, y, k))
			}
		}
	}
}

// fillCols is the column counterpart of fillRows, run over the full
// height of the already row-padded buffer.
func fillCols(big *rimg64.Multi, w, h, px, py, alpha int) {
	full := h + 2*py
	for k := 0; k < big.Channels; k++ {
		for x := 0; x < alpha; x++ {
			for y := 0; y < full; y++ {
				big.Set(x, y, k, big.At(w+px-alpha+x, y, k))
				big.Set(px-alpha+x, y, k, big.At(px+x, y, k))
			}
		}
		for x := alpha; x < px-alpha; x++ {
			weight := 1 / float64(px-alpha-(x-1))
			for y := 0; y < full; y++ {
				v := big.At(x-1, y, k)*(1-weight) + big.At(px-alpha, y, k)*weight
				big.Set(x, y, k, v)
			}
			blurCol(big, x, k, 0, full, px)
		}
		for x := 0; x < px; x++ {
			for y := 0; y < full; y++ {
				big.Set(w+px+x, y, k, big.At(x, y, k))
			}
		}
	}
}

// seamWing is the weight of each neighbor in the three-tap low pass
// applied to synthesized margin lines. The blend strengthens toward
// the center of the margin.
func seamWing(i, pad int) float64 {
	half := float64(pad) * 0.5
	return 0.1 + 0.2*(1-math.Abs(half-float64(i))/half)
}

// blurRow low-passes row y in place along x over [x0, x1).
// Each sample is blended with its pre-blur neighbors.
func blurRow(big *rimg64.Multi, y, k, x0, x1, pad int) {
	wing := seamWing(y, pad)
	center := 1 - 2*wing
	prev := big.At(x0, y, k)
	for x := x0; x < x1-1; x++ {
		cur := big.At(x, y, k)
		big.Set(x, y, k, prev*wing+big.At(x+1, y, k)*wing+cur*center)
		prev = cur
	}
}

// blurCol low-passes column x in place along y over [y0, y1).
func blurCol(big *rimg64.Multi, x, k, y0, y1, pad int) {
	wing := seamWing(x, pad)
	center := 1 - 2*wing
	prev := big.At(x, y0, k)
	for y := y0; y < y1-1; y++ {
		cur := big.At(x, y, k)
		big.Set(x, y, k, prev*wing+big.At(x, y+1, k)*wing+cur*center)
		prev = cur
	}
}

// cropMulti copies the w x h window of src with top-left corner (x, y).
func cropMulti(src *rimg64.Multi, x, y, w, h int) *rimg64.Multi {
	dst := rimg64.NewMulti(w, h, src.Channels)
	for k := 0; k < src.Channels; k++ {
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				dst.Set(i, j, k, src.At(x+i, y+j, k))
			}
		}
	}
	return dst
}
