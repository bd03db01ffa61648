package deconv

import (
	"github.com/gonum/floats"
	"github.com/jvlmdr/go-cv/rimg64"
)

// The smoothness map marks pixels whose neighborhood carries almost no
// texture. The local variance of the observed image is estimated with
// a kernel-sized box filter and thresholded; the map is 1 where the
// variance falls below varThreshold and 0 elsewhere.
const varThreshold = 25.0 / (256.0 * 256.0)

// smoothnessMap computes the mask on the observed (luma) image and
// places it on the m x n working canvas at offset (offX, offY).
// Canvas samples outside the observed extent are 0, which disables the
// masked data term over synthesized margin content.
func smoothnessMap(gray *rimg64.Multi, kw, kh, m, n, offX, offY int) *rimg64.Multi {
	mean := boxClampY(boxClampX(gray, kw), kh)
	sq := rimg64.NewMulti(gray.Width, gray.Height, gray.Channels)
	floats.MulTo(sq.Elems, gray.Elems, gray.Elems)
	meanSq := boxClampY(boxClampX(sq, kw), kh)
	// Variance = E[x^2] - E[x]^2.
	floats.Mul(mean.Elems, mean.Elems)
	floats.Sub(meanSq.Elems, mean.Elems)

	mask := rimg64.NewMulti(m, n, 1)
	for j := 0; j < gray.Height; j++ {
		for i := 0; i < gray.Width; i++ {
			x, y := offX+i, offY+j
			if x < 0 || x >= m || y < 0 || y >= n {
				continue
			}
			if meanSq.At(i, j, 0) < varThreshold {
				mask.Set(x, y, 0, 1)
			}
		}
	}
	return mask
}

// boxClampX convolves each row with a length-size box filter,
// clamping reads at the image boundary.
func boxClampX(im *rimg64.Multi, size int) *rimg64.Multi {
	dst := rimg64.NewMulti(im.Width, im.Height, im.Channels)
	c := size / 2
	coef := 1 / float64(size)
	for k := 0; k < im.Channels; k++ {
		for j := 0; j < im.Height; j++ {
			for i := 0; i < im.Width; i++ {
				var acc float64
				for t := 0; t < size; t++ {
					acc += im.At(clamp(i+t-c, 0, im.Width-1), j, k)
				}
				dst.Set(i, j, k, acc*coef)
			}
		}
	}
	return dst
}

// boxClampY convolves each column with a length-size box filter,
// clamping reads at the image boundary.
func boxClampY(im *rimg64.Multi, size int) *rimg64.Multi {
	dst := rimg64.NewMulti(im.Width, im.Height, im.Channels)
	c := size / 2
	coef := 1 / float64(size)
	for k := 0; k < im.Channels; k++ {
		for j := 0; j < im.Height; j++ {
			for i := 0; i < im.Width; i++ {
				var acc float64
				for t := 0; t < size; t++ {
					acc += im.At(i, clamp(j+t-c, 0, im.Height-1), k)
				}
				dst.Set(i, j, k, acc*coef)
			}
		}
	}
	return dst
}
