package deconv

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jvlmdr/go-cv/rimg64"
)

func epsEq(want, got, eps float64) bool {
	return math.Abs(want-got) <= eps
}

func imageDimsEq(want, got *rimg64.Multi) (bool, string) {
	if want.Width != got.Width || want.Height != got.Height {
		msg := fmt.Sprintf(
			"image sizes differ: want %dx%d, got %dx%d",
			want.Width, want.Height, got.Width, got.Height,
		)
		return false, msg
	}
	if want.Channels != got.Channels {
		msg := fmt.Sprintf("image channels differ: want %d, got %d", want.Channels, got.Channels)
		return false, msg
	}
	return true, ""
}

func imagesEq(want, got *rimg64.Multi, eps float64) (bool, string) {
	if eq, msg := imageDimsEq(want, got); !eq {
		return eq, msg
	}
	for i := 0; i < want.Width; i++ {
		for j := 0; j < want.Height; j++ {
			for k := 0; k < want.Channels; k++ {
				x := want.At(i, j, k)
				y := got.At(i, j, k)
				if !epsEq(x, y, eps) {
					msg := fmt.Sprintf("at (%d, %d, %d): want %.4g, got %.4g", i, j, k, x, y)
					return false, msg
				}
			}
		}
	}
	return true, ""
}

func randImage(width, height, channels int) *rimg64.Multi {
	f := rimg64.NewMulti(width, height, channels)
	for i := 0; i < width; i++ {
		for j := 0; j < height; j++ {
			for k := 0; k < channels; k++ {
				f.Set(i, j, k, rand.Float64())
			}
		}
	}
	return f
}

// gaussKernel returns a separable 3x3 blur whose transform stays well
// away from zero, so cyclic blurs by it are invertible.
func gaussKernel() *rimg64.Multi {
	w := []float64{0.15, 0.7, 0.15}
	k := rimg64.NewMulti(3, 3, 1)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			k.Set(i, j, 0, w[i]*w[j])
		}
	}
	return k
}

// cyclicBlur convolves an image with a centered kernel under wrap,
// matching the circular model assumed by the solvers.
func cyclicBlur(im, k *rimg64.Multi) *rimg64.Multi {
	cx, cy := k.Width/2, k.Height/2
	dst := rimg64.NewMulti(im.Width, im.Height, im.Channels)
	for c := 0; c < im.Channels; c++ {
		for j := 0; j < im.Height; j++ {
			for i := 0; i < im.Width; i++ {
				var acc float64
				for a := 0; a < k.Width; a++ {
					for b := 0; b < k.Height; b++ {
						x := mod(i-(a-cx), im.Width)
						y := mod(j-(b-cy), im.Height)
						acc += k.At(a, b, 0) * im.At(x, y, c)
					}
				}
				dst.Set(i, j, c, acc)
			}
		}
	}
	return dst
}

// bumpImage is a constant field with a narrow Gaussian bump at the
// center. Its boundary is flat, so boundary padding is consistent
// with the cyclic blur model to within rounding.
func bumpImage(width, height int) *rimg64.Multi {
	f := rimg64.NewMulti(width, height, 1)
	cx, cy := float64(width)/2, float64(height)/2
	const sigma = 2.0
	for i := 0; i < width; i++ {
		for j := 0; j < height; j++ {
			dx, dy := float64(i)-cx, float64(j)-cy
			f.Set(i, j, 0, 0.5+0.3*math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma)))
		}
	}
	return f
}

func relErr(want, got *rimg64.Multi) float64 {
	var num, den float64
	for i := 0; i < want.Width; i++ {
		for j := 0; j < want.Height; j++ {
			for k := 0; k < want.Channels; k++ {
				d := want.At(i, j, k) - got.At(i, j, k)
				num += d * d
				w := want.At(i, j, k)
				den += w * w
			}
		}
	}
	return math.Sqrt(num / den)
}
