package deconv

import (
	"math/cmplx"
	"path/filepath"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

// Weight of the gradient smoothness term of the closed-form solver.
const choAlpha = 1.0

// Cho deconvolves an image with a blur kernel using the closed-form
// estimator of Cho and Lee, "Fast Motion Deblurring" (SIGGRAPH Asia
// 2009). The kernel must have odd dimensions and a single channel.
// The result has the same size and channel count as the input.
//
// The per-frequency solution is
//
//	F(L) = conj(F(K)) F(B) sum_i w_i |F(deriv_i)|^2
//	       / (|F(K)|^2 sum_i w_i |F(deriv_i)|^2 + alpha (|F(dx)|^2 + |F(dy)|^2))
//
// with the kernel term broadcast across channels.
func Cho(im, kernel *rimg64.Multi, opt *Options) (*rimg64.Multi, error) {
	if err := checkDFT(); err != nil {
		return nil, err
	}
	if err := errIfBadKernel(kernel); err != nil {
		return nil, err
	}
	opt = opt.orDefault()

	big := padBoundary(im)
	if opt.Checkpoint {
		saveRaster(filepath.Join(opt.CheckpointDir, "padded.tmp"), big)
	}
	m, n := big.Width, big.Height
	ops := newFreqOps(kernel, m, n)
	sumDeriv := ops.sumWeightedDeriv2()
	sumGrad := ops.gradAbs2()

	// The kernel side of the solution does not depend on the channel.
	transfer := fftw.NewArray2(m, n)
	for u := 0; u < m; u++ {
		for v := 0; v < n; v++ {
			p := u*n + v
			numer := cmplx.Conj(ops.kernel.At(u, v)) * complex(sumDeriv[p], 0)
			denom := complex(ops.kernel2[p]*sumDeriv[p]+choAlpha*sumGrad[p], 0)
			transfer.Set(u, v, numer/denom)
		}
	}

	out := rimg64.NewMulti(m, n, im.Channels)
	for q := 0; q < im.Channels; q++ {
		fb := dftChannel(big, q, m, n)
		mul(fb, fb, transfer)
		idftToChannel(out, q, fb)
	}
	px, py, _ := padMargins(im.Width, im.Height)
	return cropMulti(out, px-px/2, py-py/2, im.Width, im.Height), nil
}
