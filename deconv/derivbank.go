package deconv

import (
	"math/cmplx"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

// The derivative filter bank: identity, first and second differences
// in x and y, and the cross difference. Each stencil carries the
// weight it contributes to the data term. Stencils are kept as
// coefficient tables so that each can be constructed and tested alone.

type tap struct {
	X, Y int
	Coef float64
}

type stencil struct {
	Weight float64
	Taps   []tap
}

var derivBank = [6]stencil{
	{50, []tap{{0, 0, 1}}},
	{25, []tap{{0, 0, -1}, {1, 0, 1}}},
	{12.5, []tap{{0, 0, 1}, {1, 0, -2}, {2, 0, 1}}},
	{25, []tap{{0, 0, -1}, {0, 1, 1}}},
	{12.5, []tap{{0, 0, 1}, {0, 1, -2}, {0, 2, 1}}},
	{12.5, []tap{{0, 0, 1}, {1, 0, -1}, {0, 1, -1}, {1, 1, 1}}},
}

// Indices into derivBank.
const (
	bankIdent = iota
	bankDx
	bankDxx
	bankDy
	bankDyy
	bankDxy
)

// dftStencil places the taps of a stencil on an m x n canvas and takes
// the forward transform. Taps sit at their literal offsets from the
// origin, wrapped.
func dftStencil(s stencil, m, n int) *fftw.Array2 {
	dst := fftw.NewArray2(m, n)
	for _, t := range s.Taps {
		dst.Set(mod(t.X, m), mod(t.Y, n), complex(t.Coef, 0))
	}
	fftw.FFT2To(dst, dst)
	return dst
}

// freqOps holds the frequency-domain operators shared by both solvers.
// All arrays have the working canvas dimensions and are computed
// exactly once per solve, then read only.
type freqOps struct {
	m, n    int
	kernel  *fftw.Array2    // F(K)
	kernel2 []float64       // |F(K)|^2, row-major u*n+v
	deriv   [6]*fftw.Array2 // F(deriv_i)
	deriv2  [6][]float64    // |F(deriv_i)|^2
}

func newFreqOps(kernel *rimg64.Multi, m, n int) *freqOps {
	ops := &freqOps{m: m, n: n}
	ops.kernel = dftKernel(kernel, m, n)
	ops.kernel2 = make([]float64, m*n)
	for u := 0; u < m; u++ {
		for v := 0; v < n; v++ {
			ops.kernel2[u*n+v] = abs2(ops.kernel.At(u, v))
		}
	}
	for i, s := range derivBank {
		ops.deriv[i] = dftStencil(s, m, n)
		ops.deriv2[i] = make([]float64, m*n)
		for u := 0; u < m; u++ {
			for v := 0; v < n; v++ {
				ops.deriv2[i][u*n+v] = abs2(ops.deriv[i].At(u, v))
			}
		}
	}
	return ops
}

// sumWeightedDeriv2 returns sum_i w_i |F(deriv_i)|^2.
func (ops *freqOps) sumWeightedDeriv2() []float64 {
	sum := make([]float64, ops.m*ops.n)
	for i, s := range derivBank {
		for p, d2 := range ops.deriv2[i] {
			sum[p] += s.Weight * d2
		}
	}
	return sum
}

// gradAbs2 returns |F(dx)|^2 + |F(dy)|^2.
func (ops *freqOps) gradAbs2() []float64 {
	sum := make([]float64, ops.m*ops.n)
	for p := range sum {
		sum[p] = ops.deriv2[bankDx][p] + ops.deriv2[bankDy][p]
	}
	return sum
}

// operatorSums returns the terms of the frequency-domain solve which
// do not depend on the latent image or on the continuation weights:
//
//	denom(u, v) = sum_i w_i |F(K)|^2 |F(deriv_i)|^2
//	numer(u, v) = sum_i w_i conj(F(K)) |F(deriv_i)|^2 F(B)
//
// where bdft is the transform of the observed (padded) image.
func (ops *freqOps) operatorSums(bdft *fftw.Array2) (denom []float64, numer *fftw.Array2) {
	sum := ops.sumWeightedDeriv2()
	denom = make([]float64, ops.m*ops.n)
	numer = fftw.NewArray2(ops.m, ops.n)
	for u := 0; u < ops.m; u++ {
		for v := 0; v < ops.n; v++ {
			p := u*ops.n + v
			denom[p] = ops.kernel2[p] * sum[p]
			numer.Set(u, v, cmplx.Conj(ops.kernel.At(u, v))*complex(sum[p], 0)*bdft.At(u, v))
		}
	}
	return denom, numer
}
