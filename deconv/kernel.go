package deconv

import (
	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

// spreadKernel copies a small kernel into an m x n array with its
// center at index (0, 0), wrapping negative offsets around the far
// edges. This is the origin convention expected by the transform.
func spreadKernel(k *rimg64.Multi, m, n int) *fftw.Array2 {
	dst := fftw.NewArray2(m, n)
	cx, cy := k.Width/2, k.Height/2
	for i := 0; i < k.Width; i++ {
		for j := 0; j < k.Height; j++ {
			u := mod(i-cx, m)
			v := mod(j-cy, n)
			dst.Set(u, v, complex(k.At(i, j, 0), 0))
		}
	}
	return dst
}

// dftKernel enlarges the kernel to the working canvas and takes its
// forward transform.
func dftKernel(k *rimg64.Multi, m, n int) *fftw.Array2 {
	dst := spreadKernel(k, m, n)
	fftw.FFT2To(dst, dst)
	return dst
}
