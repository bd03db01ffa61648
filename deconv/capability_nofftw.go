//go:build nofftw

package deconv

import "errors"

// Builds tagged nofftw declare that FFTW is unavailable.
// Both solvers fail at first use rather than at an arbitrary point
// inside the transform.
func checkDFT() error {
	return errors.New("deconvolution requires FFTW; rebuild without the nofftw tag")
}
