//go:build !nofftw

package deconv

// checkDFT reports whether the Fourier transform collaborator was
// linked into this build.
func checkDFT() error {
	return nil
}
