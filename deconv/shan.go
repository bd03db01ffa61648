package deconv

import (
	"fmt"
	"log"
	"math/cmplx"
	"path/filepath"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-fftw/fftw"
)

// Continuation schedule for the regularization weights of the
// iterative solver. advance is called once after every round.
type schedule struct {
	Lambda1, Lambda2, Gamma float64
}

func newSchedule() schedule {
	return schedule{Lambda1: 0.1, Lambda2: 15.0, Gamma: 2.0}
}

func (s *schedule) advance() {
	s.Lambda1 /= 1.2
	s.Lambda2 /= 1.5
	s.Gamma *= 2
}

// Shan deconvolves an image with a blur kernel using the alternating
// minimization of Shan, Jia and Agarwala, "High-quality Motion
// Deblurring from a Single Image" (SIGGRAPH 2008). The kernel must
// have odd dimensions and a single channel; the image must have one or
// three channels. Three-channel input is reduced to luma and only luma
// is deconvolved, so the result is always single-channel, at the
// spatial size of the input.
//
// The objective couples the data term of the closed-form solver with
// auxiliary gradient fields Psi under a sparse penalty:
//
//	sum_i w_i |F(K) F(deriv_i) F(L) - F(deriv_i) F(B)|^2
//	+ gamma (|Psi_x - dx L|^2 + |Psi_y - dy L|^2)
//	+ lambda2 mask (|Psi_x - dx B|^2 + |Psi_y - dy B|^2)
//	+ lambda1 Phi(Psi_x, Psi_y)
//
// Each round minimizes over Psi per pixel in the spatial domain, then
// over L per frequency, with the weights tightened between rounds.
func Shan(im, kernel *rimg64.Multi, opt *Options) (*rimg64.Multi, error) {
	if err := checkDFT(); err != nil {
		return nil, err
	}
	if err := errIfBadKernel(kernel); err != nil {
		return nil, err
	}
	gray := im
	switch im.Channels {
	case 1:
	case 3:
		gray = luma(im)
	default:
		return nil, &PreconditionError{Constraint: "blurred image must have 1 or 3 channels"}
	}
	opt = opt.orDefault()

	big := padBoundary(gray)
	m, n := big.Width, big.Height
	px, py, _ := padMargins(im.Width, im.Height)
	offX, offY := px-px/2, py-py/2
	mask := smoothnessMap(gray, kernel.Width, kernel.Height, m, n, offX, offY)

	ops := newFreqOps(kernel, m, n)
	bdft := dftChannel(big, 0, m, n)
	denomBase, numerBase := ops.operatorSums(bdft)

	dIdx := diffX(big)
	dIdy := diffY(big)
	// The latent image before the first round is the zero canvas.
	L := rimg64.NewMulti(m, n, 1)
	psiX := rimg64.NewMulti(m, n, 1)
	psiY := rimg64.NewMulti(m, n, 1)
	params := newPsiParams()
	sched := newSchedule()

	for round := 1; round <= opt.Rounds; round++ {
		log.Printf("iteration %d of %d", round, opt.Rounds)
		params.Lambda1 = sched.Lambda1
		params.Lambda2 = sched.Lambda2
		params.Gamma = sched.Gamma

		// Minimize over Psi. Every pixel reads only the previous
		// round's latent image.
		dLdx := diffX(L)
		dLdy := diffY(L)
		for j := 0; j < n; j++ {
			for i := 0; i < m; i++ {
				w := mask.At(i, j, 0)
				psiX.Set(i, j, 0, params.solve(dLdx.At(i, j, 0), dIdx.At(i, j, 0), w))
				psiY.Set(i, j, 0, params.solve(dLdy.At(i, j, 0), dIdy.At(i, j, 0), w))
			}
		}

		// Minimize over L per frequency: F(L) = N / D with
		//   D = denomBase + gamma (|F(dx)|^2 + |F(dy)|^2)
		//   N = numerBase + gamma Re(conj(F(dx)) F(Psi_x) + conj(F(dy)) F(Psi_y))
		fpx := dftChannel(psiX, 0, m, n)
		fpy := dftChannel(psiY, 0, m, n)
		ratio := fftw.NewArray2(m, n)
		for u := 0; u < m; u++ {
			for v := 0; v < n; v++ {
				p := u*n + v
				dx, dy := ops.deriv[bankDx].At(u, v), ops.deriv[bankDy].At(u, v)
				den := denomBase[p] + sched.Gamma*(ops.deriv2[bankDx][p]+ops.deriv2[bankDy][p])
				cross := real(cmplx.Conj(dx)*fpx.At(u, v)) + real(cmplx.Conj(dy)*fpy.At(u, v))
				num := numerBase.At(u, v) + complex(sched.Gamma*cross, 0)
				ratio.Set(u, v, num/complex(den, 0))
			}
		}
		idftToChannel(L, 0, ratio)

		if opt.Checkpoint {
			name := fmt.Sprintf("output%02d.tmp", round)
			saveRaster(filepath.Join(opt.CheckpointDir, name), L)
		}
		sched.advance()
	}
	return cropMulti(L, offX, offY, im.Width, im.Height), nil
}

// diffX is the forward difference L(x+1, y) - L(x, y) with wrap.
func diffX(im *rimg64.Multi) *rimg64.Multi {
	dst := rimg64.NewMulti(im.Width, im.Height, im.Channels)
	for k := 0; k < im.Channels; k++ {
		for j := 0; j < im.Height; j++ {
			for i := 0; i < im.Width; i++ {
				dst.Set(i, j, k, im.At(mod(i+1, im.Width), j, k)-im.At(i, j, k))
			}
		}
	}
	return dst
}

// diffY is the forward difference L(x, y+1) - L(x, y) with wrap.
func diffY(im *rimg64.Multi) *rimg64.Multi {
	dst := rimg64.NewMulti(im.Width, im.Height, im.Channels)
	for k := 0; k < im.Channels; k++ {
		for j := 0; j < im.Height; j++ {
			for i := 0; i < im.Width; i++ {
				dst.Set(i, j, k, im.At(i, mod(j+1, im.Height), k)-im.At(i, j, k))
			}
		}
	}
	return dst
}
