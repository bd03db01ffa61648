package deconv

import "github.com/jvlmdr/go-cv/rimg64"

// PreconditionError reports an input whose shape violates the
// documented contract of a solver. It is returned before any numeric
// work or checkpoint write takes place.
type PreconditionError struct {
	Constraint string
}

func (e *PreconditionError) Error() string {
	return "precondition violated: " + e.Constraint
}

func errIfBadKernel(k *rimg64.Multi) error {
	if k.Width%2 == 0 || k.Height%2 == 0 {
		return &PreconditionError{Constraint: "kernel dimensions must be odd"}
	}
	if k.Channels != 1 {
		return &PreconditionError{Constraint: "kernel must be single-channel"}
	}
	return nil
}
