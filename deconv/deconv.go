package deconv

import (
	"fmt"

	"github.com/jvlmdr/go-cv/rimg64"
	"github.com/jvlmdr/go-deblur/imstack"
)

// Apply runs the named deconvolution method against an image stack.
// The kernel is read from the top of the stack and the blurred image
// from the position below it; neither is modified. The single result
// image is pushed back onto the stack.
//
// Supported methods are "cho" and "shan".
func Apply(s *imstack.Stack, method string, opt *Options) error {
	kernel, err := s.Peek(0)
	if err != nil {
		return fmt.Errorf("deconvolution kernel: %v", err)
	}
	im, err := s.Peek(1)
	if err != nil {
		return fmt.Errorf("deconvolution image: %v", err)
	}

	var out *rimg64.Multi
	switch method {
	case "cho":
		out, err = Cho(im, kernel, opt)
	case "shan":
		out, err = Shan(im, kernel, opt)
	default:
		return fmt.Errorf(`unknown deconvolution method "%s" (want "cho" or "shan")`, method)
	}
	if err != nil {
		return err
	}
	s.Push(out)
	return nil
}
