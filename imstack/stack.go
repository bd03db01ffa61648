// Package imstack provides the ordered stack of images shared by
// image operations. Operations read their inputs from the top of the
// stack and push their results back; they never modify stack entries
// in place.
package imstack

import (
	"fmt"

	"github.com/jvlmdr/go-cv/rimg64"
)

type Stack struct {
	ims []*rimg64.Multi
}

func (s *Stack) Len() int {
	return len(s.ims)
}

// Push places an image on top of the stack.
func (s *Stack) Push(im *rimg64.Multi) {
	s.ims = append(s.ims, im)
}

// Pop removes and returns the image on top of the stack.
func (s *Stack) Pop() (*rimg64.Multi, error) {
	if len(s.ims) == 0 {
		return nil, fmt.Errorf("pop from empty image stack")
	}
	im := s.ims[len(s.ims)-1]
	s.ims = s.ims[:len(s.ims)-1]
	return im, nil
}

// Peek returns the image at depth i without removing it.
// Depth 0 is the top of the stack.
func (s *Stack) Peek(i int) (*rimg64.Multi, error) {
	if i < 0 || i >= len(s.ims) {
		return nil, fmt.Errorf("no image at stack depth %d (stack has %d)", i, len(s.ims))
	}
	return s.ims[len(s.ims)-1-i], nil
}
