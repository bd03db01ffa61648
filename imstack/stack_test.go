package imstack

import (
	"testing"

	"github.com/jvlmdr/go-cv/rimg64"
)

func TestStack_order(t *testing.T) {
	var s Stack
	a := rimg64.NewMulti(4, 3, 1)
	b := rimg64.NewMulti(5, 2, 3)
	s.Push(a)
	s.Push(b)

	if n := s.Len(); n != 2 {
		t.Fatalf("length: want %d, got %d", 2, n)
	}
	if im, err := s.Peek(0); err != nil || im != b {
		t.Errorf("peek 0: want top image, got %v (err %v)", im, err)
	}
	if im, err := s.Peek(1); err != nil || im != a {
		t.Errorf("peek 1: want bottom image, got %v (err %v)", im, err)
	}

	im, err := s.Pop()
	if err != nil {
		t.Fatal(err)
	}
	if im != b {
		t.Errorf("pop: want most recent image")
	}
	if n := s.Len(); n != 1 {
		t.Errorf("length after pop: want %d, got %d", 1, n)
	}
}

func TestStack_empty(t *testing.T) {
	var s Stack
	if _, err := s.Pop(); err == nil {
		t.Error("pop on empty stack: want error")
	}
	if _, err := s.Peek(0); err == nil {
		t.Error("peek on empty stack: want error")
	}
	s.Push(rimg64.NewMulti(1, 1, 1))
	if _, err := s.Peek(1); err == nil {
		t.Error("peek beyond depth: want error")
	}
	if _, err := s.Peek(-1); err == nil {
		t.Error("peek negative depth: want error")
	}
}
