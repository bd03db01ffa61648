package deconv

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jvlmdr/go-cv/rimg64"
)

func TestSchedule_sequence(t *testing.T) {
	const eps = 1e-12
	s := newSchedule()
	if !epsEq(0.1, s.Lambda1, eps) || !epsEq(15, s.Lambda2, eps) || !epsEq(2, s.Gamma, eps) {
		t.Fatalf("initial weights: got %+v", s)
	}
	s.advance()
	if !epsEq(0.1/1.2, s.Lambda1, eps) || !epsEq(10, s.Lambda2, eps) || !epsEq(4, s.Gamma, eps) {
		t.Fatalf("after one round: got %+v", s)
	}
	s.advance()
	if !epsEq(0.1/1.2/1.2, s.Lambda1, eps) || !epsEq(15.0/1.5/1.5, s.Lambda2, eps) || !epsEq(8, s.Gamma, eps) {
		t.Fatalf("after two rounds: got %+v", s)
	}
}

func TestShan_colorReducesToLuma(t *testing.T) {
	const (
		width  = 24
		height = 18
	)
	im := bumpImage(width, height)
	color := rimg64.NewMulti(width, height, 3)
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			for k := 0; k < 3; k++ {
				color.Set(i, j, k, im.At(i, j, 0))
			}
		}
	}
	out, err := Shan(color, gaussKernel(), &Options{Rounds: 1})
	if err != nil {
		t.Fatal(err)
	}
	if out.Channels != 1 {
		t.Fatalf("channels: want 1, got %d", out.Channels)
	}
	if out.Width != width || out.Height != height {
		t.Fatalf("size: want %dx%d, got %dx%d", width, height, out.Width, out.Height)
	}
}

func TestShan_outputFinite(t *testing.T) {
	const (
		width  = 24
		height = 18
	)
	im := bumpImage(width, height)
	blur := cyclicBlur(im, gaussKernel())
	out, err := Shan(blur, gaussKernel(), &Options{Rounds: 2})
	if err != nil {
		t.Fatal(err)
	}
	for p, x := range out.Elems {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			t.Fatalf("element %d is not finite: %g", p, x)
		}
	}
}

func TestShan_writesCheckpoints(t *testing.T) {
	dir := t.TempDir()
	im := bumpImage(16, 12)
	opt := &Options{Rounds: 2, Checkpoint: true, CheckpointDir: dir}
	if _, err := Shan(im, gaussKernel(), opt); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"output01.tmp", "output02.tmp"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("checkpoint %s: %v", name, err)
		}
	}
}

func TestShan_checkpointsDisabled(t *testing.T) {
	dir := t.TempDir()
	im := bumpImage(16, 12)
	opt := &Options{Rounds: 1, CheckpointDir: dir}
	if _, err := Shan(im, gaussKernel(), opt); err != nil {
		t.Fatal(err)
	}
	names, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("checkpoints written while disabled: %v", names)
	}
}

func TestShan_rejectsEvenKernel(t *testing.T) {
	dir := t.TempDir()
	im := bumpImage(16, 12)
	k := randImage(4, 3, 1)
	opt := &Options{Rounds: 1, Checkpoint: true, CheckpointDir: dir}
	_, err := Shan(im, k, opt)
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("want precondition error, got %v", err)
	}
	names, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(names) != 0 {
		t.Fatalf("checkpoints written after rejection: %v", names)
	}
}

func TestShan_rejectsTwoChannels(t *testing.T) {
	im := randImage(16, 12, 2)
	_, err := Shan(im, gaussKernel(), nil)
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("want precondition error, got %v", err)
	}
}
