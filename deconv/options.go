package deconv

// Options configure a deconvolution solve.
// The zero value of each field selects a sensible default.
type Options struct {
	// Rounds is the number of alternating-minimization rounds of the
	// iterative solver. Zero selects the default of 2.
	Rounds int
	// Checkpoint enables writing intermediate rasters to disk.
	// Checkpoint writes are best-effort: failures are logged and do
	// not abort the solve.
	Checkpoint bool
	// CheckpointDir is the directory for checkpoint files.
	// Empty means the current directory.
	CheckpointDir string
}

const defaultRounds = 2

// DefaultOptions returns the default configuration: two rounds,
// checkpoints on, current directory.
func DefaultOptions() *Options {
	return &Options{Rounds: defaultRounds, Checkpoint: true}
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return DefaultOptions()
	}
	out := *o
	if out.Rounds <= 0 {
		out.Rounds = defaultRounds
	}
	return &out
}
