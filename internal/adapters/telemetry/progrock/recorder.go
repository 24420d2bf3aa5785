// Package progrock records project steps as progrock vertices.
//
// Vertices land on a progrock tape, which is read back to report how long each
// step took. Command output is counted per step and not retained.
package progrock

import (
	"context"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/tcbuild/internal/core/domain"
	"go.trai.ch/tcbuild/internal/core/ports"
)

// Recorder implements ports.Telemetry using progrock.
type Recorder struct {
	tape *progrock.Tape
	rec  *progrock.Recorder

	mu    sync.Mutex
	lines map[string]*lineCounter
}

// New creates a new Recorder writing to an in-memory tape only.
func New() *Recorder {
	return NewRecorder(nil)
}

// NewRecorder creates a new Recorder that also forwards every status update to w.
// A nil w records to the tape only.
func NewRecorder(w progrock.Writer) *Recorder {
	tape := progrock.NewTape()

	var out progrock.Writer = tape
	if w != nil {
		out = progrock.MultiWriter{tape, w}
	}

	return &Recorder{
		tape:  tape,
		rec:   progrock.NewRecorder(out),
		lines: make(map[string]*lineCounter),
	}
}

var _ ports.Telemetry = (*Recorder)(nil)

// Record starts a vertex identified by the digest of its name.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	counter := &lineCounter{}

	r.mu.Lock()
	r.lines[name] = counter
	r.mu.Unlock()

	v := r.rec.Vertex(digest.FromString(name), name)
	return ctx, &Vertex{vertex: v, output: counter}
}

// Timings returns one entry per recorded step, in the order the steps started.
func (r *Recorder) Timings() []domain.StepTiming {
	vertices := r.tape.Vertices()

	r.mu.Lock()
	defer r.mu.Unlock()

	timings := make([]domain.StepTiming, 0, len(vertices))
	for _, v := range vertices {
		t := domain.StepTiming{
			Name:   v.GetName(),
			Cached: v.GetCached(),
			Failed: v.GetError() != "",
		}
		if started, completed := v.GetStarted(), v.GetCompleted(); started != nil && completed != nil {
			t.Duration = completed.AsTime().Sub(started.AsTime())
		}
		if c, ok := r.lines[t.Name]; ok {
			t.Lines = c.count()
		}
		timings = append(timings, t)
	}
	return timings
}

// Close completes the root group and closes the tape.
func (r *Recorder) Close() error {
	r.rec.Complete()
	return r.rec.Close()
}
