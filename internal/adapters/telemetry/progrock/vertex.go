package progrock

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/tcbuild/internal/core/domain"
)

// Vertex implements ports.Vertex for one project step.
// Stdout and Stderr feed a shared line counter. Log messages go to the vertex itself.
type Vertex struct {
	vertex *progrock.VertexRecorder
	output *lineCounter
}

// Stdout returns a writer counting the step's standard output.
func (v *Vertex) Stdout() io.Writer {
	return v.output
}

// Stderr returns a writer counting the step's error output.
func (v *Vertex) Stderr() io.Writer {
	return v.output
}

// Log appends msg to the vertex log, tagged with its level.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level, msg)
}

// Complete marks the step as done. A non-nil err marks it failed.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached marks the step as satisfied by an earlier build.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}

// lineCounter counts newline-terminated lines written to it.
type lineCounter struct {
	mu    sync.Mutex
	lines int
}

func (c *lineCounter) Write(p []byte) (int, error) {
	c.mu.Lock()
	c.lines += bytes.Count(p, []byte{'\n'})
	c.mu.Unlock()
	return len(p), nil
}

func (c *lineCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines
}
