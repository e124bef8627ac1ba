// Package progrock implements the ports.Telemetry adapter over
// github.com/vito/progrock, rendering one vertex per RelinkAll, install,
// remove or CheckIntegrity run and updating it from the caller's atomic
// progress counter at roughly 10Hz.
package progrock

import (
	"context"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"github.com/Acidburn0zzz/pkgdepdb/internal/core/ports"
)

// Recorder implements ports.Telemetry using a progrock tape.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder backed by a fresh progrock tape.
func New() ports.Telemetry {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{w: w, rec: progrock.NewRecorder(w)}
}

// StartVertex begins tracking name as a progrock vertex with the given
// total step count.
func (r *Recorder) StartVertex(_ context.Context, name string, total int) ports.Vertex {
	d := digest.FromString(name)
	v := r.rec.Vertex(d, name)
	return &Vertex{vertex: v, total: total}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
