package progrock

import (
	"fmt"

	"github.com/vito/progrock"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
	total  int
}

// Progress reports the number of steps completed so far by writing a
// progress line to the vertex's stdout stream.
func (v *Vertex) Progress(completed int) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "%d/%d\n", completed, v.total)
}

// Complete marks the vertex as finished, successfully or with err.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}
