// Package audio provides cue sinks for the engine's trigger events.
// Actual playback belongs to a platform front end; these sinks only
// surface which cue fired for which track.
package audio

import (
	"fmt"
	"io"
)

// WriterSink prints cue lines to a writer. Used by the terminal front
// end to show when a track would start.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink returns a sink writing cue lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Cue implements engine.CueSink.
func (s *WriterSink) Cue(name string, sceneID int, trackRef string) {
	if trackRef == "" {
		fmt.Fprintf(s.w, "[cue] %s scene=%d\n", name, sceneID)
		return
	}
	fmt.Fprintf(s.w, "[cue] %s scene=%d track=%s\n", name, sceneID, trackRef)
}
