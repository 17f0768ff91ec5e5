package render

import (
	"errors"
	"time"
)

var ErrNoSink = errors.New("render: no sink")

// Engine is the draw boundary: it opens a frame with Clear, stamps frame ids,
// and hands finished frames to the sink.
type Engine struct {
	ClearColor Color

	sink    Sink
	frameID uint64
	cleared bool
	start   time.Time

	// metrics (last durations in ms)
	Last struct {
		WriteMS float64
		TotalMS float64
	}
}

// NewEngine returns an Engine writing to sink.
func NewEngine(sink Sink, clear Color) (*Engine, error) {
	if sink == nil {
		return nil, ErrNoSink
	}
	return &Engine{ClearColor: clear, sink: sink}, nil
}

// Clear starts a new frame on the render target.
func (e *Engine) Clear() {
	e.cleared = true
	e.start = time.Now()
}

// Draw pushes f to the sink. The frame id is assigned here, so ids only
// advance for frames that were actually submitted.
func (e *Engine) Draw(f *Frame) error {
	if e.sink == nil {
		return ErrNoSink
	}
	if !e.cleared {
		e.start = time.Now()
	}
	f.FrameID = e.frameID + 1
	f.Cleared = e.cleared
	f.ClearColor = e.ClearColor
	e.cleared = false

	writeStart := time.Now()
	if err := e.sink.Write(f); err != nil {
		return err
	}
	e.frameID = f.FrameID
	e.Last.WriteMS = float64(time.Since(writeStart).Microseconds()) / 1000.0
	e.Last.TotalMS = float64(time.Since(e.start).Microseconds()) / 1000.0
	return nil
}

// FrameID returns the id of the last submitted frame.
func (e *Engine) FrameID() uint64 { return e.frameID }

func (e *Engine) SetSink(s Sink) { e.sink = s }

func (e *Engine) Close() error {
	if e.sink == nil {
		return nil
	}
	return e.sink.Close()
}
