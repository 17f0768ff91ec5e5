package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSink captures the last frame written.
type fakeSink struct {
	last   *Frame
	err    error
	closed bool
}

func (s *fakeSink) Write(f *Frame) error {
	if s.err != nil {
		return s.err
	}
	s.last = f
	return nil
}

func (s *fakeSink) Close() error { s.closed = true; return nil }

func TestNewEngineRequiresSink(t *testing.T) {
	_, err := NewEngine(nil, Color{})
	assert.ErrorIs(t, err, ErrNoSink)
}

func TestEngineClearThenDraw(t *testing.T) {
	sink := &fakeSink{}
	e, err := NewEngine(sink, Color{R: 0.3, B: 0.3, A: 1})
	require.NoError(t, err)

	e.Clear()
	require.NoError(t, e.Draw(&Frame{T: 1}))
	require.NotNil(t, sink.last)
	assert.Equal(t, uint64(1), sink.last.FrameID)
	assert.True(t, sink.last.Cleared)
	assert.Equal(t, Color{R: 0.3, B: 0.3, A: 1}, sink.last.ClearColor)

	// without Clear the frame is flagged
	require.NoError(t, e.Draw(&Frame{T: 2}))
	assert.Equal(t, uint64(2), sink.last.FrameID)
	assert.False(t, sink.last.Cleared)
	assert.Equal(t, uint64(2), e.FrameID())
}

func TestEngineSinkError(t *testing.T) {
	boom := errors.New("boom")
	sink := &fakeSink{err: boom}
	e, err := NewEngine(sink, Color{})
	require.NoError(t, err)
	e.Clear()
	assert.ErrorIs(t, e.Draw(&Frame{}), boom)
	assert.Equal(t, uint64(0), e.FrameID(), "failed write must not use up an id")

	sink.err = nil
	require.NoError(t, e.Draw(&Frame{}))
	assert.Equal(t, uint64(1), sink.last.FrameID)
	assert.Equal(t, uint64(1), e.FrameID())
}

func TestEngineClose(t *testing.T) {
	sink := &fakeSink{}
	e, _ := NewEngine(sink, Color{})
	require.NoError(t, e.Close())
	assert.True(t, sink.closed)
}

func TestFrameUniforms(t *testing.T) {
	m := mgl64.Ident4()
	f := &Frame{
		T: 2.5,
		Quadrics: []QuadricUniform{
			{ID: 3, Surface: Mat4(m), Shininess: 10, Reflectance: 1, MaterialColor: [3]float32{1, 1, 1}},
		},
		Lights: []LightUniform{{Index: 1, Position: Vec4(mgl64.Vec4{0, 1, 0, 0}), PowerDensity: [3]float32{0.4, 0.46, 0.5}}},
	}
	u := f.Uniforms()

	v, ok := u.Get("clippedQuadrics[3].surface")
	require.True(t, ok)
	assert.Len(t, v, 16)
	assert.Equal(t, float32(1), v[0])

	v, ok = u.Get("clippedQuadrics[3].shininess")
	require.True(t, ok)
	assert.Equal(t, []float32{10}, v)

	v, ok = u.Get("lights[1].powerDensity")
	require.True(t, ok)
	assert.Equal(t, []float32{0.4, 0.46, 0.5}, v)

	v, _ = u.Get("scene.time")
	assert.Equal(t, []float32{2.5}, v)

	_, ok = u.Get("camera.rayDirMatrix")
	assert.True(t, ok)
	assert.Contains(t, u.Names(), "clippedQuadrics[3].clipper")
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("b", &fakeSink{})
	reg.Register("a", &fakeSink{})
	reg.Register("nil", nil)
	assert.Equal(t, []string{"a", "b"}, reg.List())
	_, ok := reg.Get("nil")
	assert.False(t, ok)
}
