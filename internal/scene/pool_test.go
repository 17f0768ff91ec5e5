package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/snowglobe/internal/quadric"
)

func TestNewPoolIntegrity(t *testing.T) {
	p, err := NewPool(15)
	require.NoError(t, err)
	require.Equal(t, 15, p.Len())

	seen := map[int]bool{}
	i := 0
	p.Each(func(q *quadric.Quadric) {
		assert.Equal(t, i, q.ID)
		assert.False(t, seen[q.ID])
		seen[q.ID] = true
		assert.True(t, quadric.IsSymmetric(q.Surface, 0))
		assert.True(t, quadric.IsSymmetric(q.Clipper, 0))
		i++
	})
	assert.Len(t, seen, 15)
}

func TestNewPoolInvalidCapacity(t *testing.T) {
	_, err := NewPool(0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestPoolAt(t *testing.T) {
	p, _ := NewPool(3)
	q, err := p.At(2)
	require.NoError(t, err)
	assert.Equal(t, 2, q.ID)

	_, err = p.At(3)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	_, err = p.At(-1)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	assert.Equal(t, 3, p.Len(), "no growth on bad access")
}

func TestClaim(t *testing.T) {
	p, _ := NewPool(5)

	hs, err := p.Claim("fir", 1, 2)
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, []int{1, 2}, ids(hs...))
	assert.Equal(t, "fir", p.Owner(1))
	assert.True(t, hs[0].Valid())

	// same owner may re-claim
	_, err = p.Claim("fir", 2)
	assert.NoError(t, err)

	// aliasing another piece's slot
	_, err = p.Claim("baubles", 0, 2)
	assert.ErrorIs(t, err, ErrSlotClaimed)
	assert.Equal(t, "", p.Owner(0), "failed claim must not take any slot")

	_, err = p.Claim("baubles", 3, 3)
	assert.ErrorIs(t, err, ErrSlotClaimed)

	_, err = p.Claim("baubles", 4, 5)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
	assert.Equal(t, "", p.Owner(4))
}

func TestHandleReachesSlot(t *testing.T) {
	p, _ := NewPool(4)
	hs, err := p.Claim("ground", 3)
	require.NoError(t, err)
	hs[0].Quadric().MakeInfiniteSurface()

	q, _ := p.At(3)
	assert.Equal(t, hs[0].Quadric().Surface, q.Surface)
	assert.Equal(t, 3, hs[0].ID())
}

func TestDefaultSlotsDoNotAlias(t *testing.T) {
	s := DefaultSlots()
	all := append([]int{}, s.Snowman[:]...)
	all = append(all, s.Ground)
	all = append(all, s.Fir[:]...)
	all = append(all, s.Baubles[:]...)

	seen := map[int]bool{}
	for _, id := range all {
		assert.False(t, seen[id], "slot %d assigned twice", id)
		assert.True(t, id >= 0 && id < DefaultCapacity)
		seen[id] = true
	}
	assert.Len(t, seen, DefaultCapacity)
}
