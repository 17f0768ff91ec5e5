package scene

import (
	"errors"
	"fmt"

	"github.com/coreman2200/snowglobe/internal/quadric"
)

var (
	ErrInvalidCapacity = errors.New("pool capacity must be positive")
	ErrSlotOutOfRange  = errors.New("slot id out of range")
	ErrSlotClaimed     = errors.New("slot already claimed")
)

// Pool is the fixed set of quadric slots shared with the renderer's uniform
// array. Ids 0..Len()-1 are assigned once and never change.
type Pool struct {
	slots  []quadric.Quadric
	owners []string
}

func NewPool(capacity int) (*Pool, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	p := &Pool{
		slots:  make([]quadric.Quadric, capacity),
		owners: make([]string, capacity),
	}
	for i := range p.slots {
		p.slots[i] = quadric.New(i)
	}
	return p, nil
}

func (p *Pool) Len() int { return len(p.slots) }

func (p *Pool) inRange(id int) bool { return id >= 0 && id < len(p.slots) }

// At returns the quadric in slot id.
func (p *Pool) At(id int) (*quadric.Quadric, error) {
	if !p.inRange(id) {
		return nil, fmt.Errorf("%w: %d (capacity %d)", ErrSlotOutOfRange, id, len(p.slots))
	}
	return &p.slots[id], nil
}

// Owner returns the set piece that claimed id, or "".
func (p *Pool) Owner(id int) string {
	if !p.inRange(id) {
		return ""
	}
	return p.owners[id]
}

// Claim hands the listed slots to owner. It fails without claiming anything
// if an id is out of range, repeated, or owned by someone else. Claiming a
// slot the owner already holds is allowed.
func (p *Pool) Claim(owner string, ids ...int) ([]Handle, error) {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if !p.inRange(id) {
			return nil, fmt.Errorf("%s: %w: %d (capacity %d)", owner, ErrSlotOutOfRange, id, len(p.slots))
		}
		if seen[id] {
			return nil, fmt.Errorf("%s: %w: %d listed twice", owner, ErrSlotClaimed, id)
		}
		seen[id] = true
		if cur := p.owners[id]; cur != "" && cur != owner {
			return nil, fmt.Errorf("%s: %w: %d belongs to %s", owner, ErrSlotClaimed, id, cur)
		}
	}
	hs := make([]Handle, len(ids))
	for i, id := range ids {
		p.owners[id] = owner
		hs[i] = Handle{id: id, pool: p}
	}
	return hs, nil
}

// Each visits every slot in id order.
func (p *Pool) Each(fn func(q *quadric.Quadric)) {
	for i := range p.slots {
		fn(&p.slots[i])
	}
}

// Handle is a claimed slot.
type Handle struct {
	id   int
	pool *Pool
}

func (h Handle) ID() int { return h.id }

func (h Handle) Valid() bool { return h.pool != nil && h.pool.inRange(h.id) }

func (h Handle) Quadric() *quadric.Quadric { return &h.pool.slots[h.id] }

// ids lists the slot ids behind hs.
func ids(hs ...Handle) []int {
	out := make([]int, len(hs))
	for i, h := range hs {
		out[i] = h.id
	}
	return out
}
