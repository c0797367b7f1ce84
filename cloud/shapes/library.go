package shapes

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/gekko3d/morphcloud/cloud/core"
	"github.com/google/uuid"
)

// Logger is the subset of the application logger used here. A nil Logger is silent.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

// Shapes is one complete, immutable generation of morph targets.
type Shapes struct {
	ID         string
	Generation uint64
	Scale      Scale
	Text       [len(Messages)]*core.PointSet
	Planet     *core.PointSet
	Cloud      *core.PointSet
}

// Target maps a gesture to its morph target. None and Detected have no target.
func (s *Shapes) Target(g core.Gesture) (*core.PointSet, bool) {
	if s == nil {
		return nil, false
	}
	switch g {
	case core.GesturePeace:
		return s.Text[0], true
	case core.GestureRock:
		return s.Text[1], true
	case core.GestureFist:
		return s.Text[2], true
	case core.GestureLike:
		return s.Planet, true
	}
	return nil, false
}

// Library publishes shape generations atomically. Readers always see either
// the previous or the next complete generation.
type Library struct {
	n          int
	rasterizer Rasterizer
	log        Logger

	mu   sync.Mutex // guards rng
	rng  *rand.Rand
	next atomic.Uint64

	current atomic.Pointer[Shapes]
}

func NewLibrary(n int, r Rasterizer, rng *rand.Rand, log Logger) *Library {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Library{n: n, rasterizer: r, rng: rng, log: log}
}

// Current returns the latest published generation, or nil before the first Regenerate.
func (l *Library) Current() *Shapes {
	return l.current.Load()
}

// N is the particle count every generated set has.
func (l *Library) N() int { return l.n }

func (l *Library) childRand() *rand.Rand {
	l.mu.Lock()
	defer l.mu.Unlock()
	return rand.New(rand.NewPCG(l.rng.Uint64(), l.rng.Uint64()))
}

// Regenerate builds every shape at scale and publishes the result unless a
// newer regeneration has already been published. It returns the generation
// that is current afterwards.
func (l *Library) Regenerate(scale Scale) (*Shapes, error) {
	gen := l.next.Add(1)
	g := NewGenerator(l.n, l.rasterizer, l.childRand())

	s := &Shapes{
		ID:         uuid.NewString(),
		Generation: gen,
		Scale:      scale,
	}
	for i, msg := range Messages {
		set, err := g.Text(msg, scale.Text)
		if err != nil {
			return nil, err
		}
		s.Text[i] = set
	}
	var err error
	if s.Planet, err = g.Planet(scale.Shape); err != nil {
		return nil, fmt.Errorf("planet: %w", err)
	}
	if s.Cloud, err = g.Cloud(); err != nil {
		return nil, fmt.Errorf("cloud: %w", err)
	}

	for {
		old := l.current.Load()
		if old != nil && old.Generation > gen {
			l.debugf("Shapes generation %d superseded by %d", gen, old.Generation)
			return old, nil
		}
		if l.current.CompareAndSwap(old, s) {
			break
		}
	}
	if l.log != nil {
		l.log.Infof("Shapes %s (generation %d) published: n=%d text=%.4f shape=%.3f",
			s.ID, gen, l.n, scale.Text, scale.Shape)
	}
	return s, nil
}

func (l *Library) debugf(format string, args ...any) {
	if l.log != nil {
		l.log.Debugf(format, args...)
	}
}
