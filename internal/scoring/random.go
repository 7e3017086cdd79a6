package scoring

import (
	"math/rand"
	"sync"
	"time"
)

// Random is the source of randomness for jitter and reason selection.
// Float64 returns a value in [0, 1).
type Random interface {
	Float64() float64
}

type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a goroutine-safe source. Seed 0 seeds from the clock.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRandom{rng: rand.New(rand.NewSource(seed))}
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

type fixedRandom struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// Fixed returns a source that cycles through values. With no values it always returns 0.
func Fixed(values ...float64) Random {
	return &fixedRandom{values: values}
}

func (f *fixedRandom) Float64() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.values) == 0 {
		return 0
	}
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

// Jitter is the random perturbation added to every criterion score
type Jitter struct {
	Enabled   bool
	Amplitude float64
}

// DefaultJitter is ±0.3
func DefaultJitter() Jitter {
	return Jitter{Enabled: true, Amplitude: 0.3}
}

// ZeroJitter disables the perturbation so scores are a pure function of the input
func ZeroJitter() Jitter {
	return Jitter{}
}

func (j Jitter) offset(r Random) float64 {
	if !j.Enabled || j.Amplitude <= 0 {
		return 0
	}
	return (r.Float64()*2 - 1) * j.Amplitude
}
