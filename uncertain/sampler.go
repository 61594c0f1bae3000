package uncertain

import (
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// DefaultSampleCount is the number of Monte Carlo draws backing each value
// when a Sampler is created without an explicit count.
const DefaultSampleCount = 20000

// chunkSize is the unit of draw generation. Each chunk has its own random
// stream so the draws of a value do not depend on how many workers produced them.
const chunkSize = 4096

// A Sampler constructs uncertain values that can be combined with one
// another. Every value it creates has the same number of draws and is
// drawn from its own random stream, so distinct values are independent.
// Values are reproducible for a given seed and construction order.
//
// A Sampler is not safe for concurrent use; the values it returns are.
type Sampler struct {
	n       int
	seed    uint64
	streams uint64

	// Workers is the maximum number of goroutines used to generate the
	// draws of a single value. Zero or one generates draws sequentially.
	Workers int
}

// NewSampler returns a sampler producing values backed by n draws. A
// non-positive n selects DefaultSampleCount.
func NewSampler(n int, seed uint64) *Sampler {
	if n <= 0 {
		n = DefaultSampleCount
	}
	return &Sampler{n: n, seed: seed}
}

// N reports the number of draws backing each value created by the sampler.
func (s *Sampler) N() int { return s.n }

func (s *Sampler) nextStream() uint64 {
	s.streams++
	return mix(s.seed + s.streams*0x9e3779b97f4a7c15)
}

// mix is the splitmix64 finalizer, used to spread nearby seeds apart.
func mix(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// generator fills dst with draws. offset is the index of dst[0] within the
// complete draw array.
type generator func(src rand.Source, offset int, dst []float64)

func (s *Sampler) generate(gen generator) []float64 {
	stream := s.nextStream()
	draws := make([]float64, s.n)
	chunks := (s.n + chunkSize - 1) / chunkSize

	run := func(c int) {
		lo := c * chunkSize
		hi := lo + chunkSize
		if hi > s.n {
			hi = s.n
		}
		gen(rand.NewSource(mix(stream+uint64(c))), lo, draws[lo:hi])
	}

	if s.Workers <= 1 || chunks == 1 {
		for c := 0; c < chunks; c++ {
			run(c)
		}
		return draws
	}

	var g errgroup.Group
	g.SetLimit(s.Workers)
	for c := 0; c < chunks; c++ {
		c := c
		g.Go(func() error {
			run(c)
			return nil
		})
	}
	_ = g.Wait() // generators cannot fail
	return draws
}
