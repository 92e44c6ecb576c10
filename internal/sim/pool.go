package sim

import (
	"sync"

	"github.com/san-kum/pondsim/internal/pond"
)

// PixelPool recycles frame buffers of a fixed size.
type PixelPool struct {
	pool sync.Pool
	size int
}

func NewPixelPool(size int) *PixelPool {
	return &PixelPool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make([]pond.Pixel, size)
			},
		},
	}
}

func (p *PixelPool) Size() int { return p.size }

func (p *PixelPool) Get() []pond.Pixel {
	return p.pool.Get().([]pond.Pixel)
}

// Put clears buf and returns it to the pool. Buffers of the wrong size are
// dropped.
func (p *PixelPool) Put(buf []pond.Pixel) {
	if len(buf) == p.size {
		clear(buf)
		p.pool.Put(buf)
	}
}

// PixelPools hands out one PixelPool per frame size. It is shared by the
// members of an Ensemble and by successive runs of a Simulator.
type PixelPools struct {
	mu     sync.Mutex
	bySize map[int]*PixelPool
}

func NewPixelPools() *PixelPools {
	return &PixelPools{bySize: make(map[int]*PixelPool)}
}

func (p *PixelPools) For(size int) *PixelPool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pool, ok := p.bySize[size]
	if !ok {
		pool = NewPixelPool(size)
		p.bySize[size] = pool
	}
	return pool
}

// Len is the number of distinct frame sizes seen.
func (p *PixelPools) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bySize)
}
