package filter

import (
	"math"
	"sync"
)

// KernelHalfSize returns the number of taps on each side of the centre of
// a Gaussian kernel with the given standard deviation: ceil(3*sigma), which
// covers 99.7% of the distribution. Returns 0 for sigma <= 0.
func KernelHalfSize(sigma float64) int {
	if !(sigma > 0) {
		return 0
	}
	return int(math.Ceil(sigma * 3))
}

// GaussianKernel generates a normalized 1D Gaussian kernel of size
// 2*KernelHalfSize(sigma)+1. For sigma <= 0 it returns the identity
// kernel [1.0].
func GaussianKernel(sigma float64) []float32 {
	half := KernelHalfSize(sigma)
	if half == 0 {
		return []float32{1.0}
	}

	size := half*2 + 1
	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the constant factor cancels on normalization.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := 0; i < size; i++ {
		x := float64(i - half)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	invSum := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= invSum
	}
	return kernel
}

// kernelCache caches Gaussian kernels keyed by sigma quantized to 0.01.
type kernelCache struct {
	mu sync.RWMutex

	// cache maps round(sigma*100) to its kernel. Kernels are shared and
	// must not be modified.
	cache map[int][]float32

	// maxLen is the entry count that triggers eviction.
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[int][]float32),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
func (c *kernelCache) get(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))
	quantized := float64(key) / 100

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := GaussianKernel(quantized)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Evict half the entries.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// len returns the number of cached kernels.
func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedGaussianKernel returns a cached Gaussian kernel for sigma,
// quantized to 0.01 pixel.
func CachedGaussianKernel(sigma float64) []float32 {
	return defaultKernelCache.get(sigma)
}
