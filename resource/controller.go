package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrMemoryLimit is returned when a reservation would exceed
// Config.MemoryLimitBytes.
var ErrMemoryLimit = errors.New("resource: memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for packed fingerprint words held
	// by loaded documents. If 0, usage is only tracked.
	MemoryLimitBytes int64

	// MaxBuildWorkers is the maximum number of documents built
	// concurrently. If 0, defaults to 1.
	MaxBuildWorkers int64

	// GenerationsPerSecond caps fingerprint generation calls across all
	// builds. If 0, unlimited.
	GenerationsPerSecond float64

	// GenerationBurst is the limiter burst. If 0, it defaults to
	// max(1, GenerationsPerSecond).
	GenerationBurst int
}

// Controller manages resources shared by concurrent document builds.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	buildSem *semaphore.Weighted

	// Generation
	genLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxBuildWorkers <= 0 {
		cfg.MaxBuildWorkers = 1
	}

	c := &Controller{
		cfg:      cfg,
		buildSem: semaphore.NewWeighted(cfg.MaxBuildWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	if cfg.GenerationsPerSecond > 0 {
		burst := cfg.GenerationBurst
		if burst <= 0 {
			burst = max(1, int(cfg.GenerationsPerSecond))
		}
		c.genLimiter = rate.NewLimiter(rate.Limit(cfg.GenerationsPerSecond), burst)
	}

	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// ReserveMemory reserves bytes without blocking. Documents are never
// released while the registry lives, so waiting would only deadlock; an
// over-limit reservation fails with ErrMemoryLimit instead.
func (c *Controller) ReserveMemory(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.memSem != nil && !c.memSem.TryAcquire(bytes) {
		return fmt.Errorf("%w: need %d bytes, %d of %d in use",
			ErrMemoryLimit, bytes, c.memUsed.Load(), c.cfg.MemoryLimitBytes)
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireBuild reserves a build worker slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireBuild(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.buildSem.Acquire(ctx, 1)
}

// TryAcquireBuild reserves a build worker slot without blocking.
func (c *Controller) TryAcquireBuild() bool {
	if c == nil {
		return true
	}
	return c.buildSem.TryAcquire(1)
}

// ReleaseBuild releases a build worker slot.
func (c *Controller) ReleaseBuild() {
	if c == nil {
		return
	}
	c.buildSem.Release(1)
}

// AcquireGenerations waits until the rate limit allows n generation calls.
func (c *Controller) AcquireGenerations(ctx context.Context, n int) error {
	if c == nil || c.genLimiter == nil || n <= 0 {
		return nil
	}
	// WaitN rejects n above the burst, so large batches wait in burst sized steps.
	burst := c.genLimiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := c.genLimiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
