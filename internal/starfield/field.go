package starfield

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/litescript/ls-starfield/internal/logging"
)

// LoopState is the state of a field's animation loop.
type LoopState int

const (
	Stopped LoopState = iota
	Running
)

func (s LoopState) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// ErrNoSurface is returned by surface providers that have nothing to draw on.
var ErrNoSurface = errors.New("no drawable surface")

// Field owns a surface and the star set drawn on it.
//
// Mount, Resize and Unmount may be called from any goroutine. Frames are
// serialised; a resize that arrives during a frame waits for that frame to
// finish and the next frame sees the new star set.
type Field struct {
	log *logging.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	alive atomic.Bool
	stars atomic.Pointer[[]Star]

	// frameMu guards surface and serialises drawing with resizes.
	frameMu sync.Mutex
	surface Surface

	// gen identifies the current loop. Callbacks issued for an older
	// generation neither draw nor reschedule.
	schedMu sync.Mutex
	sched   Scheduler
	handle  FrameHandle
	gen     uint64

	frames atomic.Uint64
}

// Option configures a Field.
type Option func(*Field)

// WithRand sets the random source used to generate star sets.
func WithRand(rng *rand.Rand) Option {
	return func(f *Field) {
		f.rng = rng
	}
}

// WithSeed seeds the random source used to generate star sets.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(f *Field) {
		f.log = l
	}
}

// NewField creates a stopped field. Call Mount to start it.
func NewField(opts ...Option) *Field {
	f := &Field{}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if f.log == nil {
		f.log = logging.Discard()
	}
	return f
}

// Mount acquires a surface and generates the first star set. If the surface
// cannot be acquired the field stays stopped and Mount returns false.
// Mounting a running field does nothing.
func (f *Field) Mount(acquire func() (Surface, error)) bool {
	if f.alive.Load() {
		return true
	}

	surf, err := acquire()
	if err == nil && surf == nil {
		err = ErrNoSurface
	}
	if err != nil {
		f.log.Debug("surface unavailable, field disabled: %v", err)
		return false
	}

	w, h := surf.Size()
	stars := f.generate(w, h)

	f.frameMu.Lock()
	f.surface = surf
	f.stars.Store(&stars)
	f.frames.Store(0)
	f.alive.Store(true)
	f.frameMu.Unlock()

	f.log.Debug("mounted %.0fx%.0f surface with %d stars", w, h, len(stars))
	return true
}

// Resize resizes the surface and replaces the star set with a freshly
// generated one. It is a no-op on a stopped field.
func (f *Field) Resize(width, height float64) {
	if !f.alive.Load() {
		return
	}
	stars := f.generate(width, height)

	f.frameMu.Lock()
	defer f.frameMu.Unlock()
	if !f.alive.Load() {
		return
	}
	if r, ok := f.surface.(Resizer); ok {
		r.Resize(width, height)
	}
	f.stars.Store(&stars)

	f.log.Debug("resized to %.0fx%.0f, regenerated %d stars", width, height, len(stars))
}

// Frame draws one frame at time t (milliseconds). It reports whether a frame
// was drawn, which is false once the field is stopped.
func (f *Field) Frame(t float64) bool {
	if !f.alive.Load() {
		return false
	}

	f.frameMu.Lock()
	defer f.frameMu.Unlock()
	if !f.alive.Load() {
		return false
	}
	sp := f.stars.Load()
	if sp == nil {
		return false
	}
	DrawFrame(f.surface, *sp, t)
	f.frames.Add(1)
	return true
}

// Start runs the animation loop on s: one frame per request, rescheduled
// after each frame until Unmount. Starting a stopped field does nothing.
func (f *Field) Start(s Scheduler) {
	if !f.alive.Load() {
		return
	}

	f.schedMu.Lock()
	defer f.schedMu.Unlock()
	if f.sched != nil {
		f.sched.Cancel(f.handle)
	}
	f.gen++
	f.sched = s
	f.handle = s.Request(f.frameFunc(f.gen))
}

func (f *Field) frameFunc(gen uint64) FrameFunc {
	return func(ms float64) {
		f.onFrame(ms, gen)
	}
}

func (f *Field) current(gen uint64) bool {
	f.schedMu.Lock()
	defer f.schedMu.Unlock()
	return f.gen == gen && f.sched != nil
}

func (f *Field) onFrame(ms float64, gen uint64) {
	if !f.current(gen) || !f.Frame(ms) {
		return
	}

	f.schedMu.Lock()
	defer f.schedMu.Unlock()
	if !f.alive.Load() || f.sched == nil || f.gen != gen {
		return
	}
	f.handle = f.sched.Request(f.frameFunc(gen))
}

// Unmount stops the loop, cancels any pending frame and drops the star set.
// A frame already in progress completes; none follow it.
func (f *Field) Unmount() {
	if !f.alive.Swap(false) {
		return
	}

	f.schedMu.Lock()
	if f.sched != nil {
		f.sched.Cancel(f.handle)
		f.sched = nil
		f.handle = 0
	}
	f.gen++
	f.schedMu.Unlock()

	f.frameMu.Lock()
	f.stars.Store(nil)
	f.surface = nil
	f.frameMu.Unlock()

	f.log.Debug("unmounted after %d frames", f.frames.Load())
}

// State returns the loop state.
func (f *Field) State() LoopState {
	if f.alive.Load() {
		return Running
	}
	return Stopped
}

// Stars returns a copy of the current star set, positioned as of the last
// frame.
func (f *Field) Stars() []Star {
	f.frameMu.Lock()
	defer f.frameMu.Unlock()

	live := f.live()
	if live == nil {
		return nil
	}
	return append([]Star(nil), live...)
}

// Len returns the number of stars in the current set.
func (f *Field) Len() int {
	return len(f.live())
}

// live returns the shared star slice. Frames write positions into it under
// frameMu.
func (f *Field) live() []Star {
	sp := f.stars.Load()
	if sp == nil {
		return nil
	}
	return *sp
}

// Frames returns the number of frames drawn since Mount.
func (f *Field) Frames() uint64 {
	return f.frames.Load()
}

func (f *Field) generate(width, height float64) []Star {
	f.rngMu.Lock()
	defer f.rngMu.Unlock()
	return Generate(width, height, f.rng)
}
