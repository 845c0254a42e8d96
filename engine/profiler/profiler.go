//go:build profile

package profiler

import (
	"bufio"
	"errors"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Init must be called once at startup with the ring capacity in events.
// Example: profiler.Init(1 << 20)
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 20
	}
	ring.init(capacity)
}

func Enabled() bool { return true }

// Start begins a scope and returns the func that ends it.
// Scopes are only meaningful on the thread that drives the event loop.
func Start(name string) func() {
	if !ring.ready.Load() {
		return func() {}
	}
	fid := intern(name)
	start := time.Now().UnixNano()
	ring.push(entry{atNS: start, frame: fid, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < start {
			end = start
		}
		ring.push(entry{atNS: end, frame: fid})
	}
}

// Dump writes the captured scopes to path as folded stacks, the input format
// of flamegraph.pl and speedscope.
func Dump(path string) error {
	entries := ring.snapshot()
	if len(entries) == 0 {
		return errors.New("profiler: no events to dump")
	}

	muFrames.Lock()
	evs := make([]event, len(entries))
	for i, e := range entries {
		evs[i] = event{atNS: e.atNS, frame: frames[e.frame], open: e.open}
	}
	muFrames.Unlock()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := writeFolded(w, fold(evs)); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

// ---------- event ring ----------

type entry struct {
	atNS  int64
	frame int
	open  bool
}

type eventRing struct {
	ready atomic.Bool
	cap   uint64
	write atomic.Uint64
	evs   []entry
}

func (r *eventRing) init(capacity int) {
	r.cap = uint64(capacity)
	r.evs = make([]entry, r.cap)
	r.write.Store(0)
	r.ready.Store(true)
}

func (r *eventRing) push(e entry) {
	i := r.write.Add(1) - 1
	r.evs[i%r.cap] = e
}

// snapshot preserves write order.
func (r *eventRing) snapshot() []entry {
	n := r.write.Load()
	if n == 0 {
		return nil
	}
	start := uint64(0)
	if n > r.cap {
		start = n - r.cap
	}
	out := make([]entry, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.cap])
	}
	return out
}

var ring eventRing

// ---------- string interner ----------

var (
	muFrames sync.Mutex
	frames   []string
	index    = map[string]int{}
)

func intern(name string) int {
	muFrames.Lock()
	defer muFrames.Unlock()
	if id, ok := index[name]; ok {
		return id
	}
	id := len(frames)
	index[name] = id
	frames = append(frames, name)
	return id
}
