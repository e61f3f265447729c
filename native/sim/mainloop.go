package sim

import (
	"sort"
	"time"
)

type source struct {
	tag         uint32
	priority    int32
	closure     uintptr
	interval    time.Duration
	due         time.Time
	removed     bool
	dispatching bool
}

type mainLoop struct {
	refs    int32
	running bool
	quit    bool
}

func (b *Backend) wakeup() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

func (b *Backend) addSource(priority int32, interval time.Duration, id uintptr) uint32 {
	s := &source{tag: b.nextTag, priority: priority, closure: id, interval: interval}
	if interval > 0 {
		s.due = time.Now().Add(interval)
	}
	b.nextTag++
	b.sources[s.tag] = s
	b.wakeup()
	return s.tag
}

// IdleAdd implements g_idle_add_full with the closure id as user data.
func (b *Backend) IdleAdd(priority int32, id uintptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	return b.addSource(priority, 0, id)
}

// TimeoutAdd implements g_timeout_add_full.
func (b *Backend) TimeoutAdd(priority int32, intervalMs uint32, id uintptr) uint32 {
	b.mu.Lock()
	defer b.unlock()
	interval := time.Duration(intervalMs) * time.Millisecond
	if interval == 0 {
		interval = time.Nanosecond
	}
	return b.addSource(priority, interval, id)
}

// SourceRemove implements g_source_remove. A source removed while it
// is being dispatched is destroyed when its callback returns.
func (b *Backend) SourceRemove(tag uint32) bool {
	b.mu.Lock()
	defer b.unlock()
	s, ok := b.sources[tag]
	if !ok || s.removed {
		b.log.Warn("g_source_remove: source not found")
		return false
	}
	s.removed = true
	if !s.dispatching {
		delete(b.sources, tag)
		b.releaseClosure(s.closure)
	}
	return true
}

// ready returns the sources to dispatch now: all ready sources sharing
// the most urgent priority. wait is the time until the next timeout.
func (b *Backend) ready(now time.Time) (ready []*source, wait time.Duration) {
	wait = -1
	best := int32(0)
	for _, s := range b.sources {
		if s.removed || s.dispatching {
			continue
		}
		if s.interval > 0 && s.due.After(now) {
			if d := s.due.Sub(now); wait < 0 || d < wait {
				wait = d
			}
			continue
		}
		switch {
		case len(ready) == 0 || s.priority < best:
			ready = []*source{s}
			best = s.priority
		case s.priority == best:
			ready = append(ready, s)
		}
	}
	sort.Slice(ready, func(i, j int) bool { return ready[i].tag < ready[j].tag })
	return ready, wait
}

// MainContextIteration implements g_main_context_iteration on the
// default context. A blocking iteration also returns after a wakeup
// such as g_main_loop_quit.
func (b *Backend) MainContextIteration(mayBlock bool) bool {
	b.mu.Lock()
	batch, wait := b.ready(time.Now())
	if len(batch) == 0 && mayBlock {
		b.unlock()
		if wait < 0 {
			<-b.wake
		} else {
			select {
			case <-b.wake:
			case <-time.After(wait):
			}
		}
		b.mu.Lock()
		batch, _ = b.ready(time.Now())
	}
	for _, s := range batch {
		s.dispatching = true
	}
	d := b.disp
	b.unlock()

	for _, s := range batch {
		keep := d != nil && d.Invoke(s.closure)

		b.mu.Lock()
		s.dispatching = false
		if !keep || s.removed {
			if _, ok := b.sources[s.tag]; ok {
				delete(b.sources, s.tag)
				b.releaseClosure(s.closure)
			}
		} else if s.interval > 0 {
			s.due = time.Now().Add(s.interval)
		}
		b.unlock()
	}
	return len(batch) > 0
}

// Pending reports whether a source is ready to dispatch.
func (b *Backend) Pending() bool {
	b.mu.Lock()
	defer b.unlock()
	ready, _ := b.ready(time.Now())
	return len(ready) > 0
}

// MainLoopNew implements g_main_loop_new on the default context.
func (b *Backend) MainLoopNew() ptr {
	b.mu.Lock()
	defer b.unlock()
	p := b.alloc(32, "GMainLoop")
	b.loops[p] = &mainLoop{refs: 1}
	return p
}

func (b *Backend) loop(p ptr, fn string) *mainLoop {
	l, ok := b.loops[p]
	if !ok {
		b.critical("%s: %#x is not a main loop", fn, uintptr(p))
		return nil
	}
	return l
}

// MainLoopRef implements g_main_loop_ref.
func (b *Backend) MainLoopRef(p ptr) ptr {
	b.mu.Lock()
	defer b.unlock()
	if l := b.loop(p, "g_main_loop_ref"); l != nil {
		l.refs++
	}
	return p
}

// MainLoopUnref implements g_main_loop_unref.
func (b *Backend) MainLoopUnref(p ptr) {
	b.mu.Lock()
	defer b.unlock()
	l := b.loop(p, "g_main_loop_unref")
	if l == nil {
		return
	}
	l.refs--
	if l.refs == 0 {
		delete(b.loops, p)
		b.free(p)
	}
}

// MainLoopRun implements g_main_loop_run.
func (b *Backend) MainLoopRun(p ptr) {
	b.mu.Lock()
	l := b.loop(p, "g_main_loop_run")
	if l == nil {
		b.unlock()
		return
	}
	l.refs++
	l.running = true
	l.quit = false
	b.unlock()

	for {
		b.mu.Lock()
		quit := l.quit
		b.unlock()
		if quit {
			break
		}
		b.MainContextIteration(true)
	}

	b.mu.Lock()
	l.running = false
	b.unlock()
	b.MainLoopUnref(p)
}

// MainLoopQuit implements g_main_loop_quit.
func (b *Backend) MainLoopQuit(p ptr) {
	b.mu.Lock()
	defer b.unlock()
	if l := b.loop(p, "g_main_loop_quit"); l != nil {
		l.quit = true
		b.wakeup()
	}
}

// MainLoopIsRunning implements g_main_loop_is_running.
func (b *Backend) MainLoopIsRunning(p ptr) bool {
	b.mu.Lock()
	defer b.unlock()
	l := b.loop(p, "g_main_loop_is_running")
	return l != nil && l.running
}
