package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// postQueueSize bounds pending host callbacks between ticks
const postQueueSize = 64

// Loop runs Game on a fixed tick in its own goroutine
// Each tick drains posted callbacks, updates, then calls frame to render
// Handles drift without busy-wait; Stop is required teardown
type Loop struct {
	game  *Game
	frame func()

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time
	source           TimeSource

	// Tick counter for metrics
	tickCount atomic.Uint64

	posts chan func(*Game)

	// Called with the recovered value when the tick goroutine panics; nil re-panics
	crashHandler func(any)

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop creates a loop for game at interval; frame may be nil (headless)
func NewLoop(game *Game, interval time.Duration, frame func()) *Loop {
	if interval <= 0 {
		interval = time.Duration(game.cfg.TickSeconds() * float64(time.Second))
	}
	return &Loop{
		game:         game,
		frame:        frame,
		tickInterval: interval,
		source:       NewTimeProvider(),
		posts:        make(chan func(*Game), postQueueSize),
		stopChan:     make(chan struct{}),
	}
}

// Post queues fn to run on the loop goroutine before the next tick
// Returns false when the loop is stopped or the queue is full
func (l *Loop) Post(fn func(*Game)) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.posts <- fn:
		return true
	default:
		return false
	}
}

// SetCrashHandler installs a panic handler for the tick goroutine
// Keeps the engine independent of the host's terminal; call before Start
func (l *Loop) SetCrashHandler(fn func(any)) {
	l.crashHandler = fn
}

// Start begins the tick goroutine; repeated calls are ignored
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		go l.run()
	}
}

// Stop halts the tick goroutine and waits for it; safe to call more than once
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.Load() {
			l.wg.Wait()
		}
	})
}

// Ticks returns the number of ticks run
func (l *Loop) Ticks() uint64 {
	return l.tickCount.Load()
}

// Interval returns the fixed tick duration
func (l *Loop) Interval() time.Duration {
	return l.tickInterval
}

func (l *Loop) run() {
	defer l.wg.Done()
	if l.crashHandler != nil {
		defer func() {
			if r := recover(); r != nil {
				l.crashHandler(r)
			}
		}()
	}

	l.nextTickDeadline = l.source.Now().Add(l.tickInterval)

	timer := time.NewTimer(l.tickInterval)
	defer timer.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-timer.C:
		}

		l.step()

		now := l.source.Now()
		l.nextTickDeadline = l.nextTickDeadline.Add(l.tickInterval)

		// Too far behind: drop missed ticks instead of bursting
		maxBehind := l.tickInterval * 2
		if now.Sub(l.nextTickDeadline) > maxBehind {
			l.nextTickDeadline = now.Add(l.tickInterval)
		}

		sleep := l.nextTickDeadline.Sub(now)
		if sleep < 0 {
			sleep = 0
		}
		timer.Reset(sleep)
	}
}

// step is one tick: posted callbacks, update, render
func (l *Loop) step() {
	for drained := false; !drained; {
		select {
		case fn := <-l.posts:
			fn(l.game)
		default:
			drained = true
		}
	}

	l.game.Tick()
	l.tickCount.Add(1)

	if l.frame != nil {
		l.frame()
	}
}
