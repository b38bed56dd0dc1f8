package alienkitty

import "time"

// FrameTime is what the Clock hands to every consumer once per display
// refresh. Time is in seconds since the first tick, Delta in milliseconds.
type FrameTime struct {
	Time  float64
	Delta float64
	Frame int
}

// Ms returns Time in milliseconds.
func (f FrameTime) Ms() float64 {
	return f.Time * 1000
}

type tickHandler struct {
	id uint32
	fn func(FrameTime)
}

// Clock produces monotonic frame times and dispatches them to registered
// consumers in registration order.
type Clock struct {
	now      func() time.Time
	start    time.Time
	last     FrameTime
	started  bool
	handlers []tickHandler
	nextID   uint32
}

// NewClock creates a clock reading the given time source. A nil source uses
// time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Tick advances the clock by one frame and invokes every consumer.
// A time source that goes backwards yields a zero delta and unchanged time.
func (c *Clock) Tick() FrameTime {
	t := c.now()
	if !c.started {
		c.started = true
		c.start = t
		c.last = FrameTime{}
	} else {
		elapsed := t.Sub(c.start).Seconds()
		if elapsed < c.last.Time {
			elapsed = c.last.Time
		}
		c.last = FrameTime{
			Time:  elapsed,
			Delta: (elapsed - c.last.Time) * 1000,
			Frame: c.last.Frame + 1,
		}
	}
	for _, h := range c.handlers {
		h.fn(c.last)
	}
	return c.last
}

// Last returns the most recent frame time.
func (c *Clock) Last() FrameTime {
	return c.last
}

// OnTick registers fn to run on every Tick. The returned handle detaches it.
func (c *Clock) OnTick(fn func(FrameTime)) CallbackHandle {
	c.nextID++
	id := c.nextID
	c.handlers = append(c.handlers, tickHandler{id: id, fn: fn})
	return CallbackHandle{remove: func() { c.removeHandler(id) }}
}

func (c *Clock) removeHandler(id uint32) {
	for i := range c.handlers {
		if c.handlers[i].id == id {
			copy(c.handlers[i:], c.handlers[i+1:])
			c.handlers[len(c.handlers)-1] = tickHandler{}
			c.handlers = c.handlers[:len(c.handlers)-1]
			return
		}
	}
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	remove func()
}

// Remove unregisters the callback. Safe to call more than once.
func (h *CallbackHandle) Remove() {
	if h.remove == nil {
		return
	}
	h.remove()
	h.remove = nil
}
