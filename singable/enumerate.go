package singable

// Slot is one position in an Enumerate or Repeat sequence. A Slot
// with more than one element plays its members simultaneously (use
// Simultaneous); a Slot with exactly one behaves like a normal child
// (use One).
type Slot []Singable

// One wraps a single child as a non-simultaneous slot.
func One(s Singable) Slot { return Slot{s} }

// Simultaneous groups several children into one slot that all start
// together.
func Simultaneous(ss ...Singable) Slot { return Slot(ss) }

type parallel struct {
	children []Singable
}

// Parallel concatenates every child's stream, preserving each key's
// own absolute Start. Children overlapping in time therefore sound
// simultaneous even though the stream itself is a simple
// concatenation, since nothing here re-times the keys.
func Parallel() func([]Singable) Singable {
	return func(children []Singable) Singable {
		return &parallel{children: children}
	}
}

func (p *parallel) Sing() Stream {
	var out []Key
	for _, c := range p.children {
		out = append(out, Materialize(c)...)
	}
	return sliceStream(out)
}

type shiftTime struct {
	child Singable
	dt    float64
}

func (s *shiftTime) Sing() Stream {
	keys := Materialize(s.child)
	out := make([]Key, len(keys))
	for i, k := range keys {
		k.Start += s.dt
		out[i] = k
	}
	return sliceStream(out)
}

// ShiftTime delays every event in the child by dt beats.
func ShiftTime(dt float64) Transformer {
	return func(child Singable) Singable { return &shiftTime{child: child, dt: dt} }
}

type enumerate struct {
	children []Slot
	interval *float64
}

// Enumerate lays its slots out one after another. With interval nil,
// each slot's start is the previous slot's furthest extent; with
// interval set, slots are spaced at that fixed beat distance
// regardless of their own length.
func Enumerate(interval *float64) func([]Slot) Singable {
	return func(children []Slot) Singable {
		return &enumerate{children: children, interval: interval}
	}
}

func (e *enumerate) Sing() Stream {
	var out []Key
	t := 0.0
	for _, slot := range e.children {
		span := 0.0
		for _, child := range slot {
			shifted := ShiftTime(t)(child)
			keys := Materialize(shifted)
			out = append(out, keys...)
			for _, k := range keys {
				if end := k.Start + k.Length - t; end > span {
					span = end
				}
			}
		}
		if e.interval != nil {
			t += *e.interval
		} else {
			t += span
		}
	}
	return sliceStream(out)
}

type repeat struct {
	child    Singable
	n        int
	interval *float64
}

// Repeat plays child n times back to back, spaced the same way
// Enumerate spaces its slots.
func Repeat(n int, interval *float64) Transformer {
	return func(child Singable) Singable { return &repeat{child: child, n: n, interval: interval} }
}

func (r *repeat) Sing() Stream {
	slots := make([]Slot, r.n)
	for i := range slots {
		slots[i] = One(r.child)
	}
	return Enumerate(r.interval)(slots).Sing()
}
