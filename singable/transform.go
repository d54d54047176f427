package singable

import "reharmonia/theory"

func mapKeys(child Singable, f func(Key) Key) Stream {
	keys := Materialize(child)
	out := make([]Key, len(keys))
	for i, k := range keys {
		out[i] = f(k)
	}
	return sliceStream(out)
}

type lengthen struct {
	child Singable
	scale float64
}

// Lengthen scales every key's Length by scale, leaving Start alone.
func Lengthen(scale float64) Transformer {
	return func(child Singable) Singable { return &lengthen{child: child, scale: scale} }
}

func (l *lengthen) Sing() Stream {
	return mapKeys(l.child, func(k Key) Key {
		k.Length *= l.scale
		return k
	})
}

type longify struct {
	child Singable
	dt    float64
}

// Longify adds a constant dt to every key's Length.
func Longify(dt float64) Transformer {
	return func(child Singable) Singable { return &longify{child: child, dt: dt} }
}

func (l *longify) Sing() Stream {
	return mapKeys(l.child, func(k Key) Key {
		k.Length += l.dt
		return k
	})
}

type transpose struct {
	child    Singable
	interval theory.Interval
}

// Transpose shifts every non-rest key's pitch by interval.
func Transpose(interval theory.Interval) Transformer {
	return func(child Singable) Singable { return &transpose{child: child, interval: interval} }
}

func (tr *transpose) Sing() Stream {
	return mapKeys(tr.child, func(k Key) Key {
		if k.Note == nil {
			return k
		}
		n := k.Note.Add(tr.interval)
		return k.withNote(&n)
	})
}

type amplify struct {
	child Singable
	mult  float64
}

// Amplify scales every key's Velocity by mult.
func Amplify(mult float64) Transformer {
	return func(child Singable) Singable { return &amplify{child: child, mult: mult} }
}

func (a *amplify) Sing() Stream {
	return mapKeys(a.child, func(k Key) Key {
		k.Velocity *= a.mult
		return k
	})
}

type atChannel struct {
	child   Singable
	channel int
}

// AtChannel forces every key onto a fixed MIDI channel.
func AtChannel(channel int) Transformer {
	return func(child Singable) Singable { return &atChannel{child: child, channel: channel} }
}

func (a *atChannel) Sing() Stream {
	return mapKeys(a.child, func(k Key) Key {
		k.Channel = a.channel
		return k
	})
}

type atNote struct {
	child Singable
	note  theory.Note
}

// AtNote forces every non-rest key onto a fixed pitch, useful for a
// one-note percussion voice driven by a rhythm Singable.
func AtNote(note theory.Note) Transformer {
	return func(child Singable) Singable { return &atNote{child: child, note: note} }
}

func (a *atNote) Sing() Stream {
	return mapKeys(a.child, func(k Key) Key {
		if k.Note == nil {
			return k
		}
		n := a.note
		return k.withNote(&n)
	})
}

type bound struct {
	child  Singable
	lo, hi theory.Note
}

// Bound octave-shifts every non-rest key's pitch until it falls
// within [lo, hi].
func Bound(lo, hi theory.Note) Transformer {
	return func(child Singable) Singable { return &bound{child: child, lo: lo, hi: hi} }
}

func (b *bound) Sing() Stream {
	return mapKeys(b.child, func(k Key) Key {
		if k.Note == nil {
			return k
		}
		n := *k.Note
		for n.MIDI() > b.hi.MIDI() {
			n = n.AddOctaves(-1)
		}
		for n.MIDI() < b.lo.MIDI() {
			n = n.AddOctaves(1)
		}
		return k.withNote(&n)
	})
}

type harmonize struct {
	child    Singable
	interval theory.Interval
}

// Harmonize pairs every key of child with the same key transposed by
// interval, emitting both.
func Harmonize(interval theory.Interval) Transformer {
	return func(child Singable) Singable { return &harmonize{child: child, interval: interval} }
}

func (h *harmonize) Sing() Stream {
	primary := Materialize(h.child)
	secondary := Materialize(Transpose(h.interval)(h.child))
	n := len(primary)
	if len(secondary) < n {
		n = len(secondary)
	}
	out := make([]Key, 0, 2*n)
	for i := 0; i < n; i++ {
		out = append(out, primary[i], secondary[i])
	}
	return sliceStream(out)
}
