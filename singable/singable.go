// Package singable implements the lazy composition graph: a small set
// of combinators that build up timed note (or rest) events out of
// simpler ones. Every combinator is a Singable; calling Sing on one
// produces a fresh, forward-only Stream of Keys.
package singable

import "reharmonia/theory"

// Key is a single timed event: a pitch (or a rest, when Note is nil)
// starting at Start for Length beats, on Channel at Velocity.
type Key struct {
	Start    float64
	Length   float64
	Note     *theory.Note
	Channel  int
	Velocity float64
}

func (k Key) withNote(n *theory.Note) Key {
	k.Note = n
	return k
}

// Sing lets a bare Key act as a one-event Singable, which the
// SelectTime/SelectInterval/SelectIndex combinators rely on when
// handing a single already-materialized event back into a transformer
// function.
func (k Key) Sing() Stream { return sliceStream([]Key{k}) }

// Stream is a forward-only pull iterator. Each call returns the next
// Key and true, or a zero Key and false once exhausted. A Stream must
// not be reused after it reports false; call Sing again on the
// Singable for a fresh pass.
type Stream func() (Key, bool)

// Singable is anything that can be sung: expanded into a Stream of
// Keys. Leaves (Key, MultiKey) and every combinator in this package
// implement it.
type Singable interface {
	Sing() Stream
}

// Transformer is the shape every curried combinator factory returns:
// given a child Singable, produce a new one.
type Transformer func(Singable) Singable

func sliceStream(keys []Key) Stream {
	i := 0
	return func() (Key, bool) {
		if i >= len(keys) {
			return Key{}, false
		}
		k := keys[i]
		i++
		return k, true
	}
}

// Materialize fully drains s into a slice. Every Singable in this
// package is finite, so this always terminates; several combinators
// use it internally to get random access to a child's events.
func Materialize(s Singable) []Key {
	var out []Key
	stream := s.Sing()
	for {
		k, ok := stream()
		if !ok {
			break
		}
		out = append(out, k)
	}
	return out
}

// MultiKey builds a slot of simultaneous keys, one per note, sharing
// start, length, channel, and velocity. Use with Simultaneous to play
// a chord or cluster inside Enumerate/Repeat.
func MultiKey(start, length float64, notes []theory.Note, channel int, velocity float64) []Singable {
	out := make([]Singable, len(notes))
	for i, n := range notes {
		note := n
		out[i] = Key{Start: start, Length: length, Note: &note, Channel: channel, Velocity: velocity}
	}
	return out
}

// Rest builds a single rest key of the given length at start.
func Rest(start, length float64, channel int) Singable {
	return Key{Start: start, Length: length, Note: nil, Channel: channel, Velocity: 0}
}
