package theory

import "errors"

// ErrParse is returned when a textual notation cannot be lexed into a
// well-formed interval, note, or chord.
var ErrParse = errors.New("theory: parse error")

// ErrDomainRange is returned when a notation parses but names a
// combination the kernel does not support (an interval quality not
// valid for its number, a chord tag combination with no consistent
// triad, a roman numeral outside the scale's vocabulary).
var ErrDomainRange = errors.New("theory: domain range error")
