// Package melody implements the rhythm synthesizer and the
// constraint-guided stochastic search that assigns scale degrees to
// it.
package melody

import "errors"

// ErrInfeasible is returned when a target span cannot be filled from
// the fixed rhythmic primitive set (a span shorter than the smallest
// primitive, for instance).
var ErrInfeasible = errors.New("melody: infeasible rhythm request")
