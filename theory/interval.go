package theory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Quality is an interval quality: doubly-diminished through
// doubly-augmented. Which subset is valid for a given interval number
// depends on whether the number falls in the perfect family (1, 4, 5,
// and their compounds) or the major family (2, 3, 6, 7, and theirs).
type Quality string

const (
	DoublyDiminished Quality = "dd"
	Diminished       Quality = "d"
	Minor            Quality = "m"
	Perfect          Quality = "P"
	Major            Quality = "M"
	Augmented        Quality = "A"
	DoublyAugmented  Quality = "AA"
)

var perfectOrder = []Quality{DoublyDiminished, Diminished, Perfect, Augmented, DoublyAugmented}
var majorOrder = []Quality{DoublyDiminished, Diminished, Minor, Major, Augmented, DoublyAugmented}

// Interval is a diatonic interval: a staff-distance number (1 =
// unison, 8 = octave, and so on through compounds) together with a
// quality and an inversion flag. Two intervals are numerically equal
// when their Semitones agree, even if their Number/Quality spelling
// differs (an augmented fourth and a diminished fifth both count six
// semitones but are not the same Interval value).
type Interval struct {
	Number   int
	Quality  Quality
	Inverted bool
}

func isPerfectFamily(number int) bool {
	f := ((number - 1) % 7) + 1
	return f == 1 || f == 4 || f == 5
}

var fundamentalSemitones = map[int]int{1: 0, 2: 2, 3: 4, 4: 5, 5: 7, 6: 9, 7: 11}

func indexOfQuality(order []Quality, q Quality) int {
	for i, o := range order {
		if o == q {
			return i
		}
	}
	return -1
}

// NewInterval validates that quality is legal for number's family
// before constructing the interval.
func NewInterval(number int, quality Quality, inverted bool) (Interval, error) {
	if number < 1 {
		return Interval{}, fmt.Errorf("theory: interval number %d: %w", number, ErrDomainRange)
	}
	if isPerfectFamily(number) {
		if indexOfQuality(perfectOrder, quality) < 0 {
			return Interval{}, fmt.Errorf("theory: quality %q invalid for perfect-family interval %d: %w", quality, number, ErrDomainRange)
		}
	} else if indexOfQuality(majorOrder, quality) < 0 {
		return Interval{}, fmt.Errorf("theory: quality %q invalid for major-family interval %d: %w", quality, number, ErrDomainRange)
	}
	return Interval{Number: number, Quality: quality, Inverted: inverted}, nil
}

var intervalPattern = regexp.MustCompile(`^(-)?(AA|A|P|M|m|dd|d)(\d+)$`)

// ParseInterval parses notation like "M3", "-P5", or "dd5".
func ParseInterval(s string) (Interval, error) {
	m := intervalPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Interval{}, fmt.Errorf("theory: %q is not a valid interval: %w", s, ErrParse)
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return Interval{}, fmt.Errorf("theory: %q is not a valid interval: %w", s, ErrParse)
	}
	return NewInterval(number, Quality(m[2]), m[1] == "-")
}

// magnitudeSemitones is the unsigned semitone span, ignoring Inverted.
func (i Interval) magnitudeSemitones() (int, error) {
	f := ((i.Number - 1) % 7) + 1
	octaves := (i.Number - 1) / 7
	base := fundamentalSemitones[f]

	var offset int
	if isPerfectFamily(i.Number) {
		idx := indexOfQuality(perfectOrder, i.Quality)
		if idx < 0 {
			return 0, fmt.Errorf("theory: quality %q invalid for perfect-family interval %d: %w", i.Quality, i.Number, ErrDomainRange)
		}
		offset = idx - 2
	} else {
		idx := indexOfQuality(majorOrder, i.Quality)
		if idx < 0 {
			return 0, fmt.Errorf("theory: quality %q invalid for major-family interval %d: %w", i.Quality, i.Number, ErrDomainRange)
		}
		offset = idx - 3
	}
	return base + 12*octaves + offset, nil
}

// Semitones is the signed semitone span; inversion negates it.
func (i Interval) Semitones() int {
	m, err := i.magnitudeSemitones()
	if err != nil {
		return 0
	}
	if i.Inverted {
		return -m
	}
	return m
}

// Equal compares two intervals by semitone span, not by spelling.
func (i Interval) Equal(other Interval) bool {
	return i.Semitones() == other.Semitones()
}

// Invert returns the same interval with the inversion flag flipped.
func (i Interval) Invert() Interval {
	return Interval{Number: i.Number, Quality: i.Quality, Inverted: !i.Inverted}
}

// Fundamental collapses a compound interval's number into its 1-7
// simple form, preserving quality and inversion.
func (i Interval) Fundamental() Interval {
	f := ((i.Number - 1) % 7) + 1
	return Interval{Number: f, Quality: i.Quality, Inverted: i.Inverted}
}

func (i Interval) String() string {
	sign := ""
	if i.Inverted {
		sign = "-"
	}
	return sign + string(i.Quality) + strconv.Itoa(i.Number)
}

// Named intervals used throughout the kernel and generator.
var (
	Unison          = Interval{1, Perfect, false}
	MinorSecond     = Interval{2, Minor, false}
	MajorSecond     = Interval{2, Major, false}
	MinorThird      = Interval{3, Minor, false}
	MajorThird      = Interval{3, Major, false}
	PerfectFourth   = Interval{4, Perfect, false}
	DiminishedFifth = Interval{5, Diminished, false}
	PerfectFifth    = Interval{5, Perfect, false}
	AugmentedFifth  = Interval{5, Augmented, false}
	MinorSixth      = Interval{6, Minor, false}
	MajorSixth      = Interval{6, Major, false}
	MinorSeventh    = Interval{7, Minor, false}
	MajorSeventh    = Interval{7, Major, false}
	PerfectOctave   = Interval{8, Perfect, false}

	// Compound tensions used by the reharmonizer's available-tension
	// tables (9ths, 11ths, 13ths above the chord root).
	MinorNinth        = Interval{9, Minor, false}
	MajorNinth        = Interval{9, Major, false}
	AugmentedNinth    = Interval{9, Augmented, false}
	PerfectEleventh   = Interval{11, Perfect, false}
	AugmentedEleventh = Interval{11, Augmented, false}
	MinorThirteenth   = Interval{13, Minor, false}
	MajorThirteenth   = Interval{13, Major, false}
)
