package rating

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrOutOfRange is returned for ratings outside Min..Max.
var ErrOutOfRange = errors.New("rating out of range")

// Rating is a slider value on the 1-5 scale.
type Rating int

const (
	Min     Rating = 1
	Max     Rating = 5
	Default Rating = 3
)

// Names are the slider identifiers the form uses, in order.
var Names = []string{"rating1", "rating2", "rating3"}

// Parse reads a slider value. Blank input yields Default.
func Parse(s string) (Rating, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Default, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rating %q: %w", s, err)
	}
	r := Rating(n)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return r, nil
}

// Valid reports whether r lies on the scale.
func (r Rating) Valid() bool {
	return r >= Min && r <= Max
}

func (r Rating) String() string {
	return strconv.Itoa(int(r))
}

// Mean returns the arithmetic mean of ratings rounded to one decimal.
// It returns 0 for no ratings.
func Mean(ratings ...Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, r := range ratings {
		sum += int(r)
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}

// Average formats the rounded mean with exactly one decimal, e.g. "4.0".
func Average(ratings ...Rating) string {
	return strconv.FormatFloat(Mean(ratings...), 'f', 1, 64)
}
