package assemble

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrPhaseGap is returned when fragment numbers are not contiguous.
	ErrPhaseGap = errors.New("phase files are not contiguous")
	// ErrNoUnits is returned when the first fragment has neither steps nor cycles.
	ErrNoUnits = errors.New("missing Step or Cycle headers")
)

// GapError lists the phase numbers absent from a fragment sequence.
type GapError struct {
	Dir     string
	Missing []int
}

func (e *GapError) Error() string {
	nums := make([]string, len(e.Missing))
	for i, n := range e.Missing {
		nums[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s: %v (missing phase %s)", e.Dir, ErrPhaseGap, strings.Join(nums, ", "))
}

func (e *GapError) Unwrap() error { return ErrPhaseGap }
