package timestamp

import (
	"math/rand/v2"
	"time"
)

// Default historical window for generated activity
var (
	DefaultStart = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	DefaultEnd   = time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC)
)

// maxRedraws bounds how often Between retries a draw that fell outside its bounds
const maxRedraws = 16

// HourRange is an inclusive range of hours of the day
type HourRange struct {
	From int
	To   int
}

// Policy generates timestamps inside a fixed historical window, skewed towards daytime.
//
// Logic:
//   - Pick a uniformly random instant between the lower bound and the upper bound
//   - Keep its calendar day, replace the time of day:
//     with probability BusinessHourProbability the hour falls in BusinessHours,
//     otherwise in ExtendedHours; minute and second are uniform
//   - Redraw when the result falls outside [lower, upper]; after maxRedraws
//     clamp it, so ordering between parent and child rows always holds
type Policy struct {
	Start                   time.Time
	End                     time.Time
	BusinessHours           HourRange
	ExtendedHours           HourRange
	BusinessHourProbability float64
}

// DefaultPolicy returns the 2020-2024 window with 70% of instants between 9h and 18h
func DefaultPolicy() Policy {
	return Policy{
		Start:                   DefaultStart,
		End:                     DefaultEnd,
		BusinessHours:           HourRange{From: 9, To: 18},
		ExtendedHours:           HourRange{From: 6, To: 22},
		BusinessHourProbability: 0.7,
	}
}

// Window returns the bounds every generated instant falls within
func (p Policy) Window() (start, end time.Time) {
	return p.Start, p.End
}

// Random returns an instant anywhere in the policy window
func (p Policy) Random(rng *rand.Rand) time.Time {
	return p.Between(rng, p.Start, p.End)
}

// After returns an instant between from and the end of the window
func (p Policy) After(rng *rand.Rand, from time.Time) time.Time {
	return p.Between(rng, from, p.End)
}

// Between returns an instant in [from, to]. If to precedes from, from is returned.
func (p Policy) Between(rng *rand.Rand, from, to time.Time) time.Time {
	from = from.UTC()
	to = to.UTC()
	if !to.After(from) {
		return from
	}

	span := int64(to.Sub(from) / time.Second)

	var t time.Time
	for i := 0; i < maxRedraws; i++ {
		t = p.draw(rng, from, span)
		if !t.Before(from) && !t.After(to) {
			return t
		}
	}

	// Windows narrower than the hour ranges can keep missing
	if t.Before(from) {
		return from
	}
	return to
}

func (p Policy) draw(rng *rand.Rand, from time.Time, span int64) time.Time {
	day := from.Add(time.Duration(rng.Int64N(span+1)) * time.Second)

	hours := p.ExtendedHours
	if rng.Float64() < p.BusinessHourProbability {
		hours = p.BusinessHours
	}
	hour := hours.From + rng.IntN(hours.To-hours.From+1)

	return time.Date(day.Year(), day.Month(), day.Day(), hour, rng.IntN(60), rng.IntN(60), 0, time.UTC)
}
