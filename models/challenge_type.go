package models

// SortDirection says whether a higher or lower result ranks first for a
// challenge type.
type SortDirection int

const (
	HigherIsBetter SortDirection = iota
	LowerIsBetter
)

// ChallengeType is the closed set of supported challenge formats. Each type
// carries its ranking direction and, for rolling-window types, the number of
// days summed from the performance ledger. Adding a format means adding one
// entry here.
type ChallengeType struct {
	Name       string
	Direction  SortDirection
	WindowDays int // 0 for manually submitted results
}

var challengeTypes = map[string]ChallengeType{
	"calories_week":  {Name: "calories_week", Direction: HigherIsBetter, WindowDays: 7},
	"calories_month": {Name: "calories_month", Direction: HigherIsBetter, WindowDays: 30},
	"max_reps":       {Name: "max_reps", Direction: HigherIsBetter},
	"amrap":          {Name: "amrap", Direction: HigherIsBetter},
	"for_time":       {Name: "for_time", Direction: LowerIsBetter},
	"murph":          {Name: "murph", Direction: LowerIsBetter},
}

// ParseChallengeType resolves a challenge type by name.
func ParseChallengeType(name string) (ChallengeType, bool) {
	ct, ok := challengeTypes[name]
	return ct, ok
}

// HasWindow reports whether the type computes its result from the ledger
// over a rolling window instead of accepting a submitted number.
func (ct ChallengeType) HasWindow() bool {
	return ct.WindowDays > 0
}
