package game

// RunGrade ranks how an expedition run went, worst first.
type RunGrade int

const (
	GradeLost RunGrade = iota
	GradeCrippled
	GradeHeld
	GradeProspered
)

func (g RunGrade) String() string {
	switch g {
	case GradeLost:
		return "lost"
	case GradeCrippled:
		return "crippled"
	case GradeHeld:
		return "held"
	case GradeProspered:
		return "prospered"
	default:
		return "unknown"
	}
}

// crippledHull is the mothership hull fraction below which a surviving
// run is graded crippled.
const crippledHull = 0.25

// RunVerdict explains a grade.
type RunVerdict struct {
	Grade        RunGrade
	Survived     bool
	HullFraction float64
	Kills        int
	CraftLost    int
	OreDelivered int
	Description  string
}

// JudgeRun grades a finished or time-limited run from the session state.
func JudgeRun(s *Session) RunVerdict {
	st := s.Stats()
	v := RunVerdict{
		Survived:     s.Outcome() != OutcomeDefeat,
		Kills:        st.EnemiesDestroyed,
		CraftLost:    st.CraftLost + st.FrigatesLost,
		OreDelivered: st.OreDelivered,
	}
	if ms := s.Mothership(); ms != nil {
		v.HullFraction = ms.HealthFraction()
	}

	switch {
	case !v.Survived:
		v.Grade = GradeLost
		v.Description = "expedition_ship_destroyed"
	case v.HullFraction < crippledHull:
		v.Grade = GradeCrippled
		v.Description = "survived_hull_critical"
	case v.OreDelivered > 0 && v.Kills >= v.CraftLost:
		v.Grade = GradeProspered
		v.Description = "ore_delivered_pirates_held"
	case v.Kills < v.CraftLost:
		v.Grade = GradeHeld
		v.Description = "survived_outgunned"
	default:
		v.Grade = GradeHeld
		v.Description = "survived_no_ore"
	}
	return v
}
