package standings

// Summary holds a division's rollup counters.
type Summary struct {
	ParticipantCount int
	ProblemCount     int
	TotalTops        int
	TotalZones       int
}

// Summarize computes a division's rollup from its loaded facts.
//
// ParticipantCount is the cardinality of the union of explicit registrants
// and users with at least one ascent in the division, built as an explicit
// id set so a user present in both sources counts once. TotalTops and
// TotalZones count ascent rows, one per user-problem pair, not attempts.
// A division with zero problems reports all zeroes.
func Summarize(df DivisionFacts) Summary {
	seen := make(map[string]struct{})
	for _, p := range df.Participants {
		seen[p.UserID] = struct{}{}
	}
	for _, a := range df.Ascents {
		seen[a.UserID] = struct{}{}
	}

	s := Summary{
		ParticipantCount: len(seen),
		ProblemCount:     len(df.Problems),
	}
	for _, a := range df.Ascents {
		if a.Topped {
			s.TotalTops++
		}
		if a.Zone {
			s.TotalZones++
		}
	}
	return s
}
