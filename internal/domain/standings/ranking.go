package standings

import (
	"sort"

	"github.com/blocboard/blocboard/internal/domain/model"
	"github.com/blocboard/blocboard/internal/domain/types"
)

// DefaultPodiumSize is the podium cap used when the caller does not supply one.
const DefaultPodiumSize = 3

// less orders tallies by the ranking key: tops desc, zones desc, top
// attempts asc, zone attempts asc, display name asc. The name stage makes
// the order total even when every numeric key ties.
func less(a, b model.UserTally) bool {
	if a.Tops != b.Tops {
		return a.Tops > b.Tops
	}
	if a.Zones != b.Zones {
		return a.Zones > b.Zones
	}
	if a.TopAttempts != b.TopAttempts {
		return a.TopAttempts < b.TopAttempts
	}
	if a.ZoneAttempts != b.ZoneAttempts {
		return a.ZoneAttempts < b.ZoneAttempts
	}
	return a.DisplayName < b.DisplayName
}

// sameTuple reports whether two tallies tie on the full numeric key.
// Display name is excluded: it orders tied users but does not split their rank.
func sameTuple(a, b model.UserTally) bool {
	return a.Tops == b.Tops &&
		a.Zones == b.Zones &&
		a.TopAttempts == b.TopAttempts &&
		a.ZoneAttempts == b.ZoneAttempts
}

// Podium sorts tallies by the ranking key and assigns dense ranks: users
// with an identical numeric tuple share a rank, and the next distinct tuple
// gets previous rank + 1. The result is truncated strictly by rank value
// <= maxRank, so a tie straddling the cutoff returns more rows than
// maxRank. An empty tally list yields an empty podium.
func Podium(tallies []model.UserTally, maxRank int) []types.Standing {
	if maxRank <= 0 {
		maxRank = DefaultPodiumSize
	}
	if len(tallies) == 0 {
		return []types.Standing{}
	}

	sorted := make([]model.UserTally, len(tallies))
	copy(sorted, tallies)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })

	podium := make([]types.Standing, 0, maxRank)
	rank := 1
	for i, t := range sorted {
		// Increment on tuple change, never by tie-group size.
		if i > 0 && !sameTuple(sorted[i-1], t) {
			rank++
		}
		if rank > maxRank {
			break
		}
		podium = append(podium, types.Standing{
			UserID:            t.UserID,
			UserDisplayName:   t.DisplayName,
			Rank:              rank,
			TotalTops:         t.Tops,
			TotalZones:        t.Zones,
			TotalTopAttempts:  t.TopAttempts,
			TotalZoneAttempts: t.ZoneAttempts,
		})
	}
	return podium
}
