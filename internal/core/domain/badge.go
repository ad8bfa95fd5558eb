package domain

// Badge identifiers, unlocked by crossing fixed thresholds.
const (
	BadgeHelper    = "helper"    // 50+ points
	BadgeSuperstar = "superstar" // 100+ points
	BadgeLegend    = "legend"    // 200+ points
	BadgeChampion  = "champion"  // 500+ points
	BadgeGamer     = "gamer"     // 5+ games played
	BadgeMentor    = "mentor"    // 3+ mentees
)

// scoreThresholds are ascending; BadgesFor is monotonic in score because
// every threshold check is a lower bound.
var scoreThresholds = []struct {
	points int64
	badge  string
}{
	{50, BadgeHelper},
	{100, BadgeSuperstar},
	{200, BadgeLegend},
	{500, BadgeChampion},
}

// BadgeStats carries the auxiliary counters that unlock non-score badges.
type BadgeStats struct {
	GamesPlayed int64
	Mentees     int64
}

// BadgesFor recomputes the badge set from the current score and counters.
func BadgesFor(score int64, stats BadgeStats) []string {
	var badges []string
	for _, t := range scoreThresholds {
		if score >= t.points {
			badges = append(badges, t.badge)
		}
	}
	if stats.GamesPlayed >= 5 {
		badges = append(badges, BadgeGamer)
	}
	if stats.Mentees >= 3 {
		badges = append(badges, BadgeMentor)
	}
	return badges
}

// MergeBadges unions the stored badge list with a freshly derived one, so
// an already-persisted badge is never revoked (high-water mark).
func MergeBadges(stored, derived []string) []string {
	seen := make(map[string]struct{}, len(stored)+len(derived))
	merged := make([]string, 0, len(stored)+len(derived))
	for _, lists := range [][]string{stored, derived} {
		for _, b := range lists {
			if _, ok := seen[b]; ok {
				continue
			}
			seen[b] = struct{}{}
			merged = append(merged, b)
		}
	}
	return merged
}
