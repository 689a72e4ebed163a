package leaderboarddomain

// Entry is one row of a ranking. Rank 1 is the best.
type Entry struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Score  int64  `json:"score"`
}

// SampleRanking is the ranking served for every game until scores are stored.
// Submissions do not change it.
func SampleRanking() []Entry {
	return []Entry{
		{Rank: 1, Player: "ACE", Score: 99999},
		{Rank: 2, Player: "PRO", Score: 85000},
		{Rank: 3, Player: "GXR", Score: 72000},
	}
}

// Medal returns the badge shown next to a rank.
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return "🏅"
	}
}
