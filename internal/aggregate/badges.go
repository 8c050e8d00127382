package aggregate

// Badge is an achievement shown on the dashboard.
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// EvaluateBadges derives achievement state from a summary.
// Bug Hunter has no backing data yet and is always unlocked.
func EvaluateBadges(s Summary) []Badge {
	return []Badge{
		{Name: "Getting Started", Description: "Analyzed 10+ reviews", Unlocked: s.Total >= 10},
		{Name: "Power User", Description: "Analyzed 50+ reviews", Unlocked: s.Total >= 50},
		{Name: "Guardian", Description: "Detected 20+ fake reviews", Unlocked: s.FakeCount >= 20},
		{Name: "Bug Hunter", Description: "Reported 5+ issues", Unlocked: true},
	}
}
