package awards

type MilestoneKind string

const (
	MilestonePointsTotal MilestoneKind = "points_total"
	MilestoneStreakDays  MilestoneKind = "streak_days"
)

// Milestone is a threshold achievement evaluated against the user's
// aggregate stats after a payout, as opposed to screen-bound awards.
type Milestone struct {
	AchievementID string
	Kind          MilestoneKind
	Threshold     int
	XP            int
	Sub           string
}

func (m Milestone) Met(points, streakDays int) bool {
	switch m.Kind {
	case MilestonePointsTotal:
		return points >= m.Threshold
	case MilestoneStreakDays:
		return streakDays >= m.Threshold
	default:
		return false
	}
}

var defaultMilestones = []Milestone{
	{AchievementID: "puntos_100", Kind: MilestonePointsTotal, Threshold: 100, XP: 10, Sub: "100 puntos acumulados"},
	{AchievementID: "puntos_500", Kind: MilestonePointsTotal, Threshold: 500, XP: 25, Sub: "500 puntos acumulados"},
	{AchievementID: "puntos_1000", Kind: MilestonePointsTotal, Threshold: 1000, XP: 50, Sub: "1000 puntos acumulados"},
	{AchievementID: "racha_3", Kind: MilestoneStreakDays, Threshold: 3, XP: 10, Sub: "3 días seguidos"},
	{AchievementID: "racha_7", Kind: MilestoneStreakDays, Threshold: 7, XP: 25, Sub: "7 días seguidos"},
	{AchievementID: "racha_30", Kind: MilestoneStreakDays, Threshold: 30, XP: 100, Sub: "30 días seguidos"},
}

// DefaultMilestones returns the build-time milestone table.
func DefaultMilestones() []Milestone {
	return defaultMilestones
}
