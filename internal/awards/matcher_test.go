package awards

import "testing"

func TestUnitMatcher(t *testing.T) {
	cases := []struct {
		name string
		m    Matcher
		key  string
		want bool
	}{
		{name: "unit_match", m: Unit("N3_B3_U", "_PracticeScreen"), key: "N3_B3_U12_PracticeScreen", want: true},
		{name: "unit_single_digit", m: Unit("N3_B3_U", "_PracticeScreen"), key: "N3_B3_U4_PracticeScreen", want: true},
		{name: "unit_empty_middle", m: Unit("N3_B3_U", "_PracticeScreen"), key: "N3_B3_U_PracticeScreen", want: false},
		{name: "unit_non_digit", m: Unit("N3_B3_U", "_PracticeScreen"), key: "N3_B3_Ux_PracticeScreen", want: false},
		{name: "unit_wrong_block", m: Unit("N3_B3_U", "_PracticeScreen"), key: "N3_B4_U2_PracticeScreen", want: false},
		{name: "unit_no_suffix", m: Unit("N2_B2_U", ""), key: "N2_B2_U9", want: true},
		{name: "affix_prefix_only", m: Affix("B6_", ""), key: "B6_Restaurante", want: true},
		{name: "affix_prefix_missing", m: Affix("B6_", ""), key: "N5_B6", want: false},
		{name: "affix_empty_middle", m: Affix("B6_", ""), key: "B6_", want: false},
		{name: "contains_fold", m: ContainsAnyFold("intro", "browse", "menu", "hub"), key: "KanjiBrowseScreen", want: true},
		{name: "contains_fold_case", m: ContainsAnyFold("intro"), key: "N4INTROScreen", want: true},
		{name: "contains_fold_miss", m: ContainsAnyFold("intro", "hub"), key: "QuizCultural", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.Match(tc.key); got != tc.want {
				t.Fatalf("Match(%q)=%v, want %v", tc.key, got, tc.want)
			}
		})
	}
}

func TestMilestoneMet(t *testing.T) {
	points := Milestone{AchievementID: "puntos_100", Kind: MilestonePointsTotal, Threshold: 100}
	streak := Milestone{AchievementID: "racha_3", Kind: MilestoneStreakDays, Threshold: 3}

	if !points.Met(100, 0) || points.Met(99, 10) {
		t.Fatalf("points milestone threshold")
	}
	if !streak.Met(0, 3) || streak.Met(1000, 2) {
		t.Fatalf("streak milestone threshold")
	}
}
