package awards

import "strings"

type Mode string

const (
	ModeOnEnter   Mode = "on_enter"
	ModeOnSuccess Mode = "on_success"
)

// Rule is the resolved award for a screen: points, the trigger moment
// that fires it, and an optional achievement to record alongside.
// Rules are defined at build time and immutable.
type Rule struct {
	Points        int
	Mode          Mode
	AchievementID string
}

// PatternRule covers a family of screens. Order of declaration is part
// of the contract: the first matching pattern wins. When
// AchievementPrefix is set, the achievement id is synthesized from the
// prefix and the normalized screen key.
type PatternRule struct {
	Matcher           Matcher
	Points            int
	Mode              Mode
	AchievementPrefix string
}

type RuleSet struct {
	exact    map[string]Rule
	patterns []PatternRule
}

// NewRuleSet indexes exact entries under their normalized key so a
// caller-supplied key resolves identically with or without a trailing
// file-extension suffix.
func NewRuleSet(exact map[string]Rule, patterns []PatternRule) *RuleSet {
	idx := make(map[string]Rule, len(exact))
	for k, r := range exact {
		idx[Normalize(k)] = r
	}
	return &RuleSet{exact: idx, patterns: patterns}
}

// Normalize strips the file-extension-like suffix screen keys carry
// when they are derived from component file names.
func Normalize(screenKey string) string {
	return strings.TrimSuffix(screenKey, ".tsx")
}

// Resolve maps a screen key to its award rule. Exact entries always
// take priority; otherwise patterns are tried in declaration order.
// Pure and deterministic, safe to call repeatedly.
func (rs *RuleSet) Resolve(screenKey string) (Rule, bool) {
	key := Normalize(screenKey)
	if rule, ok := rs.exact[key]; ok {
		return rule, true
	}
	for _, p := range rs.patterns {
		if !p.Matcher.Match(key) {
			continue
		}
		rule := Rule{Points: p.Points, Mode: p.Mode}
		if p.AchievementPrefix != "" {
			rule.AchievementID = strings.ToLower(p.AchievementPrefix + "_" + key)
		}
		return rule, true
	}
	return Rule{}, false
}

// Mode reports the trigger mode configured for a screen key, letting a
// caller pre-check before firing a hook.
func (rs *RuleSet) Mode(screenKey string) (Mode, bool) {
	rule, ok := rs.Resolve(screenKey)
	if !ok {
		return "", false
	}
	return rule.Mode, true
}
