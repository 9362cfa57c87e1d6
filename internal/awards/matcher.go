package awards

import "strings"

// Matcher accepts or rejects a normalized screen key. Pattern rules
// hold one of the tagged matchers below instead of a regex so the
// registry stays declarative and each family is testable on its own.
type Matcher interface {
	Match(key string) bool
}

type affixMatcher struct {
	prefix string
	suffix string
}

func (m affixMatcher) Match(key string) bool {
	if len(key) <= len(m.prefix)+len(m.suffix) {
		return false
	}
	return strings.HasPrefix(key, m.prefix) && strings.HasSuffix(key, m.suffix)
}

// Affix matches keys enclosed by prefix and suffix with a non-empty
// middle.
func Affix(prefix, suffix string) Matcher {
	return affixMatcher{prefix: prefix, suffix: suffix}
}

type unitMatcher struct {
	prefix string
	suffix string
}

func (m unitMatcher) Match(key string) bool {
	if !strings.HasPrefix(key, m.prefix) || !strings.HasSuffix(key, m.suffix) {
		return false
	}
	middle := key[len(m.prefix) : len(key)-len(m.suffix)]
	if middle == "" {
		return false
	}
	for _, r := range middle {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Unit matches keys of the form prefix + unit number + suffix, e.g.
// "N3_B3_U" + "12" + "_PracticeScreen".
func Unit(prefix, suffix string) Matcher {
	return unitMatcher{prefix: prefix, suffix: suffix}
}

type containsFoldMatcher []string

func (m containsFoldMatcher) Match(key string) bool {
	folded := strings.ToLower(key)
	for _, s := range m {
		if strings.Contains(folded, s) {
			return true
		}
	}
	return false
}

// ContainsAnyFold matches keys containing any of the given substrings,
// case-insensitively.
func ContainsAnyFold(subs ...string) Matcher {
	m := make(containsFoldMatcher, len(subs))
	for i, s := range subs {
		m[i] = strings.ToLower(s)
	}
	return m
}
