package scan

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is one named credential shape. Expr is an RE2 expression matched
// case-sensitively anywhere in staged content.
type Pattern struct {
	Name string
	Expr string
}

// Variable names recognized by the assignment pattern. XAI_API_KEY and
// POLYGON_API_KEY are the two provider variables called out in remediation
// guidance; the rest are generic secret-sounding names.
const secretVarNames = `XAI_API_KEY|POLYGON_API_KEY|ACCESS_TOKEN|API_KEY|SECRET|TOKEN`

// BuiltinPatterns returns the default secret pattern set.
func BuiltinPatterns() []Pattern {
	return []Pattern{
		{"xai-api-key", `xai-[A-Za-z0-9]{20,}`},
		{"aws-access-key-id", `AKIA[0-9A-Z]{16}`},
		{"github-pat", `ghp_[A-Za-z0-9]{36}`},
		{"google-api-key", `AIza[0-9A-Za-z_-]{35}`},
		{"stripe-secret-key", `sk_live_[0-9a-zA-Z]{24,}`},
		{"sendgrid-api-key", `SG\.[A-Za-z0-9_.-]{20,}`},
		{"slack-token", `xox[abprs]-[A-Za-z0-9-]{10,}`},
		{"openai-api-key", `sk-[A-Za-z0-9]{20,}`},
		{"secret-assignment", `\b(?:` + secretVarNames + `)\b\s*[:=]\s*["']?[A-Za-z0-9_-]{16,}`},
		{"bearer-token", `Bearer\s+(?:xai-|sk_live_|sk-|ghp_|AKIA|AIza|SG\.|xox[abprs]-)[A-Za-z0-9_.-]{10,}`},
	}
}

// RuleSet is a compiled, immutable pattern set. The gate uses the combined
// alternation for a single pass per file; per-pattern expressions stay
// available for rule attribution in audit output and event logs.
type RuleSet struct {
	patterns []Pattern
	compiled []*regexp.Regexp
	combined *regexp.Regexp
}

// NewRuleSet compiles patterns into a RuleSet. A pattern that fails to
// compile is reported by name so config mistakes are easy to find.
func NewRuleSet(patterns []Pattern) (*RuleSet, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("empty pattern set")
	}

	rs := &RuleSet{patterns: patterns}
	parts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p.Expr)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p.Name, err)
		}
		rs.compiled = append(rs.compiled, re)
		parts = append(parts, "(?:"+p.Expr+")")
	}

	combined, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, fmt.Errorf("failed to combine patterns: %w", err)
	}
	rs.combined = combined
	return rs, nil
}

// MustRuleSet is NewRuleSet for pattern sets known to compile (the built-ins).
func MustRuleSet(patterns []Pattern) *RuleSet {
	rs, err := NewRuleSet(patterns)
	if err != nil {
		panic(err)
	}
	return rs
}

// Match reports whether any pattern matches anywhere in content.
func (rs *RuleSet) Match(content []byte) bool {
	return rs.combined.Match(content)
}

// MatchRule returns the name of the first pattern that matches content.
func (rs *RuleSet) MatchRule(content []byte) (string, bool) {
	for i, re := range rs.compiled {
		if re.Match(content) {
			return rs.patterns[i].Name, true
		}
	}
	return "", false
}

// Patterns returns the pattern set for display purposes.
func (rs *RuleSet) Patterns() []Pattern {
	out := make([]Pattern, len(rs.patterns))
	copy(out, rs.patterns)
	return out
}
