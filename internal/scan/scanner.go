package scan

import (
	"fmt"

	"github.com/secretgate/secretgate/internal/gitx"
)

// Config is the immutable configuration for one scan: the compiled pattern
// set and the skip rules. Tests substitute their own.
type Config struct {
	Rules *RuleSet
	Skip  SkipRules
}

// DefaultConfig returns the built-in patterns and skip rules.
func DefaultConfig() Config {
	return Config{
		Rules: MustRuleSet(BuiltinPatterns()),
		Skip:  DefaultSkipRules(),
	}
}

// Finding is a file flagged because its staged content matched a pattern.
// Rule names the first matching pattern.
type Finding struct {
	Path string
	Rule string
}

// Result is the terminal outcome of one scan.
type Result struct {
	Findings []Finding
}

// Blocked reports whether the commit should be rejected.
func (r Result) Blocked() bool {
	return len(r.Findings) > 0
}

// Paths returns the flagged paths in scan order.
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		paths = append(paths, f.Path)
	}
	return paths
}

// Check classifies a single file. It returns nil when the path is
// skip-listed, the content is binary, or nothing matches. Pure function of
// its arguments so per-file logic is unit-testable on its own.
func (c Config) Check(path string, content []byte) *Finding {
	if c.Skip.Skip(path) {
		return nil
	}
	if looksBinary(content) {
		return nil
	}
	if !c.Rules.Match(content) {
		return nil
	}

	f := &Finding{Path: path}
	if rule, ok := c.Rules.MatchRule(content); ok {
		f.Rule = rule
	}
	return f
}

// EventLogger receives structured scan events. A nil logger disables logging.
type EventLogger interface {
	Log(event, path, rule string, details map[string]interface{})
}

// Scanner runs the gate over a staging area.
type Scanner struct {
	cfg    Config
	stager gitx.Stager
	logger EventLogger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLogger attaches an event logger to the scanner.
func WithLogger(l EventLogger) Option {
	return func(s *Scanner) { s.logger = l }
}

// New creates a Scanner over the given staging collaborator.
func New(cfg Config, stager gitx.Stager, opts ...Option) *Scanner {
	s := &Scanner{cfg: cfg, stager: stager}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan inspects every staged, non-skipped file and aggregates findings.
// Files are processed sequentially; a file whose staged blob cannot be
// fetched is skipped without failing the run.
func (s *Scanner) Scan() (Result, error) {
	paths, err := s.stager.ChangedPaths()
	if err != nil {
		return Result{}, fmt.Errorf("failed to list staged files: %w", err)
	}
	if len(paths) == 0 {
		s.log("scan_empty", "", "", nil)
		return Result{}, nil
	}

	var res Result
	for _, path := range paths {
		if s.cfg.Skip.Skip(path) {
			s.log("file_skipped", path, "", nil)
			continue
		}

		content, err := s.stager.StagedContent(path)
		if err != nil {
			// Not a finding: a blob that cannot be resolved (e.g. a
			// delete slipping through the listing) is unscannable.
			s.log("file_unreadable", path, "", map[string]interface{}{"error": err.Error()})
			continue
		}

		if f := s.cfg.Check(path, content); f != nil {
			res.Findings = append(res.Findings, *f)
			s.log("finding", f.Path, f.Rule, nil)
		}
	}

	s.log("scan_result", "", "", map[string]interface{}{
		"files":    len(paths),
		"findings": len(res.Findings),
		"blocked":  res.Blocked(),
	})
	return res, nil
}

func (s *Scanner) log(event, path, rule string, details map[string]interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Log(event, path, rule, details)
}
