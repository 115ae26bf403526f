package scan

import "testing"

func TestSkipRules(t *testing.T) {
	rules := DefaultSkipRules()

	testCases := []struct {
		path string
		skip bool
	}{
		{"notes.md", true},
		{"NOTES.MD", true},
		{"docs/guide.md", true},
		{"logo.png", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"anim.gif", true},
		{"paper.pdf", true},
		{"icon.svg", true},
		{"favicon.ico", true},
		{"bundle.zip", true},
		{"dump.gz", true},
		{".env.example", true},
		{"config/.env.example", true},
		{"LICENSE", true},
		{"COPYING", true},
		{".github/workflows/ci.yml", true},
		{"config.py", false},
		{"app.go", false},
		{"README.txt", false},
		{".env", false},
		{"LICENSE.go", false},
		{"github/file.go", false},
		{"markdown.go", false},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			if got := rules.Skip(tc.path); got != tc.skip {
				t.Errorf("Skip(%q) = %v, want %v", tc.path, got, tc.skip)
			}
		})
	}
}

func TestSkipRulesExtended(t *testing.T) {
	rules := DefaultSkipRules()
	rules.Extensions = append(rules.Extensions, ".lock")
	rules.Prefixes = append(rules.Prefixes, "vendor/")

	if !rules.Skip("Gemfile.lock") {
		t.Error("expected extended extension to skip")
	}
	if !rules.Skip("vendor/pkg/lib.go") {
		t.Error("expected extended prefix to skip")
	}
	if rules.Skip("app.go") {
		t.Error("expected app.go to remain scannable")
	}
}

func TestLooksBinary(t *testing.T) {
	if !looksBinary([]byte("abc\x00def")) {
		t.Error("expected NUL byte to mark content binary")
	}
	if looksBinary([]byte("plain text\nwith lines\n")) {
		t.Error("expected text content to not look binary")
	}
}
