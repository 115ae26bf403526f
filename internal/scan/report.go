package scan

import (
	"fmt"
	"io"
)

// WriteReport prints the block banner, every flagged path, and remediation
// guidance. Clean results produce no output.
func WriteReport(w io.Writer, res Result) {
	if !res.Blocked() {
		return
	}

	fmt.Fprintln(w, "🚫 COMMIT BLOCKED: staged files look like they contain secrets")
	fmt.Fprintln(w)
	for _, f := range res.Findings {
		if f.Rule != "" {
			fmt.Fprintf(w, "   %s (%s)\n", f.Path, f.Rule)
		} else {
			fmt.Fprintf(w, "   %s\n", f.Path)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Move credentials into environment variables instead of source:")
	fmt.Fprintln(w, "   export XAI_API_KEY=...       (xAI)")
	fmt.Fprintln(w, "   export POLYGON_API_KEY=...   (Polygon)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "If this is a false positive, bypass the gate once with:")
	fmt.Fprintln(w, "   git commit --no-verify")
}
