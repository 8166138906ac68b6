package main

import (
	"os"
	"strings"

	"calendar-cli/internal/cli"
	"calendar-cli/internal/model"
)

func isDateArg(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "-") {
		return false
	}
	_, err := model.ParseDateKey(s)
	return err == nil
}

// rewriteDirectDateLookupArgs makes `calendar <date>` work like
// `calendar events get <date>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten
// before parsing. Persistent flags may come first (`calendar --dir x <date>`),
// so the first positional token is located instead of looking at argv[1].
func rewriteDirectDateLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--storage": true,
		"--locale":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	rewriteAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "events", "get")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// The subcommand has to precede "--" or cobra never sees it.
			if i+1 < len(argv) && isDateArg(argv[i+1]) {
				return rewriteAt(i)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if isDateArg(a) {
			return rewriteAt(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectDateLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
