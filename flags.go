package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// resolveDisplay turns the flags as parsed into the effective display set.
// When the caller selected nothing, the classic lines/words/bytes trio is
// shown; the result is never all-false.
func resolveDisplay(parsed DisplayFlags) DisplayFlags {
	if parsed == (DisplayFlags{}) {
		return DisplayFlags{Lines: true, Words: true, Bytes: true}
	}
	return parsed
}

// sanitizeArgs filters the raw argument vector before cobra parses it.
// Unknown flag letters (and unknown long flags) are warnings, not failures:
// each one gets a diagnostic on errw and is dropped, while known letters in
// the same cluster and all positional arguments pass through untouched.
func sanitizeArgs(fs *pflag.FlagSet, args []string, errw io.Writer) []string {
	out := make([]string, 0, len(args))
	expectValue := false
	for i := 0; i < len(args); i++ {
		arg := args[i]

		// The previous token was a value-taking flag without an attached
		// value, so this token is that value even when it starts with a
		// dash (e.g. "--max-depth -1").
		if expectValue {
			expectValue = false
			out = append(out, arg)
			continue
		}

		if arg == "--" {
			// Everything after the terminator is positional.
			out = append(out, args[i:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			name := strings.TrimPrefix(arg, "--")
			attached := strings.IndexByte(name, '=') >= 0
			if attached {
				name = name[:strings.IndexByte(name, '=')]
			}
			f := fs.Lookup(name)
			if f == nil {
				fmt.Fprintf(errw, "tally: unknown option --%s (ignored)\n", name)
				continue
			}
			out = append(out, arg)
			expectValue = !attached && f.Value.Type() != "bool"
			continue
		}

		// "-" alone means stdin and is a positional argument, like any
		// token that does not start with a dash.
		if len(arg) < 2 || arg[0] != '-' {
			out = append(out, arg)
			continue
		}

		cleaned, wantsValue := sanitizeCluster(fs, arg, errw)
		out = append(out, cleaned...)
		expectValue = wantsValue
	}
	return out
}

// sanitizeCluster rewrites one short-flag cluster like "-lwx", keeping known
// letters and warning about the rest. A letter whose flag takes a value
// claims the remainder of the token, so "-oreport.txt" survives intact; when
// nothing is attached the value is the next token, which the caller must
// pass through untouched.
func sanitizeCluster(fs *pflag.FlagSet, arg string, errw io.Writer) ([]string, bool) {
	letters := arg[1:]
	expectValue := false
	var kept strings.Builder
	for i, r := range letters {
		f := fs.ShorthandLookup(string(r))
		if f == nil {
			fmt.Fprintf(errw, "tally: unknown option -%c (ignored)\n", r)
			continue
		}
		kept.WriteRune(r)
		if f.Value.Type() != "bool" {
			rest := letters[i+len(string(r)):]
			kept.WriteString(rest)
			expectValue = rest == ""
			break
		}
	}
	if kept.Len() == 0 {
		return nil, false
	}
	return []string{"-" + kept.String()}, expectValue
}
