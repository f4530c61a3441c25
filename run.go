package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

var errInvalidEncoding = errors.New("invalid UTF-8 content")

// runConfig carries everything the batch loop needs, resolved once up front.
type runConfig struct {
	Display    DisplayFlags
	Tokenizer  Tokenizer // nil when token counting is disabled
	ByLanguage bool
	Langs      *LanguageTable
}

// batchResult summarizes one batch run for exit-code and diagnostic purposes.
type batchResult struct {
	Totals Totals
	Failed int
}

// runBatch processes every input in order: read, validate, count, append one
// report row, fold into the running totals. A failed input produces a single
// diagnostic on errw and no report row; the batch always continues. When more
// than one input succeeded a final row labeled "total" is appended, followed
// by the per-language breakdown when requested.
func runBatch(inputs []Input, cfg runConfig, report *strings.Builder, errw io.Writer) batchResult {
	var res batchResult
	var perLang map[string]*StatCounts
	if cfg.ByLanguage {
		perLang = make(map[string]*StatCounts)
	}

	for _, in := range inputs {
		content, err := readInput(in)
		if err != nil {
			fmt.Fprintf(errw, "tally: %s: %v\n", in.Label, err)
			res.Failed++
			continue
		}

		text := string(content)
		if !utf8.ValidString(text) {
			fmt.Fprintf(errw, "tally: %s: %v\n", in.Label, errInvalidEncoding)
			res.Failed++
			continue
		}

		c := countStats(text)
		if cfg.Tokenizer != nil {
			c.Tokens = cfg.Tokenizer.CountTokens(text)
		}

		report.WriteString(formatRow(c, cfg.Display, in.Label))
		res.Totals.Add(c)

		if perLang != nil {
			name, ok := cfg.Langs.Detect(in.Label)
			if !ok {
				name = "other"
			}
			if _, seen := perLang[name]; !seen {
				perLang[name] = &StatCounts{}
			}
			addCounts(perLang[name], c)
		}
	}

	if res.Totals.Processed > 1 {
		report.WriteString(formatRow(res.Totals.Counts, cfg.Display, "total"))
	}
	if perLang != nil {
		report.WriteString(formatLanguageRows(perLang, cfg.Display))
	}
	return res
}

// readInput loads the full content of one input: pre-loaded bytes, stdin for
// the "-" path, or a regular file on disk.
func readInput(in Input) ([]byte, error) {
	if in.Content != nil {
		return in.Content, nil
	}
	if in.Path == "-" {
		return io.ReadAll(os.Stdin)
	}
	info, err := os.Stat(in.Path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("is a directory (use --recursive to count its files)")
	}
	return os.ReadFile(in.Path)
}

func addCounts(dst *StatCounts, c StatCounts) {
	dst.Lines += c.Lines
	dst.Words += c.Words
	dst.Chars += c.Chars
	dst.Bytes += c.Bytes
	dst.Tokens += c.Tokens
	if c.MaxLine > dst.MaxLine {
		dst.MaxLine = c.MaxLine
	}
}

// collectInputs expands the positional arguments into the ordered list of
// inputs to count. Directories (with --recursive), git URLs, and web URLs
// expand in place so report rows keep command-line order. Expansion failures
// are diagnostics on errw, not batch aborts; the failure count feeds the
// exit code. The returned temp dirs hold git clones and must be removed by
// the caller.
func collectInputs(paths []string, errw io.Writer) (inputs []Input, tempDirs []string, failed int) {
	for _, path := range paths {
		switch {
		case isWebURL(path):
			webInputs, err := collectWebInputs(path)
			if err != nil {
				fmt.Fprintf(errw, "tally: %s: %v\n", path, err)
				failed++
				continue
			}
			inputs = append(inputs, webInputs...)

		case isGitURL(path):
			tempDir, err := cloneGitRepo(path)
			if err != nil {
				fmt.Fprintf(errw, "tally: %s: %v\n", path, err)
				failed++
				continue
			}
			tempDirs = append(tempDirs, tempDir)
			files, err := walkFiles(tempDir, walkOptionsFromFlags())
			if err != nil {
				fmt.Fprintf(errw, "tally: %s: %v\n", path, err)
				failed++
				continue
			}
			for _, f := range files {
				rel := strings.TrimPrefix(strings.TrimPrefix(f, tempDir), string(os.PathSeparator))
				inputs = append(inputs, Input{Label: path + "/" + rel, Path: f})
			}

		case recursive && isDir(path):
			files, err := walkFiles(path, walkOptionsFromFlags())
			if err != nil {
				fmt.Fprintf(errw, "tally: %s: %v\n", path, err)
				failed++
				continue
			}
			for _, f := range files {
				inputs = append(inputs, Input{Label: f, Path: f})
			}

		default:
			inputs = append(inputs, Input{Label: path, Path: path})
		}
	}
	return inputs, tempDirs, failed
}

// isDir reports whether the path exists and is a directory. Stat errors are
// left for the read step so the diagnostic names the real cause.
func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// isWebURL checks if the input string is an HTTP/HTTPS URL.
func isWebURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
