package main

import (
	"strings"
	"unicode/utf8"
)

// countStats computes line, word, character, and byte counts for one body of
// already-decoded text. It is a pure function: no I/O, no failure modes.
//
// Lines counts newline-delimited segments; a trailing newline does not
// produce an extra empty segment, and empty content has zero lines. Words are
// maximal runs of non-whitespace, so extra whitespace between words never
// changes the count.
func countStats(content string) StatCounts {
	c := StatCounts{
		Chars: utf8.RuneCountInString(content),
		Bytes: len(content),
		Words: len(strings.Fields(content)),
	}

	if content == "" {
		return c
	}

	c.Lines = strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		c.Lines++
	}

	for _, line := range strings.Split(content, "\n") {
		if n := utf8.RuneCountInString(line); n > c.MaxLine {
			c.MaxLine = n
		}
	}

	return c
}
