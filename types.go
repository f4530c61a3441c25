package main

// StatCounts holds the statistics computed for one body of text.
type StatCounts struct {
	Lines   int
	Words   int
	Chars   int // Unicode scalar values, not bytes
	Bytes   int
	MaxLine int // longest line length in characters
	Tokens  int // populated by the run loop when token counting is enabled
}

// DisplayFlags selects which StatCounts fields appear in a report row.
// The zero value means "nothing selected"; resolveDisplay turns that into
// the default lines/words/bytes set.
type DisplayFlags struct {
	Lines   bool
	Words   bool
	Chars   bool
	Bytes   bool
	MaxLine bool
	Tokens  bool
}

// Totals accumulates StatCounts across successfully processed inputs.
// Owned by the run loop; MaxLine takes the maximum rather than the sum.
type Totals struct {
	Counts    StatCounts
	Processed int
}

// Add folds one input's counts into the running totals.
func (t *Totals) Add(c StatCounts) {
	t.Counts.Lines += c.Lines
	t.Counts.Words += c.Words
	t.Counts.Chars += c.Chars
	t.Counts.Bytes += c.Bytes
	t.Counts.Tokens += c.Tokens
	if c.MaxLine > t.Counts.MaxLine {
		t.Counts.MaxLine = c.MaxLine
	}
	t.Processed++
}

// Input is one unit of work for the run loop. Content is pre-loaded for
// sources that are not plain files on disk (stdin, web pages); otherwise
// Path is read when the input is processed.
type Input struct {
	Label   string // what the report row shows
	Path    string // disk path to read; "-" means stdin
	Content []byte // pre-loaded content, used instead of Path when non-nil
}
