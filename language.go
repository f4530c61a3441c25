package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguageInfo holds the detection fields for one language, in the same
// shape a linguist-style languages.yml uses.
type LanguageInfo struct {
	Type       string   `yaml:"type"`
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageTable maps file extensions and exact filenames to language names,
// used by the --by-language breakdown.
type LanguageTable struct {
	extensions map[string]string // ".go" -> "Go"
	filenames  map[string]string // "Makefile" -> "Makefile"
}

// builtinLanguages covers the common cases so --by-language works without a
// languages.yml on disk.
var builtinLanguages = map[string]LanguageInfo{
	"C":          {Extensions: []string{".c", ".h"}},
	"C++":        {Extensions: []string{".cpp", ".cc", ".cxx", ".hpp"}},
	"CSS":        {Extensions: []string{".css"}},
	"Go":         {Extensions: []string{".go"}},
	"HTML":       {Extensions: []string{".html", ".htm"}},
	"Java":       {Extensions: []string{".java"}},
	"JavaScript": {Extensions: []string{".js", ".mjs", ".cjs"}},
	"JSON":       {Extensions: []string{".json"}},
	"Makefile":   {Filenames: []string{"Makefile", "makefile", "GNUmakefile"}},
	"Markdown":   {Extensions: []string{".md", ".markdown"}},
	"Python":     {Extensions: []string{".py"}},
	"Ruby":       {Extensions: []string{".rb"}},
	"Rust":       {Extensions: []string{".rs"}},
	"Shell":      {Extensions: []string{".sh", ".bash"}},
	"Text":       {Extensions: []string{".txt"}},
	"TOML":       {Extensions: []string{".toml"}},
	"TypeScript": {Extensions: []string{".ts", ".tsx"}},
	"YAML":       {Extensions: []string{".yml", ".yaml"}},
}

// loadLanguageTable builds the detection table from the built-in set, then
// overlays a languages.yml from the config dir or the current directory when
// one exists. A broken override file is a warning, not a failure.
func loadLanguageTable() *LanguageTable {
	table := newLanguageTable(builtinLanguages)

	configPaths := []string{}
	if home, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(home, ".config", "tally"))
	}
	configPaths = append(configPaths, ".")

	for _, p := range configPaths {
		path := filepath.Join(p, "languages.yml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := table.mergeFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "tally: could not load %s: %v\n", path, err)
		} else {
			logger.Debug().Str("path", path).Msg("loaded language definitions")
		}
		break
	}
	return table
}

func newLanguageTable(langs map[string]LanguageInfo) *LanguageTable {
	table := &LanguageTable{
		extensions: make(map[string]string),
		filenames:  make(map[string]string),
	}
	table.merge(langs)
	return table
}

func (t *LanguageTable) merge(langs map[string]LanguageInfo) {
	for name, info := range langs {
		for _, ext := range info.Extensions {
			t.extensions[strings.ToLower(ext)] = name
		}
		for _, fname := range info.Filenames {
			t.filenames[fname] = name
		}
	}
}

func (t *LanguageTable) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var langs map[string]LanguageInfo
	if err := yaml.Unmarshal(raw, &langs); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	t.merge(langs)
	return nil
}

// Detect determines the language for a path. Exact filename matches take
// precedence over extension matches.
func (t *LanguageTable) Detect(path string) (string, bool) {
	if t == nil {
		return "", false
	}
	baseName := filepath.Base(path)
	if lang, ok := t.filenames[baseName]; ok {
		return lang, true
	}
	if ext := strings.ToLower(filepath.Ext(baseName)); ext != "" {
		if lang, ok := t.extensions[ext]; ok {
			return lang, true
		}
	}
	return "", false
}
