package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeWalkTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("package b\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden.txt"), []byte("secret\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "deep"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "c.txt"), []byte("c\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "sub", "deep", "d.txt"), []byte("d\n"), 0644))
	return root
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func TestWalkFilesSkipsHiddenByDefault(t *testing.T) {
	root := makeWalkTree(t)
	files, err := walkFiles(root, walkOptions{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.go", "c.txt", "d.txt"}, baseNames(files))
}

func TestWalkFilesIncludesHiddenWhenAsked(t *testing.T) {
	root := makeWalkTree(t)
	files, err := walkFiles(root, walkOptions{Hidden: true})
	require.NoError(t, err)
	assert.Contains(t, baseNames(files), ".hidden.txt")
}

func TestWalkFilesIncludePatterns(t *testing.T) {
	root := makeWalkTree(t)
	files, err := walkFiles(root, walkOptions{Include: []string{"*.go"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.go"}, baseNames(files))
}

func TestWalkFilesExcludePatterns(t *testing.T) {
	root := makeWalkTree(t)
	files, err := walkFiles(root, walkOptions{Exclude: []string{"*.go"}})
	require.NoError(t, err)
	assert.NotContains(t, baseNames(files), "b.go")
	assert.Contains(t, baseNames(files), "a.txt")
}

func TestWalkFilesMaxDepth(t *testing.T) {
	root := makeWalkTree(t)
	files, err := walkFiles(root, walkOptions{MaxDepth: 1})
	require.NoError(t, err)
	assert.NotContains(t, baseNames(files), "d.txt")
	assert.Contains(t, baseNames(files), "c.txt")
}

func TestWalkFilesMaxSize(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "small.txt"), []byte("ok\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "large.txt"), []byte(strings.Repeat("x", 100)), 0644))

	files, err := walkFiles(root, walkOptions{MaxSize: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"small.txt"}, baseNames(files))
}

func TestWalkFilesRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "kept.txt"), []byte("kept\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "noise.log"), []byte("noise\n"), 0644))

	files, err := walkFiles(root, walkOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"kept.txt"}, baseNames(files))

	files, err = walkFiles(root, walkOptions{NoIgnore: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"kept.txt", "noise.log"}, baseNames(files))
}

func TestWalkOptionsHonorConfigValues(t *testing.T) {
	viper.Set("hidden", true)
	viper.Set("no_ignore", true)
	viper.Set("max_depth", 3)
	viper.Set("max_size", int64(2048))
	viper.Set("include", "*.go,*.md")
	t.Cleanup(func() {
		viper.Set("hidden", false)
		viper.Set("no_ignore", false)
		viper.Set("max_depth", 0)
		viper.Set("max_size", int64(0))
		viper.Set("include", "")
	})

	opts := walkOptionsFromFlags()
	assert.True(t, opts.Hidden)
	assert.True(t, opts.NoIgnore)
	assert.Equal(t, 3, opts.MaxDepth)
	assert.Equal(t, int64(2048), opts.MaxSize)
	assert.Equal(t, []string{"*.go", "*.md"}, opts.Include)
}

func TestCountPathSeparators(t *testing.T) {
	assert.Equal(t, 0, countPathSeparators("file.txt"))
	assert.Equal(t, 1, countPathSeparators(filepath.Join("sub", "file.txt")))
	assert.Equal(t, 2, countPathSeparators(filepath.Join("a", "b", "file.txt")))
	assert.Equal(t, 0, countPathSeparators("."))
}

func TestParsePatterns(t *testing.T) {
	assert.Nil(t, parsePatterns(""))
	assert.Equal(t, []string{"*.go", "*.md"}, parsePatterns("*.go,*.md"))
}
