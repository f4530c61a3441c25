package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Display selection
	showLines   bool
	showWords   bool
	showChars   bool
	showBytes   bool
	showMaxLine bool

	// Input handling
	recursive       bool
	includePatterns string
	excludePatterns string
	maxSizeBytes    int64
	maxDepth        int
	showHidden      bool
	noIgnore        bool

	// Token counting
	countTokensFlag bool
	tokenizerType   string
	tokenizerModel  string
	tokenizerFile   string

	// Web inputs
	followLinks bool
	linkDepth   int

	// Reporting
	byLanguage      bool
	outputFile      string
	copyToClipboard bool
	pdfOutputFile   string

	// Interactive mode
	interactiveMode bool

	verbose bool

	langData *LanguageTable
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "tally [-lwcm] [PATHS...]",
	Short: "tally counts lines, words, characters, and bytes across files.",
	Long: `Tally computes line, word, character, and byte counts for files,
directories, Git repositories, web pages, and stdin, printing one report row
per input and a total row when more than one input succeeds.`,
	Version: version,
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runMain(cmd, args); code != 0 {
			os.Exit(code)
		}
	},
}

// runMain is the run controller: resolve flags, expand inputs, run the
// batch, emit the report. The return value is the process exit code: 0 when
// every input succeeded, 1 when any failed, 2 when there was nothing to do.
func runMain(cmd *cobra.Command, args []string) int {
	errw := cmd.ErrOrStderr()
	display := resolveDisplay(DisplayFlags{
		Lines:   showLines,
		Words:   showWords,
		Chars:   showChars,
		Bytes:   showBytes,
		MaxLine: showMaxLine,
		Tokens:  countTokensFlag,
	})

	paths := args
	if len(paths) == 0 && interactiveMode {
		selected, err := runInteractiveFinder()
		if err != nil {
			fmt.Fprintf(errw, "tally: interactive selection: %v\n", err)
			return 1
		}
		if selected == nil {
			return 0 // user aborted
		}
		paths = selected
	}
	if len(paths) == 0 {
		fmt.Fprintln(errw, "tally: no input files")
		cmd.Usage()
		return 2
	}

	cfg := runConfig{Display: display, ByLanguage: byLanguage, Langs: langData}
	if countTokensFlag {
		tk, err := newTokenizer(tokenizerType, tokenizerModel, tokenizerFile)
		if err != nil {
			fmt.Fprintf(errw, "tally: token counting disabled: %v\n", err)
			withoutTokens := display
			withoutTokens.Tokens = false
			cfg.Display = resolveDisplay(withoutTokens)
		} else {
			defer tk.Close()
			cfg.Tokenizer = tk
		}
	}

	inputs, tempDirs, expandFailed := collectInputs(paths, errw)
	defer func() {
		for _, dir := range tempDirs {
			logger.Debug().Str("dir", dir).Msg("removing temporary clone")
			_ = os.RemoveAll(dir)
		}
	}()

	var report strings.Builder
	res := runBatch(inputs, cfg, &report, errw)

	if err := emitReport(report.String()); err != nil {
		fmt.Fprintf(errw, "tally: %v\n", err)
		return 1
	}
	if res.Failed+expandFailed > 0 {
		return 1
	}
	return 0
}

func init() {
	cobra.OnInitialize(initLogging, initConfig, initLanguages)

	// Display selection
	rootCmd.Flags().BoolVarP(&showLines, "lines", "l", false, "Show line count")
	rootCmd.Flags().BoolVarP(&showWords, "words", "w", false, "Show word count")
	rootCmd.Flags().BoolVarP(&showBytes, "bytes", "c", false, "Show byte count")
	rootCmd.Flags().BoolVarP(&showChars, "chars", "m", false, "Show character count")
	rootCmd.Flags().BoolVarP(&showMaxLine, "max-line-length", "L", false, "Show length of the longest line")

	// Input handling
	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Count the files inside directory arguments")
	rootCmd.Flags().StringVarP(&includePatterns, "include", "i", "", "Patterns to include when walking directories (comma-separated, e.g. *.go,*.md)")
	viper.BindPFlag("include", rootCmd.Flags().Lookup("include"))
	rootCmd.Flags().StringVarP(&excludePatterns, "exclude", "e", "", "Patterns to exclude when walking directories (comma-separated)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("default_excludes", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().Int64VarP(&maxSizeBytes, "max-size", "s", 0, "Maximum file size in bytes when walking directories (0 for no limit)")
	viper.BindPFlag("max_size", rootCmd.Flags().Lookup("max-size"))
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum directory depth to walk (0 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.Flags().Lookup("max-depth"))
	rootCmd.Flags().BoolVarP(&showHidden, "hidden", "H", false, "Include hidden files and directories")
	viper.BindPFlag("hidden", rootCmd.Flags().Lookup("hidden"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect .gitignore files when walking directories")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	// Token counting
	rootCmd.Flags().BoolVar(&countTokensFlag, "tokens", false, "Show LLM token count")
	viper.BindPFlag("tokens", rootCmd.Flags().Lookup("tokens"))
	rootCmd.Flags().StringVar(&tokenizerType, "tokenizer", "tiktoken", "Tokenizer to use: tiktoken or huggingface")
	viper.BindPFlag("tokenizer", rootCmd.Flags().Lookup("tokenizer"))
	rootCmd.Flags().StringVar(&tokenizerModel, "model", "", "Model name for the tokenizer (e.g. gpt-4o, gpt2)")
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	rootCmd.Flags().StringVar(&tokenizerFile, "tokenizer-file", "", "Path to a local tokenizer file")
	viper.BindPFlag("tokenizer_file", rootCmd.Flags().Lookup("tokenizer-file"))

	// Web inputs
	rootCmd.Flags().BoolVar(&followLinks, "follow-links", false, "Follow links when counting web pages")
	viper.BindPFlag("follow_links", rootCmd.Flags().Lookup("follow-links"))
	rootCmd.Flags().IntVar(&linkDepth, "link-depth", 1, "Maximum depth when following links")
	viper.BindPFlag("link_depth", rootCmd.Flags().Lookup("link-depth"))

	// Reporting
	rootCmd.Flags().BoolVar(&byLanguage, "by-language", false, "Append a per-language breakdown after the total row")
	viper.BindPFlag("by_language", rootCmd.Flags().Lookup("by-language"))
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Save the report to the specified file")
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "C", false, "Copy the report to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save the report as PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))

	// Interactive mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Open an interactive file picker when no paths are given")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	viper.SetDefault("max_size", 0)
	viper.SetDefault("max_depth", 0)
	viper.SetDefault("include", "")
	viper.SetDefault("tokenizer", "tiktoken")
	viper.SetDefault("model", "")
	viper.SetDefault("follow_links", false)
	viper.SetDefault("link_depth", 1)
	viper.SetDefault("default_excludes", []string{})
	viper.SetDefault("hidden", false)
	viper.SetDefault("no_ignore", false)
}

// initConfig reads in the config file and TALLY_* environment variables.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "tally"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TALLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug().Str("path", viper.ConfigFileUsed()).Msg("using config file")
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintf(os.Stderr, "tally: reading config file: %v\n", err)
	}

	// The config's default_excludes act as the default for the exclude flag;
	// an explicit -e overrides them.
	if !rootCmd.Flags().Changed("exclude") {
		excludePatterns = strings.Join(viper.GetStringSlice("default_excludes"), ",")
	}
}

// initLanguages loads the language detection table for --by-language.
func initLanguages() {
	langData = loadLanguageTable()
}

func main() {
	// The default help and version flags must exist before the argument
	// vector is sanitized, or -h would be reported as unknown.
	rootCmd.InitDefaultHelpFlag()
	rootCmd.InitDefaultVersionFlag()
	rootCmd.SetArgs(sanitizeArgs(rootCmd.Flags(), os.Args[1:], os.Stderr))
	rootCmd.Execute()
}
