package main

import (
	"fmt"
	"os"
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
	hf "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Tokenizer is an interface for different tokenizer implementations.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

const defaultTiktokenModel = "gpt-4o"
const defaultHFModel = "gpt2"

// --- Tiktoken Wrapper ---

type TiktokenWrapper struct {
	ttk *tiktoken.Tiktoken
}

func (w *TiktokenWrapper) CountTokens(text string) int {
	if w.ttk == nil {
		return 0
	}
	return len(w.ttk.EncodeOrdinary(text))
}

func (w *TiktokenWrapper) Close() {}

// --- HuggingFace (sugarme) Wrapper ---

type HFTokenizerWrapper struct {
	htk *hf.Tokenizer
}

func (w *HFTokenizerWrapper) CountTokens(text string) int {
	if w.htk == nil {
		return 0
	}
	en, err := w.htk.EncodeSingle(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tally: tokenizer failed to encode text: %v\n", err)
		return 0
	}
	return len(en.Tokens)
}

func (w *HFTokenizerWrapper) Close() {}

// newTokenizer builds the tokenizer selected by the --tokenizer flags.
func newTokenizer(kind, model, file string) (Tokenizer, error) {
	logger.Debug().Str("type", kind).Str("model", model).Str("file", file).Msg("initializing tokenizer")

	switch strings.ToLower(kind) {
	case "tiktoken":
		return loadTiktoken(model)
	case "huggingface":
		return loadHuggingFace(model, file)
	default:
		return nil, fmt.Errorf("unsupported tokenizer type %q: use tiktoken or huggingface", kind)
	}
}

func loadTiktoken(model string) (Tokenizer, error) {
	if model == "" {
		model = defaultTiktokenModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		logger.Warn().Str("model", model).Err(err).Msg("tiktoken model not found, falling back to default")
		tke, err = tiktoken.EncodingForModel(defaultTiktokenModel)
		if err != nil {
			return nil, fmt.Errorf("getting tiktoken encoding for default model %q: %w", defaultTiktokenModel, err)
		}
	}
	return &TiktokenWrapper{ttk: tke}, nil
}

func loadHuggingFace(model, file string) (Tokenizer, error) {
	if file != "" {
		ttk, err := pretrained.FromFile(file)
		if err != nil {
			return nil, fmt.Errorf("loading tokenizer from file %s: %w", file, err)
		}
		return &HFTokenizerWrapper{htk: ttk}, nil
	}

	if model == "" {
		model = defaultHFModel
	}
	logger.Debug().Str("model", model).Msg("fetching tokenizer definition (may download files)")

	configFilePath, err := hf.CachedPath(model, "tokenizer.json")
	if err != nil {
		return nil, fmt.Errorf("getting cache path for model %s: %w", model, err)
	}
	ttk, err := pretrained.FromFile(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("loading pretrained tokenizer for model %s: %w", model, err)
	}
	return &HFTokenizerWrapper{htk: ttk}, nil
}
