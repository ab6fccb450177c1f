package text

import (
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// Tokenizer splits raw text into an ordered token sequence
type Tokenizer interface {
	Cut(text string) []string
}

// Tokenizer names accepted on the command line
const (
	TokenizerGSE    = "gse"
	TokenizerFields = "fields"
)

// NewTokenizer returns the tokenizer registered under name. Dictionary words
// are added to segmenting tokenizers so each is kept as a single token.
func NewTokenizer(name string, words []string) (Tokenizer, error) {
	switch name {
	case TokenizerGSE, "":
		return NewSegmenter(words)
	case TokenizerFields:
		return FieldsTokenizer{}, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

// Segmenter is a dictionary-based Chinese word segmenter backed by gse
type Segmenter struct {
	seg gse.Segmenter
}

// userWordFreq is high enough that a registered name always beats a split
// into surname and given name.
const userWordFreq = 100000

// NewSegmenter loads the embedded simplified Chinese dictionary and
// registers words as extra dictionary entries.
func NewSegmenter(words []string) (*Segmenter, error) {
	s := &Segmenter{}
	if err := s.seg.LoadDictEmbed("zh_s"); err != nil {
		return nil, fmt.Errorf("loading gse dictionary: %w", err)
	}

	if len(words) > 0 {
		var dict strings.Builder
		for _, w := range words {
			fmt.Fprintf(&dict, "%s %d nr\n", w, userWordFreq)
		}
		if err := s.seg.LoadDictStr(dict.String()); err != nil {
			return nil, fmt.Errorf("registering names: %w", err)
		}
	}

	return s, nil
}

// Cut segments text in accurate mode with HMM for unknown words
func (s *Segmenter) Cut(text string) []string {
	return s.seg.Cut(text, true)
}

// FieldsTokenizer splits on Unicode whitespace. Useful for text that is
// already segmented.
type FieldsTokenizer struct{}

func (FieldsTokenizer) Cut(text string) []string {
	return strings.Fields(text)
}
