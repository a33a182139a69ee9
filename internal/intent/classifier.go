package intent

import (
	"strings"
	"unicode"

	"github.com/dmitrijs2005/gophbot/internal/textx"
)

// Classifier maps raw text to an Intent.
type Classifier interface {
	Classify(text string) Intent
}

// LexiconClassifier returns the intent of the first token whose lemma is in
// the vocabulary. Tokens are scanned left to right; for each token the
// intents are tested in Ordered order.
type LexiconClassifier struct {
	keywords map[string]Intent
	lemmas   map[string]string
}

var _ Classifier = (*LexiconClassifier)(nil)

func NewLexiconClassifier(lex *Lexicon) *LexiconClassifier {
	c := &LexiconClassifier{
		keywords: make(map[string]Intent),
		lemmas:   make(map[string]string, len(lex.Lemmas)),
	}
	for _, i := range Ordered {
		for _, kw := range lex.Keywords[i] {
			key := fold(kw)
			if _, taken := c.keywords[key]; !taken {
				c.keywords[key] = i
			}
		}
	}
	for form, base := range lex.Lemmas {
		c.lemmas[fold(form)] = fold(base)
	}
	return c
}

func (c *LexiconClassifier) Classify(text string) Intent {
	for _, tok := range Tokenize(text) {
		if i, ok := c.keywords[c.Lemma(tok)]; ok {
			return i
		}
	}
	return Unknown
}

// Tokenize lowercases text, splits it on every rune that is neither a
// letter nor a digit, and folds accents.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, f := range fields {
		fields[i] = textx.Fold(f)
	}
	return fields
}

var encliticSuffixes = []string{"nos", "me", "te", "lo", "la"}

const minStemLen = 3

// Lemma reduces a folded token to its base form. Vocabulary words are kept
// as they are; otherwise the lemma table is consulted, first for the token
// and then for the token with an enclitic pronoun removed. Plural forms are
// only known through the lemma table: stripping a bare "s" turns unrelated
// words ("sales", "chaos") into vocabulary.
func (c *LexiconClassifier) Lemma(tok string) string {
	if base, ok := c.lookup(tok); ok {
		return base
	}
	for _, suffix := range encliticSuffixes {
		stem, ok := strings.CutSuffix(tok, suffix)
		if !ok || len([]rune(stem)) < minStemLen {
			continue
		}
		if base, ok := c.lookup(stem); ok {
			return base
		}
	}
	return tok
}

func (c *LexiconClassifier) lookup(tok string) (string, bool) {
	if _, ok := c.keywords[tok]; ok {
		return tok, true
	}
	base, ok := c.lemmas[tok]
	return base, ok
}
