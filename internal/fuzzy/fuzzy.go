// Package fuzzy ranks stored questions by how closely they resemble a prompt
// that had no exact match.
package fuzzy

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/dmitrijs2005/gophbot/internal/textx"
)

const (
	DefaultLimit  = 3
	DefaultCutoff = 0.6
)

// Suggester returns up to Limit corpus entries whose similarity to the
// prompt is at least Cutoff.
type Suggester struct {
	Limit  int
	Cutoff float64
}

func NewSuggester(limit int, cutoff float64) *Suggester {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultCutoff
	}
	return &Suggester{Limit: limit, Cutoff: cutoff}
}

type candidate struct {
	text  string
	score float64
}

// Suggest scores every corpus entry against the normalized prompt and
// returns the best ones, highest score first. Equal scores keep corpus
// order. The result is nil when nothing reaches the cutoff.
func (s *Suggester) Suggest(prompt string, corpus []string) []string {
	if len(corpus) == 0 {
		return nil
	}

	m := difflib.NewMatcher(nil, split(textx.Normalize(prompt)))

	var found []candidate
	for _, q := range corpus {
		m.SetSeq1(split(q))
		// Same order of bounds as difflib.get_close_matches: the cheap
		// upper bounds discard most entries before the full ratio.
		if m.RealQuickRatio() < s.Cutoff || m.QuickRatio() < s.Cutoff {
			continue
		}
		if r := m.Ratio(); r >= s.Cutoff {
			found = append(found, candidate{text: q, score: r})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].score > found[j].score
	})
	if len(found) > s.Limit {
		found = found[:s.Limit]
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.text
	}
	return out
}

// Score is the similarity ratio of a and b in [0, 1], computed over runes.
func Score(a, b string) float64 {
	return difflib.NewMatcher(split(a), split(b)).Ratio()
}

func split(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
