package models

// KnowledgeEntry is a taught answer. Question is stored normalized and is
// unique: teaching the same question again replaces the answer.
type KnowledgeEntry struct {
	Question string
	Answer   string
}
