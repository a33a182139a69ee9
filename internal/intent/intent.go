// Package intent classifies a prompt into a coarse conversational intent by
// matching lemmatized tokens against a small hand-curated vocabulary, and
// holds the canned replies for each intent.
package intent

// Intent is the coarse purpose of a prompt.
type Intent string

const (
	Greeting    Intent = "saludo"
	Farewell    Intent = "despedida"
	Thanks      Intent = "agradecimiento"
	HelpRequest Intent = "ayuda"
	Unknown     Intent = "desconocida"
)

// Ordered lists the matchable intents in the order they are tested for
// every token.
var Ordered = []Intent{Greeting, Farewell, Thanks, HelpRequest}

// Parse maps a name to a matchable Intent.
func Parse(name string) (Intent, bool) {
	for _, i := range Ordered {
		if string(i) == name {
			return i, true
		}
	}
	return Unknown, false
}

// Responses is the intent response table.
type Responses map[Intent]string

// ResponseFor returns the canned reply for i. Unknown never has one.
func (r Responses) ResponseFor(i Intent) (string, bool) {
	if i == Unknown {
		return "", false
	}
	s, ok := r[i]
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
