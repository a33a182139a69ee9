package intent

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gophbot/internal/textx"
)

// Messages are the fixed texts the resolver and the trainer reply with
// when no intent matches.
type Messages struct {
	SuggestionPrefix string `yaml:"suggestion_prefix"`
	Unknown          string `yaml:"unknown"`
	Learned          string `yaml:"learned"`
	TrainerPrompt    string `yaml:"trainer_prompt"`
}

// Lexicon is the whole configurable vocabulary: keywords and replies per
// intent, a lemma table of inflected forms, and resolver messages.
type Lexicon struct {
	Keywords map[Intent][]string
	Replies  Responses
	Lemmas   map[string]string
	Messages Messages
}

// DefaultLexicon returns the built-in Spanish vocabulary.
//
// The multi-word farewells ("hasta luego", "hasta la vista", "nos vemos")
// are kept for completeness but can never match: the classifier compares
// one token at a time.
func DefaultLexicon() *Lexicon {
	return &Lexicon{
		Keywords: map[Intent][]string{
			Greeting:    {"saludar", "hola"},
			Farewell:    {"salir", "adios", "chao", "hasta luego", "hasta la vista", "nos vemos"},
			Thanks:      {"gracias", "agradecer"},
			HelpRequest: {"ayuda", "asistir"},
		},
		Replies: Responses{
			Greeting:    "¡Hola! ¿En qué puedo ayudarte?",
			Farewell:    "¡Hasta luego! Que tengas un buen día.",
			Thanks:      "¡De nada! Siempre estoy aquí para ayudarte.",
			HelpRequest: "Puedo responder preguntas o aprender nuevas respuestas. ¡Solo dime en qué necesitas ayuda!",
		},
		Lemmas: map[string]string{
			"saludo":         "saludar",
			"saludos":        "saludar",
			"saluda":         "saludar",
			"saludamos":      "saludar",
			"saludando":      "saludar",
			"salgo":          "salir",
			"salimos":        "salir",
			"saliendo":       "salir",
			"chau":           "chao",
			"agradezco":      "agradecer",
			"agradece":       "agradecer",
			"agradecemos":    "agradecer",
			"agradecido":     "agradecer",
			"agradecida":     "agradecer",
			"agradecimiento": "agradecer",
			"ayudar":         "ayuda",
			"ayudas":         "ayuda",
			"ayudo":          "ayuda",
			"ayude":          "ayuda",
			"asiste":         "asistir",
			"asisto":         "asistir",
			"asistencia":     "asistir",
		},
		Messages: Messages{
			SuggestionPrefix: "No encontré una respuesta exacta. ¿Quisiste decir?: ",
			Unknown:          "No sé la respuesta. Por favor, proporciona una respuesta.",
			Learned:          "Gracias, ahora lo recordaré para la próxima vez.",
			TrainerPrompt:    "No sé la respuesta. ¿Cómo debería responder? ",
		},
	}
}

type lexiconFile struct {
	Intents map[string]struct {
		Keywords []string `yaml:"keywords"`
		Response string   `yaml:"response"`
	} `yaml:"intents"`
	Lemmas   map[string]string `yaml:"lemmas"`
	Messages Messages          `yaml:"messages"`
}

// LoadLexicon reads a YAML lexicon from path and layers it over the
// defaults: sections the file leaves out keep their built-in values.
func LoadLexicon(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open lexicon: %w", err)
	}
	defer f.Close()

	return DecodeLexicon(f)
}

// DecodeLexicon is LoadLexicon over an arbitrary reader.
func DecodeLexicon(r io.Reader) (*Lexicon, error) {
	var file lexiconFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}

	lex := DefaultLexicon()
	for name, section := range file.Intents {
		i, ok := Parse(name)
		if !ok {
			return nil, fmt.Errorf("decode lexicon: unknown intent %q", name)
		}
		if len(section.Keywords) > 0 {
			lex.Keywords[i] = section.Keywords
		}
		if section.Response != "" {
			lex.Replies[i] = section.Response
		}
	}
	for form, base := range file.Lemmas {
		lex.Lemmas[form] = base
	}

	m := file.Messages
	if m.SuggestionPrefix != "" {
		lex.Messages.SuggestionPrefix = m.SuggestionPrefix
	}
	if m.Unknown != "" {
		lex.Messages.Unknown = m.Unknown
	}
	if m.Learned != "" {
		lex.Messages.Learned = m.Learned
	}
	if m.TrainerPrompt != "" {
		lex.Messages.TrainerPrompt = m.TrainerPrompt
	}

	return lex, nil
}

// fold brings vocabulary entries to the same form as tokens.
func fold(s string) string {
	return textx.Fold(textx.Normalize(s))
}
