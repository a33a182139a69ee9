package trainer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/fuzzy"
	"github.com/dmitrijs2005/gophbot/internal/intent"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbot/internal/server/services"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newChat() *services.ChatService {
	return services.NewChatService(repomanager.NewMemoryRepositoryManager(), intent.DefaultLexicon(), fuzzy.NewSuggester(3, 0.6), logging.Nop())
}

func run(t *testing.T, r Resolver, input string, prompts bool) []string {
	t.Helper()
	var out bytes.Buffer
	tr := New(r, strings.NewReader(input), &out, prompts, logging.Nop())
	require.NoError(t, tr.Run(context.Background()))
	return strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
}

func TestRun_ExitWords(t *testing.T) {
	for _, w := range []string{"salir", "EXIT", " quit "} {
		t.Run(w, func(t *testing.T) {
			lines := run(t, newChat(), w+"\nhola\n", false)
			assert.Equal(t, []string{banner, "Chatbot: Hasta luego!"}, lines)
		})
	}
}

func TestRun_IntentAndEOF(t *testing.T) {
	lines := run(t, newChat(), "hola\n\ngracias", false)
	assert.Equal(t, []string{
		banner,
		"Chatbot: ¡Hola! ¿En qué puedo ayudarte?",
		"Chatbot: ¡De nada! Siempre estoy aquí para ayudarte.",
	}, lines)
}

func TestRun_LearnsUnknownAnswer(t *testing.T) {
	chat := newChat()
	input := strings.Join([]string{
		"¿Cuál es tu nombre?",
		"Me llamo Bot",
		"cuál es tu nombre",
		"salir",
	}, "\n")

	lines := run(t, chat, input, false)
	assert.Equal(t, []string{
		banner,
		"No sé la respuesta. ¿Cómo debería responder? Chatbot: Gracias, ahora lo recordaré para la próxima vez.",
		"Chatbot: Me llamo Bot",
		"Chatbot: Hasta luego!",
	}, lines)

	h, err := chat.History(context.Background())
	require.NoError(t, err)
	assert.Len(t, h, 2)
}

func TestRun_EmptyAnswerSkipsLearning(t *testing.T) {
	chat := newChat()
	lines := run(t, chat, "¿Cuál es tu nombre?\n\nsalir\n", false)
	assert.Equal(t, []string{
		banner,
		"No sé la respuesta. ¿Cómo debería responder? Chatbot: Hasta luego!",
	}, lines)

	h, err := chat.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestRun_SuggestionsAreNotLearned(t *testing.T) {
	chat := newChat()
	require.NoError(t, chat.Teach(context.Background(), "cual es tu nombre", "Bot"))

	lines := run(t, chat, "cual es tu nombr\n", false)
	assert.Equal(t, []string{
		banner,
		"Chatbot: No encontré una respuesta exacta. ¿Quisiste decir?: cual es tu nombre",
	}, lines)
}

func TestRun_PrintsPromptsWhenInteractive(t *testing.T) {
	lines := run(t, newChat(), "salir\n", true)
	assert.Equal(t, []string{banner, "Tú: Chatbot: Hasta luego!"}, lines)
}

type failingResolver struct{}

func (failingResolver) Resolve(context.Context, string) (*services.Reply, error) {
	return nil, errors.Join(common.ErrorUnavailable, errors.New("dial tcp: refused"))
}
func (failingResolver) Learn(context.Context, string, string) (string, error) { return "", nil }
func (failingResolver) Messages() intent.Messages                             { return intent.Messages{} }

func TestRun_ReportsFailuresAndContinues(t *testing.T) {
	lines := run(t, failingResolver{}, "hola\nsalir\n", false)
	assert.Equal(t, []string{
		banner,
		"Chatbot: error: storage unavailable",
		"Chatbot: Hasta luego!",
	}, lines)
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	tr := New(newChat(), strings.NewReader("hola\n"), &out, false, logging.Nop())
	require.NoError(t, tr.Run(ctx))
	assert.Equal(t, banner+"\n", out.String())
}

// lockedBuffer lets the test read output while Run is still writing it.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRun_CancelInterruptsBlockedRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		waitFor string
	}{
		{name: "at input prompt", input: "", waitFor: userPrompt},
		{name: "at learn prompt", input: "¿Cuál es tu nombre?\n", waitFor: "¿Cómo debería responder? "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, pw := io.Pipe()
			t.Cleanup(func() { _ = pw.Close() })

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			chat := newChat()
			out := &lockedBuffer{}
			tr := New(chat, pr, out, true, logging.Nop())

			errCh := make(chan error, 1)
			go func() { errCh <- tr.Run(ctx) }()

			if tt.input != "" {
				_, err := pw.Write([]byte(tt.input))
				require.NoError(t, err)
			}
			require.Eventually(t, func() bool {
				return strings.HasSuffix(out.String(), tt.waitFor)
			}, time.Second, 5*time.Millisecond)

			cancel()

			select {
			case err := <-errCh:
				require.NoError(t, err)
			case <-time.After(time.Second):
				t.Fatal("Run did not return after cancellation")
			}

			h, err := chat.History(context.Background())
			require.NoError(t, err)
			assert.Empty(t, h)
		})
	}
}

func TestIsInteractive(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	isTerminal = func(int) bool { return true }
	assert.True(t, IsInteractive(nil))
}
