// Package trainer is the interactive console driver: it answers prompts
// read line by line and, when it has no answer at all, asks the operator
// for one and learns it.
package trainer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/intent"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/services"
)

const (
	banner     = "Chatbot IA con historial y análisis de intención. Escribe 'salir' para terminar."
	userPrompt = "Tú: "
	speaker    = "Chatbot: "
	farewell   = "Hasta luego!"
)

var exitWords = map[string]struct{}{"salir": {}, "exit": {}, "quit": {}}

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}

// Resolver is what the trainer needs from the chat service.
type Resolver interface {
	Resolve(ctx context.Context, prompt string) (*services.Reply, error)
	Learn(ctx context.Context, prompt, answer string) (string, error)
	Messages() intent.Messages
}

// input is one line read from the operator, or the error that ended input.
type input struct {
	line string
	err  error
}

type Trainer struct {
	resolver Resolver
	reader   *bufio.Reader
	out      io.Writer
	prompts  bool
	logger   logging.Logger

	lines chan input
}

// New builds a trainer reading from in and writing to out. Input prompts
// ("Tú: ") are printed only when prompts is set.
func New(r Resolver, in io.Reader, out io.Writer, prompts bool, l logging.Logger) *Trainer {
	return &Trainer{
		resolver: r,
		reader:   bufio.NewReader(in),
		out:      out,
		prompts:  prompts,
		logger:   l.With("module", "trainer"),
	}
}

// Run loops until an exit word, end of input or ctx cancellation. Resolver
// failures are reported to the operator and do not stop the loop. A
// cancellation interrupts a pending read; the reading goroutine exits on
// its next line or when the input is closed.
func (t *Trainer) Run(ctx context.Context) error {
	t.println(banner)

	done := make(chan struct{})
	defer close(done)
	t.lines = make(chan input)
	go t.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if t.prompts {
			t.print(userPrompt)
		}

		line, err := t.readLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		prompt := strings.TrimSpace(line)
		if prompt == "" {
			continue
		}
		if _, ok := exitWords[strings.ToLower(prompt)]; ok {
			t.println(speaker + farewell)
			return nil
		}

		answer, err := t.respond(ctx, prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			t.logger.Error(ctx, "prompt failed", "error", err)
			t.println(speaker + "error: " + common.Reason(err))
			continue
		}
		if answer != "" {
			t.println(speaker + answer)
		}
	}
}

// respond resolves prompt and runs the learning exchange on a total miss.
// An empty operator answer learns nothing and yields no reply.
func (t *Trainer) respond(ctx context.Context, prompt string) (string, error) {
	reply, err := t.resolver.Resolve(ctx, prompt)
	if err != nil {
		return "", err
	}
	if reply.Outcome != services.OutcomeUnknown {
		return reply.Text, nil
	}

	t.print(t.resolver.Messages().TrainerPrompt)
	answer, err := t.readLine(ctx)
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", nil
	}

	return t.resolver.Learn(ctx, prompt, answer)
}

// readLine waits for the next line or for ctx to be cancelled.
func (t *Trainer) readLine(ctx context.Context) (string, error) {
	select {
	case in := <-t.lines:
		return in.line, in.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLines feeds t.lines until input ends or done is closed. Lines are
// returned without their terminator; a final line without a newline is
// delivered before io.EOF.
func (t *Trainer) readLines(done <-chan struct{}) {
	for {
		line, err := t.reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		var batch []input
		switch {
		case err == nil:
			batch = []input{{line: line}}
		case errors.Is(err, io.EOF) && line != "":
			batch = []input{{line: line}, {err: err}}
		default:
			batch = []input{{line: line, err: err}}
		}

		for _, in := range batch {
			select {
			case t.lines <- in:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (t *Trainer) print(s string) {
	_, _ = fmt.Fprint(t.out, s)
}

func (t *Trainer) println(s string) {
	_, _ = fmt.Fprintln(t.out, s)
}
