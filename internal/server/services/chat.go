package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophbot/internal/common"
	"github.com/dmitrijs2005/gophbot/internal/fuzzy"
	"github.com/dmitrijs2005/gophbot/internal/intent"
	"github.com/dmitrijs2005/gophbot/internal/logging"
	"github.com/dmitrijs2005/gophbot/internal/server/models"
	"github.com/dmitrijs2005/gophbot/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbot/internal/textx"
)

// Outcome says which stage of the resolver produced a reply.
type Outcome int

const (
	OutcomeIntent Outcome = iota
	OutcomeKnown
	OutcomeSuggested
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIntent:
		return "intent"
	case OutcomeKnown:
		return "known"
	case OutcomeSuggested:
		return "suggested"
	case OutcomeUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Reply is the resolver's answer to one prompt.
type Reply struct {
	Text        string
	Outcome     Outcome
	Intent      intent.Intent
	Suggestions []string
}

// ChatService answers prompts: canned intent replies first, then taught
// answers, then suggestions of similar questions. Only intent and taught
// answers are written to the history log.
type ChatService struct {
	repomanager repomanager.RepositoryManager
	classifier  intent.Classifier
	replies     intent.Responses
	messages    intent.Messages
	suggester   *fuzzy.Suggester
	logger      logging.Logger
	now         func() time.Time
}

func NewChatService(m repomanager.RepositoryManager, lex *intent.Lexicon, sg *fuzzy.Suggester, l logging.Logger) *ChatService {
	return &ChatService{
		repomanager: m,
		classifier:  intent.NewLexiconClassifier(lex),
		replies:     lex.Replies,
		messages:    lex.Messages,
		suggester:   sg,
		logger:      l.With("module", "chat"),
		now:         time.Now,
	}
}

// Messages returns the fixed texts the service replies with.
func (s *ChatService) Messages() intent.Messages {
	return s.messages
}

// Resolve produces the reply for prompt. A miss at any stage is not an
// error; only an empty prompt and storage failures are.
func (s *ChatService) Resolve(ctx context.Context, prompt string) (*Reply, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: no prompt provided", common.ErrorValidation)
	}
	repos := s.repomanager.Repositories()

	in := s.classifier.Classify(prompt)
	if text, ok := s.replies.ResponseFor(in); ok {
		if err := s.record(ctx, repos, prompt, text); err != nil {
			return nil, err
		}
		return s.reply(ctx, &Reply{Text: text, Outcome: OutcomeIntent, Intent: in}), nil
	}

	if question := textx.Normalize(prompt); question != "" {
		answer, err := repos.Knowledge.Lookup(ctx, question)
		switch {
		case err == nil:
			if err := s.record(ctx, repos, prompt, answer); err != nil {
				return nil, err
			}
			return s.reply(ctx, &Reply{Text: answer, Outcome: OutcomeKnown, Intent: in}), nil
		case !errors.Is(err, common.ErrorNotFound):
			return nil, s.unavailable(ctx, "lookup answer", err)
		}
	}

	corpus, err := repos.Knowledge.AllQuestions(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list questions", err)
	}
	if sugg := s.suggester.Suggest(prompt, corpus); len(sugg) > 0 {
		return s.reply(ctx, &Reply{
			Text:        s.messages.SuggestionPrefix + strings.Join(sugg, ", "),
			Outcome:     OutcomeSuggested,
			Intent:      in,
			Suggestions: sugg,
		}), nil
	}

	return s.reply(ctx, &Reply{Text: s.messages.Unknown, Outcome: OutcomeUnknown, Intent: in}), nil
}

// Teach stores answer for question, replacing any previous answer.
func (s *ChatService) Teach(ctx context.Context, question, answer string) error {
	q := textx.Normalize(question)
	if q == "" || strings.TrimSpace(answer) == "" {
		return fmt.Errorf("%w: prompt and respuesta are required", common.ErrorValidation)
	}

	if err := s.repomanager.Repositories().Knowledge.Save(ctx, q, answer); err != nil {
		return s.unavailable(ctx, "save answer", err)
	}
	s.logger.Info(ctx, "answer taught", "question", q)
	return nil
}

// Learn is the trainer's reaction to an unknown prompt: the operator's
// answer is taught and logged together, and the acknowledgement returned.
func (s *ChatService) Learn(ctx context.Context, prompt, answer string) (string, error) {
	q := textx.Normalize(prompt)
	if q == "" || strings.TrimSpace(answer) == "" {
		return "", fmt.Errorf("%w: prompt and answer are required", common.ErrorValidation)
	}

	err := s.repomanager.InTx(ctx, func(ctx context.Context, r *repomanager.Repositories) error {
		if err := r.Knowledge.Save(ctx, q, answer); err != nil {
			return err
		}
		return r.History.Append(ctx, &models.HistoryEntry{Timestamp: s.now(), Prompt: prompt, Answer: answer})
	})
	if err != nil {
		return "", s.unavailable(ctx, "learn answer", err)
	}

	s.logger.Info(ctx, "answer learned", "question", q)
	return s.messages.Learned, nil
}

// History lists the conversation log, newest first.
func (s *ChatService) History(ctx context.Context) ([]models.HistoryEntry, error) {
	entries, err := s.repomanager.Repositories().History.ListDescending(ctx)
	if err != nil {
		return nil, s.unavailable(ctx, "list history", err)
	}
	return entries, nil
}

func (s *ChatService) record(ctx context.Context, repos *repomanager.Repositories, prompt, answer string) error {
	e := &models.HistoryEntry{Timestamp: s.now(), Prompt: prompt, Answer: answer}
	if err := repos.History.Append(ctx, e); err != nil {
		return s.unavailable(ctx, "append history", err)
	}
	return nil
}

func (s *ChatService) reply(ctx context.Context, r *Reply) *Reply {
	s.logger.Debug(ctx, "prompt resolved", "outcome", r.Outcome.String(), "intent", string(r.Intent))
	return r
}

func (s *ChatService) unavailable(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, "storage failure", "op", op, "error", err)
	return fmt.Errorf("%w: %s: %v", common.ErrorUnavailable, op, err)
}
