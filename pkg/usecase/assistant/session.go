package assistant

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/m-mizutani/concierge/pkg/adapter"
	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/repository"
	"github.com/m-mizutani/concierge/pkg/usecase/reminder"
	"github.com/m-mizutani/concierge/pkg/utils/logging"
)

const systemPrompt = `You are a personal concierge assistant. You help the user manage calendar events, recurring tasks, bill payments and personal goals through conversation.

When the user asks to schedule an event, create a task, pay a bill or set a goal, call the matching function instead of answering in text. Every function call is shown to the user for explicit confirmation before anything is saved, so do not claim that an action has been performed until you receive its function result. For anything else, reply conversationally and keep answers short.`

// rescanInterval is how often the reminder scan re-runs during a session.
const rescanInterval = time.Hour

// Session drives one interactive concierge conversation: it relays user
// utterances to the oracle, funnels returned intents into the confirmation
// coordinator and surfaces periodic reminders into the conversation log.
type Session struct {
	repo   repository.Repository
	gemini adapter.Gemini
	conv   *Conversation
	coord  *Coordinator

	thresholdDays int
	lastScan      time.Time
	now           func() time.Time
}

// NewInput contains parameters for creating a session.
type NewInput struct {
	Repo                  repository.Repository
	Gemini                adapter.Gemini
	ReminderThresholdDays int
}

func New(input NewInput) *Session {
	conv := NewConversation()
	return &Session{
		repo:          input.Repo,
		gemini:        input.Gemini,
		conv:          conv,
		coord:         NewCoordinator(input.Repo, input.Gemini, conv),
		thresholdDays: input.ReminderThresholdDays,
		now:           time.Now,
	}
}

// Conversation returns the session log.
func (s *Session) Conversation() *Conversation {
	return s.conv
}

// Coordinator returns the confirmation coordinator of this session.
func (s *Session) Coordinator() *Coordinator {
	return s.coord
}

// Send relays one user utterance to the oracle. When the oracle returns an
// intent, the confirmation prompt is returned and the caller must resolve it
// through the coordinator before the next Send. An empty prompt means the
// reply (if any) went straight into the conversation log.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if s.coord.Awaiting() {
		return "", goerr.Wrap(ErrActionInFlight, "cannot send while awaiting confirmation")
	}

	s.conv.AddUser(text)

	resp, err := s.gemini.GenerateContent(ctx, s.conv.Contents(), oracleConfig())
	if err != nil {
		return "", goerr.Wrap(err, "oracle call failed")
	}

	call := appendOracleReply(s.conv, resp)
	if call == nil {
		return "", nil
	}

	prompt, ok, err := s.coord.ProposeIntent(ctx, *call)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return prompt, nil
}

// ScanReminders runs the due-soon scan when the session starts and then at
// most once per hour, appending deduplicated reminder notices to the log.
func (s *Session) ScanReminders(ctx context.Context) {
	if !s.lastScan.IsZero() && s.now().Sub(s.lastScan) < rescanInterval {
		return
	}
	s.lastScan = s.now()

	tasks, err := s.repo.LoadTasks(ctx)
	if err != nil {
		logging.From(ctx).Warn("failed to load tasks for reminder scan", "error", err)
	}
	goals, err := s.repo.LoadGoals(ctx)
	if err != nil {
		logging.From(ctx).Warn("failed to load goals for reminder scan", "error", err)
	}

	notices := reminder.Scan(tasks, goals, s.now(), s.thresholdDays)
	for _, notice := range reminder.Dedup(s.conv.Messages(), notices) {
		s.conv.AddNotice(notice)
	}
}

// oracleConfig builds the generation config shared by the initial call and
// the function-result follow-up.
func oracleConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, ""),
		Tools:             IntentTools(),
	}
}

// appendOracleReply records the oracle's response in the conversation: the
// raw content goes into the oracle history, any text becomes an assistant
// message with grounding sources attached. Returns the first function call
// found, if any.
func appendOracleReply(conv *Conversation, resp *genai.GenerateContentResponse) *genai.FunctionCall {
	var call *genai.FunctionCall

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		conv.AddContent(candidate.Content)

		var text string
		for _, part := range candidate.Content.Parts {
			if part.Text != "" {
				if text != "" {
					text += "\n"
				}
				text += part.Text
			}
			if part.FunctionCall != nil && call == nil {
				call = part.FunctionCall
			}
		}

		if text != "" {
			conv.AddAssistant(text, groundingSources(candidate)...)
		}
	}

	return call
}

// groundingSources extracts web grounding references from a candidate.
func groundingSources(candidate *genai.Candidate) []model.Source {
	if candidate.GroundingMetadata == nil {
		return nil
	}

	var sources []model.Source
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		sources = append(sources, model.Source{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return sources
}
