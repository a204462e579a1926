package assistant_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/genai"

	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/repository"
	"github.com/m-mizutani/concierge/pkg/usecase/assistant"
)

func newTestSession(gemini *mockGemini, repo repository.Repository) *assistant.Session {
	return assistant.New(assistant.NewInput{
		Repo:                  repo,
		Gemini:                gemini,
		ReminderThresholdDays: 7,
	})
}

func TestSendTextReply(t *testing.T) {
	ctx := context.Background()
	gemini := &mockGemini{responses: []*genai.GenerateContentResponse{
		textResponse("Hello! How can I help?"),
	}}
	session := newTestSession(gemini, repository.NewMemory())

	prompt, err := session.Send(ctx, "hi there")
	gt.NoError(t, err)
	gt.V(t, prompt).Equal("")
	gt.False(t, session.Coordinator().Awaiting())

	messages := session.Conversation().Messages()
	gt.A(t, messages).Length(2)
	gt.V(t, messages[0].Role).Equal(model.RoleUser)
	gt.V(t, messages[0].Content).Equal("hi there")
	gt.V(t, messages[1].Role).Equal(model.RoleAssistant)
	gt.V(t, messages[1].Content).Equal("Hello! How can I help?")
}

func TestSendIntentStagesConfirmation(t *testing.T) {
	ctx := context.Background()
	gemini := &mockGemini{responses: []*genai.GenerateContentResponse{
		callResponse(string(model.IntentCreateCalendarEvent), "call-1", map[string]any{
			"title": "Dentist",
			"date":  "2030-03-10",
			"time":  "09:00",
		}),
	}}
	session := newTestSession(gemini, repository.NewMemory())

	prompt, err := session.Send(ctx, "book me a dentist appointment")
	gt.NoError(t, err)
	gt.V(t, prompt).Equal(`Schedule event "Dentist" for Sunday, March 10, 2030 at 09:00?`)
	gt.True(t, session.Coordinator().Awaiting())
}

func TestSendWhileAwaitingIsRejected(t *testing.T) {
	ctx := context.Background()
	gemini := &mockGemini{responses: []*genai.GenerateContentResponse{
		callResponse(string(model.IntentCreateCalendarEvent), "call-1", map[string]any{
			"title": "Dentist",
			"date":  "2030-03-10",
			"time":  "09:00",
		}),
	}}
	session := newTestSession(gemini, repository.NewMemory())

	_, err := session.Send(ctx, "book me a dentist appointment")
	gt.NoError(t, err)

	_, err = session.Send(ctx, "also remind me to stretch")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, assistant.ErrActionInFlight))
	gt.A(t, gemini.calls).Length(1) // no second oracle call was made
}

func TestSendOracleFailureIsSurfaced(t *testing.T) {
	ctx := context.Background()
	gemini := &mockGemini{errs: []error{goerr.New("oracle unavailable")}}
	session := newTestSession(gemini, repository.NewMemory())

	_, err := session.Send(ctx, "hello?")
	gt.Error(t, err)
	gt.S(t, err.Error()).Contains("oracle call failed")
}

func TestSendUnknownIntentProducesNotice(t *testing.T) {
	ctx := context.Background()
	gemini := &mockGemini{responses: []*genai.GenerateContentResponse{
		callResponse("launchRocket", "call-9", map[string]any{}),
	}}
	session := newTestSession(gemini, repository.NewMemory())

	prompt, err := session.Send(ctx, "launch the rocket")
	gt.NoError(t, err)
	gt.V(t, prompt).Equal("")
	gt.False(t, session.Coordinator().Awaiting())

	messages := session.Conversation().Messages()
	last := messages[len(messages)-1]
	gt.S(t, last.Content).Contains("not configured to execute it")
}

func TestScanRemindersDedupAcrossRuns(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	gt.NoError(t, repo.SaveTasks(ctx, []*model.RecurringTask{{
		ID:         model.NewTaskID(),
		Title:      "Water plants",
		Recurrence: model.RecurrenceWeekly,
		DueDate:    "2020-01-01",
	}}))

	session := newTestSession(&mockGemini{}, repo)

	session.ScanReminders(ctx)
	first := len(session.Conversation().Messages())
	gt.Number(t, first).GreaterOrEqual(1)

	// The hourly gate makes an immediate re-scan a no-op.
	session.ScanReminders(ctx)
	gt.A(t, session.Conversation().Messages()).Length(first)
}
