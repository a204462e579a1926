package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/m-mizutani/concierge/pkg/adapter"
	"github.com/m-mizutani/concierge/pkg/model"
	"github.com/m-mizutani/concierge/pkg/repository"
	"github.com/m-mizutani/concierge/pkg/utils/logging"
)

// ErrActionInFlight is returned when a new action is proposed while another
// one is still awaiting confirmation. The UI keeps the confirmation modal, so
// hitting this is a contract violation by the caller, not a user error.
var ErrActionInFlight = goerr.New("another action is awaiting confirmation")

// Coordinator owns the single-slot pending-action state machine: Idle until
// an intent or UI action stages a draft, AwaitingConfirmation until the user
// confirms or cancels, then Idle again. Commits go through the repository;
// confirmed or cancelled model-originated actions are reported back to the
// oracle as function results.
type Coordinator struct {
	repo   repository.Repository
	gemini adapter.Gemini
	conv   *Conversation

	pending *model.PendingAction
	now     func() time.Time
}

func NewCoordinator(repo repository.Repository, gemini adapter.Gemini, conv *Conversation) *Coordinator {
	return &Coordinator{
		repo:   repo,
		gemini: gemini,
		conv:   conv,
		now:    time.Now,
	}
}

// Awaiting reports whether an action is waiting for the user's decision.
func (c *Coordinator) Awaiting() bool {
	return c.pending != nil
}

// Pending returns the current pending action, or nil when idle.
func (c *Coordinator) Pending() *model.PendingAction {
	return c.pending
}

// ProposeIntent handles a function call returned by the oracle. On success it
// stages a pending action and returns its confirmation prompt with ok=true.
// Unknown intents and malformed arguments are reported as advisory notices
// and leave the coordinator idle (ok=false).
func (c *Coordinator) ProposeIntent(ctx context.Context, call genai.FunctionCall) (string, bool, error) {
	if c.pending != nil {
		return "", false, goerr.Wrap(ErrActionInFlight, "cannot propose intent", goerr.V("name", call.Name))
	}

	intent := &model.Intent{
		Name: model.IntentName(call.Name),
		ID:   call.ID,
		Args: call.Args,
	}

	if !intent.Name.Known() {
		c.conv.AddNotice(fmt.Sprintf("I received a request to perform %s but am not configured to execute it.", call.Name))
		return "", false, nil
	}

	action, err := draftFromIntent(intent)
	if err != nil {
		logging.From(ctx).Warn("rejected intent arguments", "name", call.Name, "error", err)
		c.conv.AddNotice(fmt.Sprintf("The %s request was missing or had invalid details, so I could not prepare it.", call.Name))
		return "", false, nil
	}

	c.pending = action
	return ConfirmationPrompt(action), true, nil
}

// ProposeToggle stages a completion toggle for the task with the given ID.
// An unknown ID is a silent no-op (ok=false): the list the user clicked may
// simply be stale.
func (c *Coordinator) ProposeToggle(ctx context.Context, id model.TaskID) (string, bool) {
	if c.pending != nil {
		return "", false
	}

	tasks := c.loadTasks(ctx)
	for _, task := range tasks {
		if task.ID != id {
			continue
		}
		draft := *task
		draft.Completed = !task.Completed
		c.pending = &model.PendingAction{
			Kind: model.ActionToggleTask,
			Task: &draft,
		}
		return ConfirmationPrompt(c.pending), true
	}

	logging.From(ctx).Debug("toggle requested for unknown task", "task_id", id)
	return "", false
}

// Confirm commits the pending action, appends the result to the conversation
// and, for model-originated actions, reports the result to the oracle.
// Confirming while idle is a no-op.
func (c *Coordinator) Confirm(ctx context.Context) error {
	if c.pending == nil {
		return nil
	}
	action := c.pending
	c.pending = nil

	if err := action.Validate(); err != nil {
		c.conv.AddNotice("The action could not be completed.")
		return err
	}

	result := c.commit(ctx, action)
	c.conv.AddNotice(result)

	if action.Source != nil {
		c.notifyOracle(ctx, action.Source, result)
	}
	return nil
}

// Cancel discards the pending action without mutating any entity state.
// Cancelling while idle is a no-op.
func (c *Coordinator) Cancel(ctx context.Context) error {
	if c.pending == nil {
		return nil
	}
	action := c.pending
	c.pending = nil

	if action.Source != nil {
		c.notifyOracle(ctx, action.Source, "User cancelled the action.")
	} else {
		c.conv.AddNotice("Action cancelled.")
	}
	return nil
}

// commit applies the mutation for a validated action and returns the result
// text. Storage failures are logged and never surfaced: local in-memory state
// stays authoritative until the next successful write.
func (c *Coordinator) commit(ctx context.Context, action *model.PendingAction) string {
	switch action.Kind {
	case model.ActionCreateEvent:
		ev := *action.Event
		ev.ID = model.NewEventID()
		events := c.loadEvents(ctx)
		c.saveEvents(ctx, append(events, &ev))
		return fmt.Sprintf("Event %q scheduled for %s.", ev.Title, formatEventAt(&ev))

	case model.ActionCreateTask:
		task := *action.Task
		task.ID = model.NewTaskID()
		task.Completed = false
		task.LastExecution = c.now()
		tasks := c.loadTasks(ctx)
		c.saveTasks(ctx, append(tasks, &task))
		return fmt.Sprintf("Recurring task %q created, repeating %s.", task.Title, task.Recurrence)

	case model.ActionPayBill:
		payment := *action.Payment
		payment.ID = model.NewPaymentID()
		payment.PaidAt = c.now()
		payments := c.loadPayments(ctx)
		c.savePayments(ctx, append(payments, &payment))
		return fmt.Sprintf("Payment of %s to %s recorded.", FormatCurrency(payment.Amount), payment.Biller)

	case model.ActionCreateGoal:
		goal := *action.Goal
		goal.ID = model.NewGoalID()
		goal.Progress = 0
		goal.Status = model.GoalNotStarted
		goal.CreatedAt = c.now()
		goals := c.loadGoals(ctx)
		c.saveGoals(ctx, append(goals, &goal))
		return fmt.Sprintf("Goal %q set with target date %s.", goal.Title, goal.TargetDate)

	case model.ActionToggleTask:
		tasks := c.loadTasks(ctx)
		for _, task := range tasks {
			if task.ID != action.Task.ID {
				continue
			}
			task.Completed = action.Task.Completed
			c.saveTasks(ctx, tasks)
			state := "not completed"
			if task.Completed {
				state = "completed"
			}
			return fmt.Sprintf("Task %q marked as %s.", task.Title, state)
		}
		return fmt.Sprintf("Task %q no longer exists.", action.Task.Title)

	default:
		return "The action could not be completed."
	}
}

// notifyOracle sends a function result back through the oracle's conversation
// channel and appends its reply. A failure here is reported as a trailing
// notice only; the local commit is never rolled back.
func (c *Coordinator) notifyOracle(ctx context.Context, source *model.Intent, resultText string) {
	c.conv.AddContent(&genai.Content{
		Role: genai.RoleUser,
		Parts: []*genai.Part{{
			FunctionResponse: &genai.FunctionResponse{
				ID:       source.ID,
				Name:     string(source.Name),
				Response: map[string]any{"result": resultText},
			},
		}},
	})

	resp, err := c.gemini.GenerateContent(ctx, c.conv.Contents(), oracleConfig())
	if err != nil {
		logging.From(ctx).Warn("failed to report function result to oracle", "error", err)
		c.conv.AddNotice("I could not report the result to the assistant service.")
		return
	}

	// Append against the live conversation, not a snapshot taken before the
	// call: the log may have grown while the call was in flight.
	appendOracleReply(c.conv, resp)
}

func (c *Coordinator) loadEvents(ctx context.Context) []*model.CalendarEvent {
	events, err := c.repo.LoadEvents(ctx)
	if err != nil {
		logging.From(ctx).Warn("failed to load events", "error", err)
		return nil
	}
	return events
}

func (c *Coordinator) saveEvents(ctx context.Context, events []*model.CalendarEvent) {
	if err := c.repo.SaveEvents(ctx, events); err != nil {
		logging.From(ctx).Warn("failed to save events", "error", err)
	}
}

func (c *Coordinator) loadTasks(ctx context.Context) []*model.RecurringTask {
	tasks, err := c.repo.LoadTasks(ctx)
	if err != nil {
		logging.From(ctx).Warn("failed to load tasks", "error", err)
		return nil
	}
	return tasks
}

func (c *Coordinator) saveTasks(ctx context.Context, tasks []*model.RecurringTask) {
	if err := c.repo.SaveTasks(ctx, tasks); err != nil {
		logging.From(ctx).Warn("failed to save tasks", "error", err)
	}
}

func (c *Coordinator) loadPayments(ctx context.Context) []*model.PaymentRecord {
	payments, err := c.repo.LoadPayments(ctx)
	if err != nil {
		logging.From(ctx).Warn("failed to load payments", "error", err)
		return nil
	}
	return payments
}

func (c *Coordinator) savePayments(ctx context.Context, payments []*model.PaymentRecord) {
	if err := c.repo.SavePayments(ctx, payments); err != nil {
		logging.From(ctx).Warn("failed to save payments", "error", err)
	}
}

func (c *Coordinator) loadGoals(ctx context.Context) []*model.Goal {
	goals, err := c.repo.LoadGoals(ctx)
	if err != nil {
		logging.From(ctx).Warn("failed to load goals", "error", err)
		return nil
	}
	return goals
}

func (c *Coordinator) saveGoals(ctx context.Context, goals []*model.Goal) {
	if err := c.repo.SaveGoals(ctx, goals); err != nil {
		logging.From(ctx).Warn("failed to save goals", "error", err)
	}
}
