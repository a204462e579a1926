package assistant

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/m-mizutani/concierge/pkg/model"
)

var errBadIntentArgs = goerr.New("invalid intent arguments")

// IntentTools returns the function-calling vocabulary passed to the oracle.
// The four declarations are the only structured actions the concierge can
// stage for confirmation.
func IntentTools() []*genai.Tool {
	declarations := []*genai.FunctionDeclaration{
		{
			Name:        string(model.IntentCreateCalendarEvent),
			Description: "Schedule a one-time calendar event for the user. The event is only created after the user explicitly confirms.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: "Short title of the event",
					},
					"date": {
						Type:        genai.TypeString,
						Description: "Event date in YYYY-MM-DD format",
					},
					"time": {
						Type:        genai.TypeString,
						Description: "Event time in HH:MM 24-hour format",
					},
				},
				Required: []string{"title", "date", "time"},
			},
		},
		{
			Name:        string(model.IntentCreateRecurringTask),
			Description: "Create a recurring task for the user. The task is only created after the user explicitly confirms.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: "Short title of the task",
					},
					"recurrence": {
						Type:        genai.TypeString,
						Description: "How often the task repeats",
						Enum:        []string{"daily", "weekly", "monthly"},
					},
					"dueDate": {
						Type:        genai.TypeString,
						Description: "Optional due date in YYYY-MM-DD format",
					},
				},
				Required: []string{"title", "recurrence"},
			},
		},
		{
			Name:        string(model.IntentPayBill),
			Description: "Record a bill payment for the user. The payment is only recorded after the user explicitly confirms.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"biller": {
						Type:        genai.TypeString,
						Description: "Name of the biller",
					},
					"amount": {
						Type:        genai.TypeNumber,
						Description: "Payment amount, must be positive",
					},
					"dueDate": {
						Type:        genai.TypeString,
						Description: "Due date in YYYY-MM-DD format",
					},
				},
				Required: []string{"biller", "amount"},
			},
		},
		{
			Name:        string(model.IntentCreateGoal),
			Description: "Set a personal goal for the user. The goal is only created after the user explicitly confirms. Progress and status are not settable at creation.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: "Short title of the goal",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "Optional longer description",
					},
					"targetDate": {
						Type:        genai.TypeString,
						Description: "Target date in YYYY-MM-DD format",
					},
				},
				Required: []string{"title", "targetDate"},
			},
		},
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// draftFromIntent builds a pending action with a typed draft from the raw
// intent arguments. Required arguments are validated here; the oracle is a
// remote model and its output is not trusted to be well-formed.
func draftFromIntent(intent *model.Intent) (*model.PendingAction, error) {
	switch intent.Name {
	case model.IntentCreateCalendarEvent:
		title, err := stringArg(intent.Args, "title")
		if err != nil {
			return nil, err
		}
		date, err := dateArg(intent.Args, "date")
		if err != nil {
			return nil, err
		}
		at, err := stringArg(intent.Args, "time")
		if err != nil {
			return nil, err
		}
		return &model.PendingAction{
			Kind:   model.ActionCreateEvent,
			Event:  &model.CalendarEvent{Title: title, Date: date, Time: at},
			Source: intent,
		}, nil

	case model.IntentCreateRecurringTask:
		title, err := stringArg(intent.Args, "title")
		if err != nil {
			return nil, err
		}
		recurrence, err := stringArg(intent.Args, "recurrence")
		if err != nil {
			return nil, err
		}
		if err := model.Recurrence(recurrence).Validate(); err != nil {
			return nil, err
		}
		return &model.PendingAction{
			Kind: model.ActionCreateTask,
			Task: &model.RecurringTask{
				Title:      title,
				Recurrence: model.Recurrence(recurrence),
				DueDate:    optStringArg(intent.Args, "dueDate"),
			},
			Source: intent,
		}, nil

	case model.IntentPayBill:
		biller, err := stringArg(intent.Args, "biller")
		if err != nil {
			return nil, err
		}
		amount, err := numberArg(intent.Args, "amount")
		if err != nil {
			return nil, err
		}
		if amount <= 0 {
			return nil, goerr.Wrap(errBadIntentArgs, "amount must be positive", goerr.V("amount", amount))
		}
		return &model.PendingAction{
			Kind: model.ActionPayBill,
			Payment: &model.PaymentRecord{
				Biller:  biller,
				Amount:  amount,
				DueDate: optStringArg(intent.Args, "dueDate"),
			},
			Source: intent,
		}, nil

	case model.IntentCreateGoal:
		title, err := stringArg(intent.Args, "title")
		if err != nil {
			return nil, err
		}
		targetDate, err := dateArg(intent.Args, "targetDate")
		if err != nil {
			return nil, err
		}
		return &model.PendingAction{
			Kind: model.ActionCreateGoal,
			Goal: &model.Goal{
				Title:       title,
				Description: optStringArg(intent.Args, "description"),
				TargetDate:  targetDate,
			},
			Source: intent,
		}, nil

	default:
		return nil, goerr.Wrap(errBadIntentArgs, "unknown intent", goerr.V("name", intent.Name))
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", goerr.Wrap(errBadIntentArgs, "missing required argument", goerr.V("key", key))
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", goerr.Wrap(errBadIntentArgs, "argument must be a non-empty string", goerr.V("key", key))
	}
	return s, nil
}

func optStringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func numberArg(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, goerr.Wrap(errBadIntentArgs, "missing required argument", goerr.V("key", key))
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, goerr.Wrap(errBadIntentArgs, "argument must be a number", goerr.V("key", key))
	}
}

func dateArg(args map[string]any, key string) (string, error) {
	s, err := stringArg(args, key)
	if err != nil {
		return "", err
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return "", goerr.Wrap(errBadIntentArgs, "argument must be a YYYY-MM-DD date", goerr.V("key", key), goerr.V("value", s))
	}
	return s, nil
}
