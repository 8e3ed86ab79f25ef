package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	schedulex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/schedule"
)

const (
	ToolGetAvailableSlots     = "get_available_slots"
	ToolCheckSlotAvailability = "check_slot_availability"
	ToolBookSlot              = "book_slot"
	ToolGetSlotsNearDate      = "get_slots_near_date"
)

// Result is the JSON-serializable outcome of one tool execution. Tool-level
// problems (bad args, unknown tool, unavailable slot) land in Error rather
// than failing the call.
type Result struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BookingOutcome is the result record of book_slot.
type BookingOutcome struct {
	Success  bool               `json:"success"`
	Message  string             `json:"message"`
	Date     string             `json:"date,omitempty"`
	Time     string             `json:"time,omitempty"`
	Position schedulex.Position `json:"position,omitempty"`
}

type Executor func(ctx context.Context, tool string, args map[string]any) (Result, error)

var positionValues = []string{
	string(schedulex.PositionPythonDev),
	string(schedulex.PositionSQLDev),
	string(schedulex.PositionAnalyst),
	string(schedulex.PositionML),
}

// Infos describes the four slot operations for tool-calling models.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGetAvailableSlots,
			Desc: "Get available interview time slots. Call when the candidate wants to schedule.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"date":     {Type: schema.String, Desc: "Date in YYYY-MM-DD format (optional)"},
				"position": {Type: schema.String, Desc: "Role to interview for", Enum: positionValues},
				"limit":    {Type: schema.Integer, Desc: "Max slots to return (default: 3)"},
			}),
		},
		{
			Name: ToolCheckSlotAvailability,
			Desc: "Check if a specific time slot is available.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"date":     {Type: schema.String, Desc: "Date in YYYY-MM-DD format", Required: true},
				"time":     {Type: schema.String, Desc: "Time in HH:MM format", Required: true},
				"position": {Type: schema.String, Desc: "Role to interview for", Enum: positionValues},
			}),
		},
		{
			Name: ToolBookSlot,
			Desc: "Book an interview slot after the candidate confirms.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"date":     {Type: schema.String, Desc: "Date in YYYY-MM-DD format", Required: true},
				"time":     {Type: schema.String, Desc: "Time in HH:MM format", Required: true},
				"position": {Type: schema.String, Desc: "Role to interview for", Enum: positionValues},
			}),
		},
		{
			Name: ToolGetSlotsNearDate,
			Desc: "Find available slots near a date. Use for 'next Friday', 'tomorrow', etc.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"target_date": {Type: schema.String, Desc: "Target date in YYYY-MM-DD format", Required: true},
				"position":    {Type: schema.String, Desc: "Role to interview for", Enum: positionValues},
				"limit":       {Type: schema.Integer, Desc: "Max slots to return"},
			}),
		},
	}
}

// NewExecutor maps tool calls onto a slot store.
func NewExecutor(store schedulex.SlotStore) Executor {
	return func(ctx context.Context, toolName string, args map[string]any) (Result, error) {
		switch toolName {
		case ToolGetAvailableSlots:
			slots, err := store.Available(ctx, stringArg(args, "date"), positionArg(args), limitArg(args))
			if err != nil {
				return Result{Tool: toolName, Error: err.Error()}, nil
			}
			return Result{Tool: toolName, Result: slots}, nil

		case ToolCheckSlotAvailability:
			date, timeOfDay, errResult := requireDateTime(toolName, args)
			if errResult != nil {
				return *errResult, nil
			}
			available, err := store.Check(ctx, date, timeOfDay, positionArg(args))
			if err != nil {
				return Result{Tool: toolName, Error: err.Error()}, nil
			}
			return Result{Tool: toolName, Result: available}, nil

		case ToolBookSlot:
			date, timeOfDay, errResult := requireDateTime(toolName, args)
			if errResult != nil {
				return *errResult, nil
			}
			position := positionArg(args)
			if err := store.Book(ctx, date, timeOfDay, position); err != nil {
				return Result{Tool: toolName, Result: BookingOutcome{
					Success: false,
					Message: fmt.Sprintf("Slot %s at %s is not available", date, timeOfDay),
				}}, nil
			}
			return Result{Tool: toolName, Result: BookingOutcome{
				Success:  true,
				Message:  fmt.Sprintf("Successfully booked interview for %s at %s", date, timeOfDay),
				Date:     date,
				Time:     timeOfDay,
				Position: position,
			}}, nil

		case ToolGetSlotsNearDate:
			target := stringArg(args, "target_date")
			if target == "" {
				return Result{Tool: toolName, Error: "target_date is required"}, nil
			}
			slots, err := store.NearDate(ctx, target, positionArg(args), limitArg(args))
			if err != nil {
				return Result{Tool: toolName, Error: err.Error()}, nil
			}
			return Result{Tool: toolName, Result: slots}, nil

		default:
			return Result{Tool: toolName, Error: fmt.Sprintf("unknown tool: %s", toolName)}, nil
		}
	}
}

func requireDateTime(toolName string, args map[string]any) (string, string, *Result) {
	date := stringArg(args, "date")
	timeOfDay := stringArg(args, "time")
	if date == "" || timeOfDay == "" {
		return "", "", &Result{Tool: toolName, Error: "date and time are required"}
	}
	return date, timeOfDay, nil
}

func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func positionArg(args map[string]any) schedulex.Position {
	if v, ok := args["position"].(string); ok && v != "" {
		return schedulex.Position(v)
	}
	return schedulex.DefaultPosition
}

func limitArg(args map[string]any) int {
	switch v := args["limit"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return schedulex.DefaultSlotLimit
	}
}
