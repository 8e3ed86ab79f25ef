package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	schedulex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/schedule"
	toolx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/tool"
	notifyx "github.com/Orlavan/TechFlow-AI-Recruiter/pkg/notify"
)

// proposedSlotPattern recovers the last slot the recruiter put on the table.
// Every reply that offers a slot prints it as "YYYY-MM-DD at HH:MM", so the
// transcript itself is the proposal memory.
var proposedSlotPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})\s+at\s+(\d{2}:\d{2})`)

// Notifier publishes a booking event to an external system. *notify.Client
// satisfies this.
type Notifier interface {
	Publish(ctx context.Context, event notifyx.BookingEvent) error
}

// Advisor runs one scheduling turn: classify the candidate's intent, then
// answer with availability, a slot check, or a booking.
type Advisor struct {
	intent     contractx.IntentClassifier
	store      schedulex.SlotStore
	position   schedulex.Position
	slotLimit  int
	notifier   Notifier
	toolRunner compose.Runnable[map[string]any, *schema.Message]
	execute    toolx.Executor

	sdkClient *openaisdk.Client
	sdkModel  string

	pendingToolModel einomodel.ToolCallingChatModel
}

var _ contractx.Scheduler = (*Advisor)(nil)

type Option func(*Advisor)

func WithPosition(position schedulex.Position) Option {
	return func(a *Advisor) { a.position = position }
}

func WithSlotLimit(limit int) Option {
	return func(a *Advisor) { a.slotLimit = limit }
}

func WithNotifier(n Notifier) Option {
	return func(a *Advisor) { a.notifier = n }
}

// WithToolModel enables the tool-calling slot lookup path. The model is
// stashed until NewAdvisor compiles the lookup graph.
func WithToolModel(m einomodel.ToolCallingChatModel) Option {
	return func(a *Advisor) { a.pendingToolModel = m }
}

// WithSDKClient enables slot lookup planning through the raw OpenRouter SDK
// client. It is used when no tool-calling model is configured.
func WithSDKClient(client *openaisdk.Client, model string) Option {
	return func(a *Advisor) {
		a.sdkClient = client
		a.sdkModel = model
	}
}

func NewAdvisor(
	ctx context.Context,
	intent contractx.IntentClassifier,
	store schedulex.SlotStore,
	opts ...Option,
) (*Advisor, error) {
	if intent == nil {
		return nil, fmt.Errorf("%w: intent classifier is required", contractx.ErrValidation)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: slot store is required", contractx.ErrValidation)
	}

	a := &Advisor{
		intent:    intent,
		store:     store,
		position:  schedulex.DefaultPosition,
		slotLimit: schedulex.DefaultSlotLimit,
		execute:   toolx.NewExecutor(store),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.pendingToolModel != nil {
		toolModel, err := a.pendingToolModel.WithTools(toolx.Infos())
		if err != nil {
			return nil, fmt.Errorf("%w: bind slot tools: %v", contractx.ErrModelInvoke, err)
		}
		runner, err := compileSlotLookupGraph(ctx, toolModel)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}
		a.toolRunner = runner
		a.pendingToolModel = nil
	}

	return a, nil
}

func (a *Advisor) Handle(ctx context.Context, req contractx.ScheduleRequest) (contractx.ScheduleResult, error) {
	intent, err := a.intent.ClassifyIntent(ctx, req.Message, req.History)
	if err != nil {
		log.Warn().Err(err).Msg("scheduling intent classification failed, treating as general")
		intent = contractx.IntentOther
	}

	switch intent {
	case contractx.IntentRequestAvailability:
		return a.handleAvailability(ctx, req)
	case contractx.IntentProposeTime:
		return a.handlePropose(ctx, req)
	case contractx.IntentConfirmBooking:
		return a.handleConfirm(ctx, req)
	default:
		return a.handleGeneral(ctx, req)
	}
}

func (a *Advisor) handleAvailability(ctx context.Context, req contractx.ScheduleRequest) (contractx.ScheduleResult, error) {
	date, _ := schedulex.ResolveDate(req.Message, req.ReferenceTime)

	slots, err := a.lookupSlots(ctx, req, date)
	if err != nil {
		log.Warn().Err(err).Msg("slot lookup failed")
		return contractx.ScheduleResult{
			Reply: "Could you tell me what days generally work best for your schedule?",
		}, nil
	}

	if len(slots) == 0 {
		return contractx.ScheduleResult{
			Reply: "I'm checking our calendar... It seems we're quite busy. Let me have a human recruiter reach out to coordinate.",
		}, nil
	}

	return contractx.ScheduleResult{
		Reply: "Great! I have the following times available:\n" + formatSlots(slots) + "\n\nWhich one works best for you?",
	}, nil
}

func (a *Advisor) handlePropose(ctx context.Context, req contractx.ScheduleRequest) (contractx.ScheduleResult, error) {
	date, timeOfDay := schedulex.ResolveDateTime(req.Message, req.ReferenceTime)
	if date == "" || timeOfDay == "" {
		return contractx.ScheduleResult{
			Reply: "Could you specify the exact date and time you're thinking of? For example, 'Tuesday at 10 AM'.",
		}, nil
	}

	available, err := a.store.Check(ctx, date, timeOfDay, a.position)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Str("time", timeOfDay).Msg("slot check failed")
		return contractx.ScheduleResult{
			Reply: "That time isn't available. Could you suggest another day or time?",
		}, nil
	}

	if available {
		return contractx.ScheduleResult{
			Reply: fmt.Sprintf("Let me check... Yes, %s at %s is available! Shall I book that for you?", date, timeOfDay),
		}, nil
	}

	alternatives, err := a.store.NearDate(ctx, date, a.position, a.slotLimit)
	if err != nil || len(alternatives) == 0 {
		return contractx.ScheduleResult{
			Reply: "That time isn't available. Could you suggest another day or time?",
		}, nil
	}

	return contractx.ScheduleResult{
		Reply: "Sorry, that slot isn't available. Here are some nearby times:\n" + formatSlots(alternatives) + "\n\nWould any of these work?",
	}, nil
}

func (a *Advisor) handleConfirm(ctx context.Context, req contractx.ScheduleRequest) (contractx.ScheduleResult, error) {
	date, timeOfDay := lastProposedSlot(req.History + "\n" + req.Message)
	if date == "" {
		return contractx.ScheduleResult{
			Reply: "Great! Just to confirm - which time slot would you like me to book?",
		}, nil
	}

	if err := a.store.Book(ctx, date, timeOfDay, a.position); err != nil {
		if !errors.Is(err, schedulex.ErrSlotUnavailable) {
			log.Warn().Err(err).Str("date", date).Str("time", timeOfDay).Msg("booking failed")
		}
		return contractx.ScheduleResult{
			Reply: "I apologize, but that slot was just taken. Let me find another time for you.",
		}, nil
	}

	a.publishBooking(ctx, req.SessionID, date, timeOfDay)

	return contractx.ScheduleResult{
		Reply:  fmt.Sprintf("Excellent! I've confirmed your interview for %s at %s. You'll receive a calendar invitation shortly via email.", date, timeOfDay),
		Booked: true,
	}, nil
}

func (a *Advisor) handleGeneral(ctx context.Context, req contractx.ScheduleRequest) (contractx.ScheduleResult, error) {
	slots, err := a.store.Available(ctx, "", a.position, a.slotLimit)
	if err != nil || len(slots) == 0 {
		return contractx.ScheduleResult{
			Reply: "I'd be happy to help schedule an interview. What days and times generally work for you?",
		}, nil
	}

	return contractx.ScheduleResult{
		Reply: "I'd love to schedule an interview with you. Here are some available times:\n" + formatSlots(slots) + "\n\nWhich works best?",
	}, nil
}

// lookupSlots prefers the tool-calling path, then the raw SDK path, and
// silently degrades to a direct store query.
func (a *Advisor) lookupSlots(ctx context.Context, req contractx.ScheduleRequest, date string) ([]schedulex.Slot, error) {
	if a.toolRunner != nil {
		if slots, ok := a.toolLookup(ctx, req); ok {
			return slots, nil
		}
	} else if a.sdkClient != nil {
		if slots, ok := a.sdkLookup(ctx, req); ok {
			return slots, nil
		}
	}

	if date != "" {
		return a.store.NearDate(ctx, date, a.position, a.slotLimit)
	}
	return a.store.Available(ctx, "", a.position, a.slotLimit)
}

func (a *Advisor) toolLookup(ctx context.Context, req contractx.ScheduleRequest) ([]schedulex.Slot, bool) {
	input := fmt.Sprintf(
		"The candidate said: %q\nReference date: %s\nPosition: %s",
		req.Message,
		req.ReferenceTime.Format(schedulex.DateLayout),
		a.position,
	)

	msg, err := a.toolRunner.Invoke(ctx, map[string]any{"input": input})
	if err != nil {
		log.Warn().Err(err).Msg("slot lookup planning failed")
		return nil, false
	}
	if msg == nil || len(msg.ToolCalls) == 0 {
		return nil, false
	}

	call := msg.ToolCalls[0]
	args := map[string]any{}
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			log.Warn().Err(err).Str("tool", call.Function.Name).Msg("invalid slot tool args")
			return nil, false
		}
	}

	result, err := a.execute(ctx, call.Function.Name, args)
	if err != nil || result.Error != "" {
		return nil, false
	}

	slots, ok := result.Result.([]schedulex.Slot)
	return slots, ok
}

const sdkLookupPrompt = `You route an interview-slot lookup. Reply with one JSON object and nothing else:
{"tool": "get_available_slots" or "get_slots_near_date", "target_date": "YYYY-MM-DD or empty"}
Use get_slots_near_date with a target_date when the candidate names a day, otherwise get_available_slots.`

type sdkLookupPlan struct {
	Tool       string `json:"tool"`
	TargetDate string `json:"target_date"`
}

// sdkLookup plans the slot lookup with one raw chat completion and runs the
// chosen tool through the shared executor.
func (a *Advisor) sdkLookup(ctx context.Context, req contractx.ScheduleRequest) ([]schedulex.Slot, bool) {
	input := fmt.Sprintf(
		"The candidate said: %q\nReference date: %s",
		req.Message,
		req.ReferenceTime.Format(schedulex.DateLayout),
	)

	resp, err := a.sdkClient.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(a.sdkModel),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(sdkLookupPrompt),
			openaisdk.UserMessage(input),
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("sdk slot lookup planning failed")
		return nil, false
	}
	if len(resp.Choices) == 0 {
		return nil, false
	}

	var plan sdkLookupPlan
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.Trim(content, "` \n")
	if err := json.Unmarshal([]byte(content), &plan); err != nil {
		log.Warn().Err(err).Msg("invalid sdk slot lookup plan")
		return nil, false
	}

	args := map[string]any{
		"position": string(a.position),
		"limit":    a.slotLimit,
	}
	switch plan.Tool {
	case toolx.ToolGetSlotsNearDate:
		if plan.TargetDate == "" {
			return nil, false
		}
		args["target_date"] = plan.TargetDate
	case toolx.ToolGetAvailableSlots:
	default:
		return nil, false
	}

	result, err := a.execute(ctx, plan.Tool, args)
	if err != nil || result.Error != "" {
		return nil, false
	}

	slots, ok := result.Result.([]schedulex.Slot)
	return slots, ok
}

func (a *Advisor) publishBooking(ctx context.Context, sessionID, date, timeOfDay string) {
	if a.notifier == nil {
		return
	}
	event := notifyx.BookingEvent{
		SessionID: sessionID,
		Position:  string(a.position),
		Date:      date,
		Time:      timeOfDay,
		BookedAt:  time.Now().UTC(),
	}
	if err := a.notifier.Publish(ctx, event); err != nil {
		log.Warn().Err(err).Str("date", date).Str("time", timeOfDay).Msg("booking notification failed")
	}
}

func lastProposedSlot(transcript string) (date string, timeOfDay string) {
	matches := proposedSlotPattern.FindAllStringSubmatch(transcript, -1)
	if len(matches) == 0 {
		return "", ""
	}
	last := matches[len(matches)-1]
	return last[1], last[2]
}

func formatSlots(slots []schedulex.Slot) string {
	lines := make([]string, 0, len(slots))
	for _, s := range slots {
		lines = append(lines, fmt.Sprintf("- %s at %s", s.Date, s.Time))
	}
	return strings.Join(lines, "\n")
}
