package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	contractx "github.com/Orlavan/TechFlow-AI-Recruiter/agent/contract"
	statex "github.com/Orlavan/TechFlow-AI-Recruiter/agent/state"
)

type fakeStore struct {
	mu     sync.Mutex
	states map[string]*statex.ConversationState
	saves  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{states: map[string]*statex.ConversationState{}}
}

func (f *fakeStore) Load(ctx context.Context, sessionID string) (*statex.ConversationState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.states[sessionID]
	if !ok {
		return nil, statex.ErrStateNotFound
	}
	return cloneState(st), nil
}

func (f *fakeStore) Save(ctx context.Context, st *statex.ConversationState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[st.SessionID] = cloneState(st)
	f.saves++
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.states, sessionID)
	return nil
}

func cloneState(in *statex.ConversationState) *statex.ConversationState {
	raw, err := json.Marshal(in)
	if err != nil {
		panic(err)
	}
	var out statex.ConversationState
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return &out
}

type fakeClassifier struct {
	action contractx.Action
	err    error
	calls  int
}

func (f *fakeClassifier) DecideAction(ctx context.Context, history string) (contractx.Action, error) {
	f.calls++
	if f.err != nil {
		return contractx.ActionContinue, f.err
	}
	return f.action, nil
}

type fakeExit struct {
	verdict    contractx.Action
	verdictErr error
	message    string
	msgErr     error
	evalCalls  int
	msgCalls   int
}

func (f *fakeExit) Evaluate(ctx context.Context, message string, history string) (contractx.Action, error) {
	f.evalCalls++
	if f.verdictErr != nil {
		return contractx.ActionContinue, f.verdictErr
	}
	return f.verdict, nil
}

func (f *fakeExit) ExitMessage(ctx context.Context, history string, interviewBooked bool) (string, error) {
	f.msgCalls++
	if f.msgErr != nil {
		return "", f.msgErr
	}
	return f.message, nil
}

type fakeResponder struct {
	reply string
	err   error
	calls int
}

func (f *fakeResponder) Respond(ctx context.Context, message string, history string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeInfo struct {
	fakeResponder
	needs bool
}

func (f *fakeInfo) NeedsRetrieval(message string) bool {
	return f.needs
}

type fakeIntent struct{}

func (fakeIntent) ClassifyIntent(ctx context.Context, message string, history string) (contractx.Intent, error) {
	return contractx.IntentOther, nil
}

type fakeScheduler struct {
	result   contractx.ScheduleResult
	err      error
	calls    int
	lastReq  contractx.ScheduleRequest
	requests []contractx.ScheduleRequest
}

func (f *fakeScheduler) Handle(ctx context.Context, req contractx.ScheduleRequest) (contractx.ScheduleResult, error) {
	f.calls++
	f.lastReq = req
	f.requests = append(f.requests, req)
	if f.err != nil {
		return contractx.ScheduleResult{}, f.err
	}
	return f.result, nil
}

type fakeRegistry struct {
	main     contractx.ActionClassifier
	exit     contractx.ExitAdvisor
	screener contractx.Responder
	info     contractx.InfoAdvisor
}

func (f *fakeRegistry) Main() contractx.ActionClassifier { return f.main }

func (f *fakeRegistry) Exit() contractx.ExitAdvisor { return f.exit }

func (f *fakeRegistry) Intent() contractx.IntentClassifier { return fakeIntent{} }

func (f *fakeRegistry) Screener() contractx.Responder { return f.screener }

func (f *fakeRegistry) Info() contractx.InfoAdvisor { return f.info }

func newTestOrchestrator(t *testing.T, store statex.Store, registry contractx.Registry, scheduler contractx.Scheduler) *Orchestrator {
	t.Helper()
	o, err := New(store, registry, scheduler)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return o
}

func TestProcessTurnInvalidInput(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionContinue},
		exit:     &fakeExit{},
		screener: &fakeResponder{reply: "ok"},
		info:     &fakeInfo{},
	}, &fakeScheduler{})

	if _, _, err := o.ProcessTurn(context.Background(), "  ", "hello", ""); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
	if _, _, err := o.ProcessTurn(context.Background(), "s1", "   ", ""); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestScheduleGatedUntilScreeningComplete(t *testing.T) {
	t.Parallel()

	screener := &fakeResponder{reply: "Tell me about your Python background first."}
	scheduler := &fakeScheduler{}
	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionSchedule},
		exit:     &fakeExit{},
		screener: screener,
		info:     &fakeInfo{},
	}, scheduler)

	reply, action, err := o.ProcessTurn(context.Background(), "s1", "Can we set something up?", "")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if scheduler.calls != 0 {
		t.Fatal("scheduler must not run before screening completes")
	}
	if action != contractx.ActionContinue {
		t.Fatalf("expected CONTINUE, got %s", action)
	}
	if reply != screener.reply {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestScreeningThenScheduleEndToEnd(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	main := &fakeClassifier{action: contractx.ActionContinue}
	scheduler := &fakeScheduler{result: contractx.ScheduleResult{Reply: "Great! I have the following times available:\n- 2024-06-11 at 10:00\n\nWhich one works best for you?"}}
	o := newTestOrchestrator(t, store, &fakeRegistry{
		main:     main,
		exit:     &fakeExit{},
		screener: &fakeResponder{reply: "Nice, which cloud stack have you used?"},
		info:     &fakeInfo{},
	}, scheduler)

	// Turn 1: one utterance carrying both an experience and a tech signal.
	_, action, err := o.ProcessTurn(context.Background(), "s1", "I have 5 years with Django", "")
	if err != nil {
		t.Fatalf("turn 1 error = %v", err)
	}
	if action != contractx.ActionContinue {
		t.Fatalf("turn 1 expected CONTINUE, got %s", action)
	}
	if st := store.states["s1"]; !st.ScreeningComplete {
		t.Fatalf("expected screening complete after turn 1, got %+v", st)
	}

	// Turn 2: the classifier moves to SCHEDULE and the gate is open.
	main.action = contractx.ActionSchedule
	reply, action, err := o.ProcessTurn(context.Background(), "s1", "Can we schedule an interview?", "Candidate: I have 5 years with Django")
	if err != nil {
		t.Fatalf("turn 2 error = %v", err)
	}
	if scheduler.calls != 1 {
		t.Fatalf("expected one scheduler call, got %d", scheduler.calls)
	}
	if action != contractx.ActionSchedule {
		t.Fatalf("expected SCHEDULE, got %s", action)
	}
	if !strings.Contains(reply, "times available") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if scheduler.lastReq.SessionID != "s1" {
		t.Fatalf("scheduler must receive the session id, got %q", scheduler.lastReq.SessionID)
	}

	// The scheduling anchor is the conversation start, not this turn's clock.
	if !scheduler.lastReq.ReferenceTime.Equal(store.states["s1"].StartedAt) {
		t.Fatalf("reference time %v does not match conversation anchor %v",
			scheduler.lastReq.ReferenceTime, store.states["s1"].StartedAt)
	}
}

func TestEndDemotedWithoutExitAgreement(t *testing.T) {
	t.Parallel()

	exit := &fakeExit{verdict: contractx.ActionContinue}
	screener := &fakeResponder{reply: "What frameworks have you used?"}
	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionEnd},
		exit:     exit,
		screener: screener,
		info:     &fakeInfo{},
	}, &fakeScheduler{})

	reply, action, err := o.ProcessTurn(context.Background(), "s1", "Hmm, let me think about it", "")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if action != contractx.ActionContinue {
		t.Fatalf("expected demotion to CONTINUE, got %s", action)
	}
	if exit.evalCalls != 1 {
		t.Fatalf("expected one exit evaluation, got %d", exit.evalCalls)
	}
	if exit.msgCalls != 0 {
		t.Fatal("exit message must not be composed on a demoted END")
	}
	if reply != screener.reply {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestEndWithExitAgreement(t *testing.T) {
	t.Parallel()

	exit := &fakeExit{verdict: contractx.ActionEnd, message: "Thanks for your time, best of luck!"}
	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionEnd},
		exit:     exit,
		screener: &fakeResponder{reply: "should not be used"},
		info:     &fakeInfo{},
	}, &fakeScheduler{})

	reply, action, err := o.ProcessTurn(context.Background(), "s1", "I'm not interested, sorry", "")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if action != contractx.ActionEnd {
		t.Fatalf("expected END, got %s", action)
	}
	if reply != exit.message {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestDisengagementEscalatesContinue(t *testing.T) {
	t.Parallel()

	exit := &fakeExit{verdict: contractx.ActionEnd, message: "Understood, all the best!"}
	history := "Recruiter: Any Python experience?\nCandidate: no\nRecruiter: Databases?\nCandidate: nope"
	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionContinue},
		exit:     exit,
		screener: &fakeResponder{reply: "should not be used"},
		info:     &fakeInfo{},
	}, &fakeScheduler{})

	reply, action, err := o.ProcessTurn(context.Background(), "s1", "leave me alone", history)
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if action != contractx.ActionEnd {
		t.Fatalf("expected escalation to END, got %s", action)
	}
	if reply != exit.message {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestBookingForcesEndAndMarksState(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	st := statex.NewConversationState("s1", time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	st.ScreeningSignals = 2
	st.ScreeningComplete = true
	store.states["s1"] = st

	scheduler := &fakeScheduler{result: contractx.ScheduleResult{
		Reply:  "Excellent! I've confirmed your interview for 2024-06-11 at 10:00. You'll receive a calendar invitation shortly via email.",
		Booked: true,
	}}
	o := newTestOrchestrator(t, store, &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionSchedule},
		exit:     &fakeExit{},
		screener: &fakeResponder{},
		info:     &fakeInfo{},
	}, scheduler)

	reply, action, err := o.ProcessTurn(context.Background(), "s1", "Yes, book it!", "")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if action != contractx.ActionEnd {
		t.Fatalf("a successful booking must end the conversation, got %s", action)
	}
	if !strings.Contains(reply, "confirmed your interview") {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if saved := store.states["s1"]; !saved.InterviewBooked {
		t.Fatalf("expected InterviewBooked persisted, got %+v", saved)
	}
}

func TestResponderErrorYieldsApology(t *testing.T) {
	t.Parallel()

	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionContinue},
		exit:     &fakeExit{},
		screener: &fakeResponder{err: errors.New("model down")},
		info:     &fakeInfo{},
	}, &fakeScheduler{})

	reply, action, err := o.ProcessTurn(context.Background(), "s1", "tell me more", "")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if action != contractx.ActionContinue {
		t.Fatalf("expected CONTINUE, got %s", action)
	}
	if !strings.Contains(reply, "I encountered an error") {
		t.Fatalf("expected apology reply, got %q", reply)
	}
}

func TestClassifierErrorDefaultsToContinue(t *testing.T) {
	t.Parallel()

	screener := &fakeResponder{reply: "Could you elaborate on that?"}
	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{err: errors.New("timeout")},
		exit:     &fakeExit{},
		screener: screener,
		info:     &fakeInfo{},
	}, &fakeScheduler{})

	reply, action, err := o.ProcessTurn(context.Background(), "s1", "I like cats", "")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if action != contractx.ActionContinue {
		t.Fatalf("expected CONTINUE, got %s", action)
	}
	if reply != screener.reply {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestQuestionRoutesToInfoAdvisor(t *testing.T) {
	t.Parallel()

	info := &fakeInfo{needs: true}
	info.reply = "We run Python on AWS. Which of those have you used?"
	screener := &fakeResponder{reply: "should not be used"}
	o := newTestOrchestrator(t, newFakeStore(), &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionContinue},
		exit:     &fakeExit{},
		screener: screener,
		info:     info,
	}, &fakeScheduler{})

	reply, _, err := o.ProcessTurn(context.Background(), "s1", "What's your tech stack?", "")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if screener.calls != 0 {
		t.Fatal("screener must not answer a question turn")
	}
	if info.calls != 1 {
		t.Fatalf("expected one info advisor call, got %d", info.calls)
	}
	if reply != info.reply {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestResetClearsProgress(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	st := statex.NewConversationState("s1", time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	st.ScreeningSignals = 2
	st.ScreeningComplete = true
	store.states["s1"] = st

	o := newTestOrchestrator(t, store, &fakeRegistry{
		main:     &fakeClassifier{action: contractx.ActionContinue},
		exit:     &fakeExit{},
		screener: &fakeResponder{reply: "ok"},
		info:     &fakeInfo{},
	}, &fakeScheduler{})

	if err := o.Reset(context.Background(), "s1"); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	saved := store.states["s1"]
	if saved.ScreeningComplete || saved.ScreeningSignals != 0 {
		t.Fatalf("expected cleared progress, got %+v", saved)
	}

	// Resetting an unknown session is a no-op.
	if err := o.Reset(context.Background(), "ghost"); err != nil {
		t.Fatalf("Reset(ghost) error = %v", err)
	}
}
