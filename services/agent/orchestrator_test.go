package agent

import (
	"context"
	"strings"
	"testing"
	"time"

	"bookingagent/models"
	"bookingagent/services/booking"

	"go.uber.org/zap"
)

type scriptedModel struct {
	responses []*models.ModelResponse
	callCount int
}

func (m *scriptedModel) Complete(ctx context.Context, system string, log []models.ConversationMessage) (*models.ModelResponse, error) {
	m.callCount++
	if m.callCount > len(m.responses) {
		return m.responses[len(m.responses)-1], nil
	}
	return m.responses[m.callCount-1], nil
}

type memoryStore struct {
	logs    map[string][]models.ConversationMessage
	cleared []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{logs: map[string][]models.ConversationMessage{}}
}

func (s *memoryStore) Get(ctx context.Context, conversationID string) ([]models.ConversationMessage, error) {
	return s.logs[conversationID], nil
}

func (s *memoryStore) Set(ctx context.Context, conversationID string, log []models.ConversationMessage) error {
	s.logs[conversationID] = log
	return nil
}

func (s *memoryStore) Clear(ctx context.Context, conversationID string) error {
	delete(s.logs, conversationID)
	s.cleared = append(s.cleared, conversationID)
	return nil
}

func newOrchestrator(model ChatModel, store ConversationStore, d *Dispatcher) *Orchestrator {
	return &Orchestrator{
		Model:       model,
		Store:       store,
		Dispatcher:  d,
		Logger:      zap.NewNop(),
		MaxCycles:   8,
		TokenBudget: 4000,
	}
}

func TestHandleMessageGreetsNewConversation(t *testing.T) {
	model := &scriptedModel{}
	store := newMemoryStore()
	o := newOrchestrator(model, store, newTestDispatcher(&mockLedger{}, nil, nil))

	resp, err := o.HandleMessage(context.Background(), "conv-1", "")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if model.callCount != 0 {
		t.Errorf("model was called %d times for the greeting, want 0", model.callCount)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Role != models.RoleAssistant {
		t.Fatalf("greeting response = %+v", resp.Messages)
	}
	if !strings.Contains(resp.Messages[0].Content, "booking assistant") {
		t.Errorf("greeting = %q", resp.Messages[0].Content)
	}
	if resp.Ended {
		t.Error("greeting ended the conversation")
	}
	if len(store.logs["conv-1"]) != 1 {
		t.Errorf("stored log has %d messages, want 1", len(store.logs["conv-1"]))
	}
}

func TestHandleMessagePlainReply(t *testing.T) {
	model := &scriptedModel{responses: []*models.ModelResponse{
		{Content: "Sure, which provider would you like?"},
	}}
	store := newMemoryStore()
	store.logs["conv-1"] = []models.ConversationMessage{
		{Role: models.RoleAssistant, Content: initialGreeting},
	}
	o := newOrchestrator(model, store, newTestDispatcher(&mockLedger{}, nil, nil))

	resp, err := o.HandleMessage(context.Background(), "conv-1", "I want a haircut")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if resp.Ended {
		t.Error("conversation ended on a plain reply")
	}
	// The reply covers this turn only: the user message plus the model's answer.
	if len(resp.Messages) != 1 {
		t.Fatalf("len(resp.Messages) = %d, want 1", len(resp.Messages))
	}
	if resp.Messages[0].Content != "Sure, which provider would you like?" {
		t.Errorf("reply = %q", resp.Messages[0].Content)
	}
	if len(store.logs["conv-1"]) != 3 {
		t.Errorf("stored log has %d messages, want 3", len(store.logs["conv-1"]))
	}
}

func TestHandleMessageOperationFlowEndsOnSuccess(t *testing.T) {
	model := &scriptedModel{responses: []*models.ModelResponse{
		{
			Content: "Booking that for you.",
			Calls: []models.OperationCall{{
				ID:   "call-1",
				Name: OpCreateBooking,
				Args: map[string]any{
					"user_id":     "user-1",
					"description": "Haircut and beard trim",
					"start_time":  "2026-09-10T09:40:00Z",
				},
			}},
		},
		{Content: "All set. See you then!"},
	}}
	ledger := &mockLedger{
		createFunc: func(ctx context.Context, in booking.CreateInput) (*booking.Outcome, error) {
			return &booking.Outcome{BookingID: "bk-1", Message: "Booking successfully saved. Booking ID: bk-1"}, nil
		},
	}
	store := newMemoryStore()
	store.logs["conv-1"] = []models.ConversationMessage{
		{Role: models.RoleAssistant, Content: initialGreeting},
	}
	o := newOrchestrator(model, store, newTestDispatcher(ledger, nil, nil))

	resp, err := o.HandleMessage(context.Background(), "conv-1", "book me a haircut tomorrow at 9:40")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if !resp.Ended {
		t.Error("Ended = false after a successful booking")
	}
	if model.callCount != 2 {
		t.Errorf("model called %d times, want 2 (request + reaction)", model.callCount)
	}
	// assistant + operation result + closing assistant reply
	if len(resp.Messages) != 3 {
		t.Fatalf("len(resp.Messages) = %d, want 3", len(resp.Messages))
	}
	if resp.Messages[1].Role != models.RoleOperationResult {
		t.Errorf("Messages[1].Role = %v, want operation_result", resp.Messages[1].Role)
	}
	if len(store.cleared) != 1 || store.cleared[0] != "conv-1" {
		t.Errorf("store.cleared = %v, want the ended conversation", store.cleared)
	}
	if _, ok := store.logs["conv-1"]; ok {
		t.Error("ended conversation still stored")
	}
}

func TestHandleMessageUserExitPhrase(t *testing.T) {
	model := &scriptedModel{responses: []*models.ModelResponse{
		{Content: "Goodbye! Have a great day."},
	}}
	store := newMemoryStore()
	store.logs["conv-1"] = []models.ConversationMessage{
		{Role: models.RoleAssistant, Content: initialGreeting},
	}
	o := newOrchestrator(model, store, newTestDispatcher(&mockLedger{}, nil, nil))

	resp, err := o.HandleMessage(context.Background(), "conv-1", "that's all, goodbye")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if !resp.Ended {
		t.Error("Ended = false after an exit phrase")
	}
}

func TestHandleMessageCycleCap(t *testing.T) {
	// The model keeps requesting availability checks and the results never
	// contain a terminating phrase, so only the cycle cap stops the loop.
	looping := &models.ModelResponse{
		Content: "Checking...",
		Calls: []models.OperationCall{{
			ID:   "call-x",
			Name: OpCheckAvailability,
			Args: map[string]any{
				"provider_id":    "prov-1",
				"requested_time": "2026-09-10T09:40:00Z",
			},
		}},
	}
	model := &scriptedModel{responses: []*models.ModelResponse{looping}}
	avail := &mockAvailability{
		checkAvailabilityFunc: func(ctx context.Context, providerID string, requestedTime time.Time) (string, error) {
			return "No available slots on 2026-09-10. Would you like to check another date?", nil
		},
	}
	store := newMemoryStore()
	store.logs["conv-1"] = []models.ConversationMessage{
		{Role: models.RoleAssistant, Content: initialGreeting},
	}
	o := newOrchestrator(model, store, newTestDispatcher(&mockLedger{}, avail, nil))
	o.MaxCycles = 2

	resp, err := o.HandleMessage(context.Background(), "conv-1", "anything free on the 10th?")
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	if resp.Ended {
		t.Error("cycle cap should leave the conversation open")
	}
	// One model turn per allowed cycle plus the one that tripped the cap.
	if model.callCount != o.MaxCycles+1 {
		t.Errorf("model called %d times, want %d", model.callCount, o.MaxCycles+1)
	}
	if _, ok := store.logs["conv-1"]; !ok {
		t.Error("conversation log was not persisted after hitting the cap")
	}
}
