package agent

import (
	"testing"

	"bookingagent/models"
)

func TestDecideEmptyLog(t *testing.T) {
	if got := Decide(nil); got != DecisionContinue {
		t.Errorf("Decide(nil) = %v, want DecisionContinue", got)
	}
}

func TestDecide(t *testing.T) {
	cases := []struct {
		name string
		log  []models.ConversationMessage
		want Decision
	}{
		{
			name: "plain user message",
			log: []models.ConversationMessage{
				{Role: models.RoleUser, Content: "hi, I'd like to book a haircut"},
			},
			want: DecisionContinue,
		},
		{
			name: "operation result with booking id",
			log: []models.ConversationMessage{
				{Role: models.RoleUser, Content: "book it"},
				{Role: models.RoleOperationResult, Content: "Booking successfully saved. Booking ID: 123"},
			},
			want: DecisionEnd,
		},
		{
			name: "operation result with cancellation",
			log: []models.ConversationMessage{
				{Role: models.RoleOperationResult, Content: "Booking 123 has been cancelled. Reason: No reason provided"},
			},
			want: DecisionEnd,
		},
		{
			name: "user exit phrase",
			log: []models.ConversationMessage{
				{Role: models.RoleAssistant, Content: "Anything else?"},
				{Role: models.RoleUser, Content: "no, goodbye"},
			},
			want: DecisionEnd,
		},
		{
			name: "case insensitive match",
			log: []models.ConversationMessage{
				{Role: models.RoleUser, Content: "THANK YOU"},
			},
			want: DecisionEnd,
		},
		{
			name: "success phrase in assistant message does not end",
			log: []models.ConversationMessage{
				{Role: models.RoleAssistant, Content: "Once done you will get a booking id."},
			},
			want: DecisionContinue,
		},
		{
			name: "availability result keeps going",
			log: []models.ConversationMessage{
				{Role: models.RoleOperationResult, Content: "Slot available at 09:40. Would you like to confirm?"},
			},
			want: DecisionContinue,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Decide(tc.log); got != tc.want {
				t.Errorf("Decide() = %v, want %v", got, tc.want)
			}
		})
	}
}
