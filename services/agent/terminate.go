package agent

import (
	"strings"

	"bookingagent/models"
)

// Decision is the termination policy's verdict for a conversation state.
type Decision int

const (
	DecisionContinue Decision = iota
	DecisionEnd
)

var (
	successPhrases      = []string{"booking confirmed", "successfully saved", "booking id"}
	statusChangePhrases = []string{"cancelled", "rescheduled", "updated to"}
	exitPhrases         = []string{"goodbye", "thank you", "that's all", "exit"}
)

// Decide classifies the conversation log as "continue" or "end". The log is
// scanned newest to oldest; the first message matching a success phrase or
// status-change phrase in an operation result, or an exit phrase in a user
// message, ends the conversation. Matching is case-insensitive substring
// matching.
func Decide(log []models.ConversationMessage) Decision {
	if len(log) == 0 {
		return DecisionContinue
	}

	for i := len(log) - 1; i >= 0; i-- {
		msg := log[i]
		content := strings.ToLower(msg.Content)

		switch msg.Role {
		case models.RoleOperationResult:
			if containsAny(content, successPhrases) || containsAny(content, statusChangePhrases) {
				return DecisionEnd
			}
		case models.RoleUser:
			if containsAny(content, exitPhrases) {
				return DecisionEnd
			}
		}
	}
	return DecisionContinue
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
