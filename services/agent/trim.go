package agent

import "bookingagent/models"

// estimateTokens approximates the token cost of a message. Roughly four
// characters per token, which is all the budget contract needs.
func estimateTokens(msg models.ConversationMessage) int {
	n := len(msg.Content)/4 + 1
	for _, call := range msg.OperationCalls {
		n += len(call.Name)/4 + len(call.Args)*4
	}
	return n
}

// trimToBudget drops the oldest messages until the log fits the token
// budget. System messages are exempt from dropping (the system directive
// itself is prefixed at call time and never stored, but a stored system
// message must survive trimming). The most recent message is always kept.
// Returns a new slice, never mutating the input.
func trimToBudget(log []models.ConversationMessage, budget int) []models.ConversationMessage {
	total := 0
	for _, msg := range log {
		total += estimateTokens(msg)
	}
	if total <= budget {
		return append([]models.ConversationMessage(nil), log...)
	}

	drop := make([]bool, len(log))
	for i := 0; i < len(log)-1 && total > budget; i++ {
		if log[i].Role == models.RoleSystem {
			continue
		}
		drop[i] = true
		total -= estimateTokens(log[i])
	}

	trimmed := make([]models.ConversationMessage, 0, len(log))
	for i, msg := range log {
		if !drop[i] {
			trimmed = append(trimmed, msg)
		}
	}
	return trimmed
}
