package agent

import (
	"context"
	"fmt"

	"bookingagent/models"

	"go.uber.org/zap"
)

// loop states. End is terminal.
type loopState int

const (
	stateAgentTurn loopState = iota
	stateOperationTurn
	stateEnd
)

// Orchestrator drives the conversation loop: an explicit state machine
// alternating between model turns and operation turns. It is the sole owner
// of the conversation log; collaborators receive read-only snapshots and
// return new messages to append.
type Orchestrator struct {
	Model       ChatModel
	Store       ConversationStore
	Dispatcher  *Dispatcher
	Logger      *zap.Logger
	MaxCycles   int // operation cycles allowed per incoming user message
	TokenBudget int
}

// HandleMessage appends the user's utterance and runs the loop until the
// turn yields: either the termination policy ends the conversation, the
// model stops requesting operations, or the cycle cap is hit. One
// HandleMessage is in flight at a time for a given conversation id.
func (o *Orchestrator) HandleMessage(ctx context.Context, conversationID, text string) (*models.AgentResponse, error) {
	log, err := o.Store.Get(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation %s: %w", conversationID, err)
	}

	if text != "" {
		log = append(log, models.ConversationMessage{Role: models.RoleUser, Content: text})
	}

	// A brand-new conversation opens with a fixed greeting; no model call.
	if len(log) == 0 {
		greeting := models.ConversationMessage{Role: models.RoleAssistant, Content: initialGreeting}
		log = append(log, greeting)
		if err := o.Store.Set(ctx, conversationID, log); err != nil {
			return nil, fmt.Errorf("save conversation %s: %w", conversationID, err)
		}
		return &models.AgentResponse{
			ConversationID: conversationID,
			Messages:       []models.ConversationMessage{greeting},
			Ended:          false,
		}, nil
	}

	replyFrom := len(log)
	ended := false
	cycles := 0

	state := stateAgentTurn
	for state != stateEnd {
		switch state {
		case stateAgentTurn:
			trimmed := trimToBudget(log, o.TokenBudget)
			resp, err := o.Model.Complete(ctx, systemDirective, trimmed)
			if err != nil {
				// Model failures are a hard failure of the current turn;
				// retry policy belongs to the caller.
				return nil, fmt.Errorf("model invocation: %w", err)
			}
			log = append(log, models.ConversationMessage{
				Role:           models.RoleAssistant,
				Content:        resp.Content,
				OperationCalls: resp.Calls,
			})
			if Decide(log) == DecisionEnd {
				ended = true
				state = stateEnd
			} else {
				state = stateOperationTurn
			}

		case stateOperationTurn:
			calls := log[len(log)-1].OperationCalls
			if len(calls) == 0 {
				// Nothing to execute; the turn is over and the
				// conversation stays open for the user's next message.
				state = stateEnd
				continue
			}
			cycles++
			if cycles > o.MaxCycles {
				o.Logger.Warn("operation cycle cap reached",
					zap.String("conversationId", conversationID),
					zap.Int("maxCycles", o.MaxCycles),
				)
				state = stateEnd
				continue
			}
			results, err := o.Dispatcher.Execute(ctx, calls)
			if err != nil {
				return nil, err
			}
			log = append(log, results...)
			// Unconditionally back to the model so it can react to the
			// results; the termination policy runs after its next reply.
			state = stateAgentTurn
		}
	}

	if ended {
		if err := o.Store.Clear(ctx, conversationID); err != nil {
			o.Logger.Warn("failed to clear conversation", zap.String("conversationId", conversationID), zap.Error(err))
		}
	} else if err := o.Store.Set(ctx, conversationID, log); err != nil {
		return nil, fmt.Errorf("save conversation %s: %w", conversationID, err)
	}

	return &models.AgentResponse{
		ConversationID: conversationID,
		Messages:       log[replyFrom:],
		Ended:          ended,
	}, nil
}
