package models

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem          MessageRole = "system"
	RoleUser            MessageRole = "user"
	RoleAssistant       MessageRole = "assistant"
	RoleOperationResult MessageRole = "operation_result"
)

// OperationCall is a structured instruction emitted by the model naming one
// of the registered booking operations and its arguments.
type OperationCall struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// ConversationMessage is one entry of the append-only conversation log.
// Operation-result messages carry the id and name of the call they answer.
type ConversationMessage struct {
	Role           MessageRole     `json:"role"`
	Content        string          `json:"content"`
	CallID         string          `json:"call_id,omitempty"`
	OperationName  string          `json:"operation_name,omitempty"`
	OperationCalls []OperationCall `json:"operation_calls,omitempty"`
}

// ModelResponse is the structured result of one model invocation: reply text
// plus zero or more requested operations.
type ModelResponse struct {
	Content string
	Calls   []OperationCall
}

// AgentRequest is the payload coming from the frontend into /api/agent/chat.
type AgentRequest struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id"`
	Text           string `json:"text"`
}

// AgentResponse is what the chat handler returns to the frontend.
type AgentResponse struct {
	ConversationID string                `json:"conversation_id"`
	Messages       []ConversationMessage `json:"messages"`
	Ended          bool                  `json:"ended"`
}
