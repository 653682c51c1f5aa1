package agent

import (
	"context"
	"fmt"
	"strings"

	"bookingagent/models"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// GeminiChatModel implements ChatModel over the Gemini API with the booking
// operations exposed as function declarations.
type GeminiChatModel struct {
	client    *genai.Client
	modelName string
}

func NewGeminiChatModel(ctx context.Context, apiKey, modelName string) (*GeminiChatModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiChatModel{client: client, modelName: modelName}, nil
}

func (g *GeminiChatModel) Close() error {
	return g.client.Close()
}

func (g *GeminiChatModel) Complete(ctx context.Context, system string, log []models.ConversationMessage) (*models.ModelResponse, error) {
	if len(log) == 0 {
		return nil, fmt.Errorf("empty conversation log")
	}

	// A fresh GenerativeModel per call keeps concurrent conversations from
	// sharing mutable model state.
	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.Tools = []*genai.Tool{{FunctionDeclarations: operationDeclarations()}}

	contents := make([]*genai.Content, 0, len(log))
	for _, msg := range log {
		if c := toGenaiContent(msg); c != nil {
			contents = append(contents, c)
		}
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("no sendable messages in conversation log")
	}

	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]
	resp, err := cs.SendMessage(ctx, contents[len(contents)-1].Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	var calls []models.OperationCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		case genai.FunctionCall:
			calls = append(calls, models.OperationCall{
				ID:   uuid.New().String(),
				Name: p.Name,
				Args: p.Args,
			})
		}
	}
	return &models.ModelResponse{Content: sb.String(), Calls: calls}, nil
}

func toGenaiContent(msg models.ConversationMessage) *genai.Content {
	switch msg.Role {
	case models.RoleUser:
		return &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}}
	case models.RoleAssistant:
		parts := make([]genai.Part, 0, 1+len(msg.OperationCalls))
		if msg.Content != "" {
			parts = append(parts, genai.Text(msg.Content))
		}
		for _, call := range msg.OperationCalls {
			parts = append(parts, genai.FunctionCall{Name: call.Name, Args: call.Args})
		}
		if len(parts) == 0 {
			return nil
		}
		return &genai.Content{Role: "model", Parts: parts}
	case models.RoleOperationResult:
		return &genai.Content{Role: "function", Parts: []genai.Part{
			genai.FunctionResponse{
				Name:     msg.OperationName,
				Response: map[string]any{"content": msg.Content},
			},
		}}
	default:
		return nil
	}
}

func operationDeclarations() []*genai.FunctionDeclaration {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return []*genai.FunctionDeclaration{
		{
			Name:        OpCreateBooking,
			Description: "Create a new booking for a user at a given start time.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"user_id":     str("The ID of the user making the booking"),
					"provider_id": str("The ID of the provider being booked"),
					"description": str("Detailed description of the booking (10-500 characters)"),
					"start_time":  str("ISO format datetime for the appointment start"),
				},
				Required: []string{"user_id", "description", "start_time"},
			},
		},
		{
			Name:        OpCheckAvailability,
			Description: "Check slot availability for a provider and suggest alternatives.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"provider_id":    str("The provider whose schedule to check"),
					"requested_time": str("ISO format datetime the user asked for"),
				},
				Required: []string{"provider_id", "requested_time"},
			},
		},
		{
			Name:        OpUpdateBooking,
			Description: "Update a booking's status: confirm, cancel, reschedule or complete.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"booking_id": str("The ID of the booking to update"),
					"status":     str("One of: pending, confirmed, cancelled, rescheduled, completed"),
					"new_time":   str("ISO format datetime, required when rescheduling"),
					"reason":     str("Optional reason for the change"),
				},
				Required: []string{"booking_id", "status"},
			},
		},
		{
			Name:        OpGetDateTime,
			Description: "Resolve a relative date expression against the user's clock and timezone.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"phrase":      str("Natural language date expression, e.g. 'next Friday at 2pm'"),
					"client_time": str("ISO format datetime from the user's device"),
					"timezone":    str("IANA timezone name, e.g. 'Africa/Harare'"),
				},
				Required: []string{"phrase", "client_time", "timezone"},
			},
		},
		{
			Name:        OpScheduleReminder,
			Description: "Schedule a reminder notification ahead of a booking.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"booking_id": str("The booking the reminder is for"),
					"user_id":    str("The user to remind"),
					"remind_at":  str("ISO format datetime the reminder fires at"),
					"message":    str("Optional reminder text"),
				},
				Required: []string{"booking_id", "user_id", "remind_at"},
			},
		},
	}
}
