package agent

import (
	"strings"
	"testing"

	"bookingagent/models"
)

func TestTrimToBudgetUnderBudget(t *testing.T) {
	log := []models.ConversationMessage{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi there"},
	}

	got := trimToBudget(log, 1000)
	if len(got) != len(log) {
		t.Fatalf("trimToBudget dropped messages under budget: got %d, want %d", len(got), len(log))
	}
}

func TestTrimToBudgetDropsOldestFirst(t *testing.T) {
	big := strings.Repeat("a", 400) // ~100 tokens each
	log := []models.ConversationMessage{
		{Role: models.RoleUser, Content: "oldest " + big},
		{Role: models.RoleAssistant, Content: "middle " + big},
		{Role: models.RoleUser, Content: "newest " + big},
	}

	got := trimToBudget(log, 220)
	if len(got) == len(log) {
		t.Fatal("trimToBudget kept everything over budget")
	}
	if !strings.HasPrefix(got[len(got)-1].Content, "newest") {
		t.Errorf("newest message was dropped; tail = %q", got[len(got)-1].Content[:20])
	}
	for _, msg := range got {
		if strings.HasPrefix(msg.Content, "oldest") {
			t.Error("oldest message survived trimming")
		}
	}
}

func TestTrimToBudgetKeepsSystemMessages(t *testing.T) {
	big := strings.Repeat("a", 400)
	log := []models.ConversationMessage{
		{Role: models.RoleSystem, Content: "directive " + big},
		{Role: models.RoleUser, Content: "old " + big},
		{Role: models.RoleUser, Content: "new " + big},
	}

	got := trimToBudget(log, 220)
	foundSystem := false
	for _, msg := range got {
		if msg.Role == models.RoleSystem {
			foundSystem = true
		}
	}
	if !foundSystem {
		t.Error("system message was dropped by trimming")
	}
}

func TestTrimToBudgetAlwaysKeepsLastMessage(t *testing.T) {
	big := strings.Repeat("a", 4000)
	log := []models.ConversationMessage{
		{Role: models.RoleUser, Content: "first " + big},
		{Role: models.RoleUser, Content: "last " + big},
	}

	got := trimToBudget(log, 10)
	if len(got) == 0 {
		t.Fatal("trimToBudget returned an empty log")
	}
	if !strings.HasPrefix(got[len(got)-1].Content, "last") {
		t.Error("most recent message was not kept")
	}
}

func TestTrimToBudgetDoesNotMutateInput(t *testing.T) {
	big := strings.Repeat("a", 400)
	log := []models.ConversationMessage{
		{Role: models.RoleUser, Content: "old " + big},
		{Role: models.RoleUser, Content: "new " + big},
	}

	_ = trimToBudget(log, 50)
	if !strings.HasPrefix(log[0].Content, "old") || len(log) != 2 {
		t.Error("input log was mutated")
	}
}
