package postgres

import (
	"strings"
	"testing"
)

func TestStreamRetrieval_Parameters(t *testing.T) {
	r := &streamRetrieval{streamName: "account-123", batchSize: 1000}

	params := r.Parameters(42)

	if len(params) != 4 {
		t.Fatalf("Expected 4 parameters, got %d", len(params))
	}
	if params[0] != "account-123" {
		t.Errorf("Expected stream name in slot 0, got %v", params[0])
	}
	if params[1] != int64(42) {
		t.Errorf("Expected position 42 in slot 1, got %v", params[1])
	}
	if params[2] != int64(1000) {
		t.Errorf("Expected batch size 1000 in slot 2, got %v", params[2])
	}
	if params[3] != (*string)(nil) {
		t.Errorf("Expected nil condition in slot 3, got %v", params[3])
	}
}

func TestStreamRetrieval_ParametersWithCondition(t *testing.T) {
	condition := "messages.time >= current_date"
	r := &streamRetrieval{streamName: "account-123", batchSize: 1000, condition: &condition}

	params := r.Parameters(0)

	got, ok := params[3].(*string)
	if !ok || got == nil || *got != condition {
		t.Errorf("Expected condition in slot 3, got %v", params[3])
	}
}

func TestCategoryRetrieval_Parameters(t *testing.T) {
	correlation := "transfer"
	member := int64(1)
	size := int64(2)
	condition := "messages.position = 0"

	r := &categoryRetrieval{
		category:    "account",
		batchSize:   50,
		correlation: &correlation,
		groupMember: &member,
		groupSize:   &size,
		condition:   &condition,
	}

	params := r.Parameters(7)

	if len(params) != 7 {
		t.Fatalf("Expected 7 parameters, got %d", len(params))
	}
	if params[0] != "account" {
		t.Errorf("Expected category in slot 0, got %v", params[0])
	}
	if params[1] != int64(7) {
		t.Errorf("Expected position 7 in slot 1, got %v", params[1])
	}
	if params[2] != int64(50) {
		t.Errorf("Expected batch size 50 in slot 2, got %v", params[2])
	}
	if got := params[3].(*string); *got != correlation {
		t.Errorf("Expected correlation in slot 3, got %v", params[3])
	}
	if got := params[4].(*int64); *got != member {
		t.Errorf("Expected group member in slot 4, got %v", params[4])
	}
	if got := params[5].(*int64); *got != size {
		t.Errorf("Expected group size in slot 5, got %v", params[5])
	}
	if got := params[6].(*string); *got != condition {
		t.Errorf("Expected condition in slot 6, got %v", params[6])
	}
}

func TestRetrieval_DefaultPositions(t *testing.T) {
	stream := &streamRetrieval{streamName: "account-123", batchSize: 1000}
	if got := stream.DefaultPosition(); got != 0 {
		t.Errorf("Expected stream default position 0, got %d", got)
	}

	category := &categoryRetrieval{category: "account", batchSize: 1000}
	if got := category.DefaultPosition(); got != 1 {
		t.Errorf("Expected category default position 1, got %d", got)
	}
}

func TestRetrieval_SQLCommands(t *testing.T) {
	stream := &streamRetrieval{streamName: "account-123", batchSize: 1000}
	if !strings.Contains(stream.SQLCommand(), "get_stream_messages") {
		t.Errorf("Expected stream command to call get_stream_messages, got %q", stream.SQLCommand())
	}

	category := &categoryRetrieval{category: "account", batchSize: 1000}
	if !strings.Contains(category.SQLCommand(), "get_category_messages") {
		t.Errorf("Expected category command to call get_category_messages, got %q", category.SQLCommand())
	}
}

func TestRetrieval_Assure(t *testing.T) {
	tests := []struct {
		name      string
		retrieval retrieval
		expectErr bool
	}{
		{
			name:      "stream retrieval with stream name",
			retrieval: &streamRetrieval{streamName: "account-123", batchSize: 1000},
			expectErr: false,
		},
		{
			name:      "stream retrieval with category name",
			retrieval: &streamRetrieval{streamName: "account", batchSize: 1000},
			expectErr: true,
		},
		{
			name:      "category retrieval with category name",
			retrieval: &categoryRetrieval{category: "account", batchSize: 1000},
			expectErr: false,
		},
		{
			name:      "category retrieval with stream name",
			retrieval: &categoryRetrieval{category: "account-123", batchSize: 1000},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.retrieval.assure()
			if tt.expectErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no validation error, got %v", err)
			}
		})
	}
}

func TestRetrieval_Describe(t *testing.T) {
	stream := &streamRetrieval{streamName: "account-123", batchSize: 50}
	got := stream.Describe(3)
	for _, want := range []string{"account-123", "3", "50"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected descriptor to contain %q, got %q", want, got)
		}
	}
}
