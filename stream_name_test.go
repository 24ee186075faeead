package messagestore

import "testing"

func TestIsCategory(t *testing.T) {
	tests := []struct {
		name       string
		streamName string
		expected   bool
	}{
		{
			name:       "category name",
			streamName: "account",
			expected:   true,
		},
		{
			name:       "individual stream name",
			streamName: "account-123",
			expected:   false,
		},
		{
			name:       "stream name with uuid identifier",
			streamName: "account-5aceda75-6c79-4b71-a8ff-67a0b1bd2855",
			expected:   false,
		},
		{
			name:       "category with command type",
			streamName: "account:command",
			expected:   true,
		},
		{
			name:       "empty name",
			streamName: "",
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCategory(tt.streamName); got != tt.expected {
				t.Errorf("IsCategory(%q) = %v, expected %v", tt.streamName, got, tt.expected)
			}
		})
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name       string
		streamName string
		expected   string
	}{
		{
			name:       "individual stream name",
			streamName: "account-123",
			expected:   "account",
		},
		{
			name:       "category name unchanged",
			streamName: "account",
			expected:   "account",
		},
		{
			name:       "identifier containing separators",
			streamName: "account-5aceda75-6c79",
			expected:   "account",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Category(tt.streamName); got != tt.expected {
				t.Errorf("Category(%q) = %q, expected %q", tt.streamName, got, tt.expected)
			}
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		streamName string
		expected   string
	}{
		{
			name:       "individual stream name",
			streamName: "account-123",
			expected:   "123",
		},
		{
			name:       "category name has no identifier",
			streamName: "account",
			expected:   "",
		},
		{
			name:       "identifier containing separators",
			streamName: "account-5aceda75-6c79",
			expected:   "5aceda75-6c79",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.streamName); got != tt.expected {
				t.Errorf("Identifier(%q) = %q, expected %q", tt.streamName, got, tt.expected)
			}
		})
	}
}
