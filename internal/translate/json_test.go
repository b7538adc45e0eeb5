package translate

import (
	"testing"
)

func TestExtractReplies(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantErr   bool
	}{
		{
			name: "plain valid array",
			input: `[
				{"index": 1, "translation": "こんにちは"},
				{"index": 2, "translation": "さようなら"}
			]`,
			wantCount: 2,
		},
		{
			name: "preamble with valid array",
			input: `Here is the translation:
			[
				{"index": 1, "translation": "Bonjour"},
				{"index": 2, "translation": "Au revoir"}
			]`,
			wantCount: 2,
		},
		{
			name: "valid array with trailing text",
			input: `[
				{"index": 1, "translation": "Hola"}
			]
			I hope this helps!`,
			wantCount: 1,
		},
		{
			name: "wrapper object with translations key",
			input: `{"translations": [
				{"index": 1, "translation": "Übersetzt"}
			]}`,
			wantCount: 1,
		},
		{
			name: "wrapper object with results key",
			input: `{"results": [
				{"index": 1, "translation": "Translated"}
			]}`,
			wantCount: 1,
		},
		{
			name:      "invalid escape from subtitle markup",
			input:     `[{"index": 1, "translation": "line one\Nline two"}]`,
			wantCount: 1,
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   `This is just plain text.`,
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			input:   `[{"index": 1, "translation": "incomplete"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			replies, err := extractReplies(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %d replies", len(replies))
				}
				return
			}
			if err != nil {
				t.Fatalf("extractReplies returned error: %v", err)
			}
			if len(replies) != tt.wantCount {
				t.Errorf("expected %d replies, got %d", tt.wantCount, len(replies))
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	input := "```json\n[{\"index\": 1, \"translation\": \"Hi\"}]\n```"
	got := cleanJSONResponse(input)
	want := `[{"index": 1, "translation": "Hi"}]`
	if got != want {
		t.Errorf("cleanJSONResponse = %q, want %q", got, want)
	}
}

func TestParseBatchReplyCountMismatch(t *testing.T) {
	response := `[{"index": 1, "translation": "Only one"}]`
	if _, err := parseBatchReply(response, 2); err == nil {
		t.Error("expected error for reply count mismatch")
	}
}

func TestParseBatchReplyValid(t *testing.T) {
	response := "```json\n" +
		`[{"index": 1, "translation": "Uno"}, {"index": 2, "translation": "Dos"}]` +
		"\n```"
	replies, err := parseBatchReply(response, 2)
	if err != nil {
		t.Fatalf("parseBatchReply returned error: %v", err)
	}
	if replies[0].Translation != "Uno" || replies[1].Index != 2 {
		t.Errorf("unexpected replies: %+v", replies)
	}
}
