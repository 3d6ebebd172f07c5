package batch

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseStringOrArray(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		paramName string
		want      []string
		wantErr   bool
	}{
		{
			name:      "single string",
			input:     "transcript123",
			paramName: "ids",
			want:      []string{"transcript123"},
			wantErr:   false,
		},
		{
			name:      "array of strings",
			input:     []interface{}{"id1", "id2", "id3"},
			paramName: "ids",
			want:      []string{"id1", "id2", "id3"},
			wantErr:   false,
		},
		{
			name:      "nil input",
			input:     nil,
			paramName: "ids",
			want:      nil,
			wantErr:   true,
		},
		{
			name:      "empty string",
			input:     "",
			paramName: "ids",
			want:      nil,
			wantErr:   true,
		},
		{
			name:      "empty array",
			input:     []interface{}{},
			paramName: "ids",
			want:      nil,
			wantErr:   true,
		},
		{
			name:      "array with non-string",
			input:     []interface{}{"id1", 123, "id3"},
			paramName: "ids",
			want:      nil,
			wantErr:   true,
		},
		{
			name:      "array with empty string",
			input:     []interface{}{"id1", "", "id3"},
			paramName: "ids",
			want:      nil,
			wantErr:   true,
		},
		{
			name:      "number input",
			input:     42,
			paramName: "ids",
			want:      nil,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringOrArray(tt.input, tt.paramName)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseStringOrArray() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("ParseStringOrArray() unexpected error: %v", err)
				return
			}

			if len(got) != len(tt.want) {
				t.Errorf("ParseStringOrArray() = %v, want %v", got, tt.want)
				return
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseStringOrArray()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatResults(t *testing.T) {
	results := []Result{
		NewSuccessResult("id1", "transcript text"),
		NewErrorResult("id2", errors.New("not found")),
		NewSuccessResult("id3", "more text"),
	}

	formatted := FormatResults(results)

	var br BatchResult
	if err := json.Unmarshal([]byte(formatted), &br); err != nil {
		t.Fatalf("FormatResults() produced invalid JSON: %v", err)
	}

	if br.Total != 3 {
		t.Errorf("Total = %d, want 3", br.Total)
	}
	if br.Successful != 2 {
		t.Errorf("Successful = %d, want 2", br.Successful)
	}
	if br.Failed != 1 {
		t.Errorf("Failed = %d, want 1", br.Failed)
	}
	if len(br.Results) != 3 {
		t.Fatalf("len(Results) = %d, want 3", len(br.Results))
	}
	if br.Results[0].ID != "id1" || br.Results[0].Status != "success" {
		t.Errorf("Results[0] = %+v, want success for id1", br.Results[0])
	}
	if br.Results[1].Error != "not found" {
		t.Errorf("Results[1].Error = %q, want %q", br.Results[1].Error, "not found")
	}
}

func TestFormatResults_Empty(t *testing.T) {
	formatted := FormatResults(nil)

	var br BatchResult
	if err := json.Unmarshal([]byte(formatted), &br); err != nil {
		t.Fatalf("FormatResults() produced invalid JSON: %v", err)
	}
	if br.Total != 0 || br.Successful != 0 || br.Failed != 0 {
		t.Errorf("empty batch = %+v, want all zero counts", br)
	}
}
