package main

import (
	"reflect"
	"testing"
)

func TestSplitParams(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		text    string
		params  []any
		wantErr bool
	}{
		{
			name:   "no params",
			input:  "SELECT * FROM meals",
			text:   "SELECT * FROM meals",
			params: nil,
		},
		{
			name:   "string params",
			input:  `SELECT * FROM meals WHERE date = ? | ["2024-01-01"]`,
			text:   "SELECT * FROM meals WHERE date = ?",
			params: []any{"2024-01-01"},
		},
		{
			name:   "mixed params",
			input:  `INSERT INTO water_intake (date, glasses) VALUES (?, ?) | ["2024-01-01", 2]`,
			text:   "INSERT INTO water_intake (date, glasses) VALUES (?, ?)",
			params: []any{"2024-01-01", 2.0},
		},
		{
			name:    "bad json",
			input:   `SELECT * FROM meals | [unquoted]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, params, err := splitParams(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v, got err=%v", tt.wantErr, err)
			}
			if tt.wantErr {
				return
			}
			if text != tt.text {
				t.Errorf("expected text %q, got %q", tt.text, text)
			}
			if !reflect.DeepEqual(params, tt.params) {
				t.Errorf("expected params %v, got %v", tt.params, params)
			}
		})
	}
}

func TestIsSelectText(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"SELECT * FROM meals", true},
		{"select count(*) from meals", true},
		{"  SELECT 1", true},
		{"INSERT INTO meals (name) VALUES (?)", false},
		{"DELETE FROM meals", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isSelectText(tt.text); got != tt.expected {
			t.Errorf("isSelectText(%q) = %v, expected %v", tt.text, got, tt.expected)
		}
	}
}
