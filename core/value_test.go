package core

import "testing"

func TestLooseEquals(t *testing.T) {
	tests := []struct {
		name     string
		a, b     any
		expected bool
	}{
		{"identical ints", 5, 5, true},
		{"int vs float", 5, 5.0, true},
		{"numeric vs string form", 5, "5", true},
		{"string form vs numeric", "5", 5, true},
		{"restored float vs string form", 5.0, "5", true},
		{"padded string form", 5, " 5 ", true},
		{"different numbers", 5, 6, false},
		{"numeric vs non-numeric string", 5, "five", false},
		{"equal strings", "Water", "Water", true},
		{"different strings", "Water", "Tea", false},
		{"both nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"value vs nil", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooseEquals(tt.a, tt.b); got != tt.expected {
				t.Errorf("LooseEquals(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     any
		expected int
	}{
		{"numeric order", 2, 10, -1},
		{"numeric strings order numerically", "2", "10", -1},
		{"mixed numeric forms", 10, "9", 1},
		{"equal", 3, 3.0, 0},
		{"string order", "apple", "banana", -1},
		{"date strings", "2024-01-01", "2024-01-31", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare(%v, %v) = %d, expected %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in       any
		expected string
	}{
		{nil, ""},
		{"text", "text"},
		{3, "3"},
		{3.0, "3"},
		{3.5, "3.5"},
		{int64(12), "12"},
		{true, "1"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.expected {
			t.Errorf("FormatValue(%v) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestRecordID(t *testing.T) {
	rec := Record{"id": 7, "name": "Water"}
	id, ok := rec.ID()
	if !ok || id != 7 {
		t.Errorf("expected id 7, got %d (ok=%v)", id, ok)
	}

	// Restored blobs decode ids as float64.
	restored := Record{"id": 7.0}
	id, ok = restored.ID()
	if !ok || id != 7 {
		t.Errorf("expected restored id 7, got %d (ok=%v)", id, ok)
	}

	if _, ok := (Record{}).ID(); ok {
		t.Error("expected missing id to report ok=false")
	}
}
