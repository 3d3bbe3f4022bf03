package abi

import "testing"

func TestTypeName(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, "nil"},
		{"int", 42, "int"},
		{"string", "x", "string"},
		{"slice", []int16{1}, "[]int16"},
		{"named", celsius(1), "abi.celsius"},
		{"pointer", &struct{}{}, "*struct {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeName(tt.input); got != tt.want {
				t.Errorf("TypeName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSequence(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		length int
		wantOK bool
	}{
		{"slice", []int{1, 2, 3}, 3, true},
		{"array", [2]float64{1, 2}, 2, true},
		{"empty slice", []any{}, 0, true},
		{"nil", nil, 0, false},
		{"string", "abc", 0, false},
		{"map", map[int]int{1: 1}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv, ok := Sequence(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Sequence() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && rv.Len() != tt.length {
				t.Errorf("Len() = %d, want %d", rv.Len(), tt.length)
			}
		})
	}
}
