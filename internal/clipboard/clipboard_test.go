package clipboard

import (
	stderrors "errors"
	"testing"
)

func TestMemory_WriteText(t *testing.T) {
	m := NewMemory(nil)
	if err := m.WriteText("Take the night train."); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Text() != "Take the night train." {
		t.Errorf("Text() = %q", m.Text())
	}
}

func TestMemory_Failure(t *testing.T) {
	want := stderrors.New("no display")
	m := NewMemory(want)
	if err := m.WriteText("x"); !stderrors.Is(err, want) {
		t.Errorf("WriteText() error = %v, want %v", err, want)
	}
	if m.Text() != "" {
		t.Error("failed write should not store text")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line one\r\nline two\r\n", "line one\nline two"},
		{"trailing  \n\n", "trailing"},
		{"  leading kept", "  leading kept"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSystemImplementsWriter(t *testing.T) {
	var _ Writer = System{}
	var _ Writer = NewMemory(nil)
}
