package contour

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRetrievalMode(t *testing.T) {
	for i, name := range RetrievalModeNames() {
		m, err := ParseRetrievalMode(name)
		if err != nil {
			t.Errorf("ParseRetrievalMode(%q) failed: %v", name, err)
			continue
		}
		if int(m) != i || m.String() != name {
			t.Errorf("ParseRetrievalMode(%q): got %v (%d)", name, m, int(m))
		}
	}

	for _, bad := range []string{"", "tree", "TREE", "Bogus", " Tree"} {
		_, err := ParseRetrievalMode(bad)
		if !errors.Is(err, ErrInvalidMode) {
			t.Errorf("ParseRetrievalMode(%q): got %v, want ErrInvalidMode", bad, err)
		}
	}
}

func TestParseApproximationMode(t *testing.T) {
	tests := []struct {
		name string
		want ApproximationMode
	}{
		{"Simple", ApproxSimple},
		{"TC89L1", ApproxTC89L1},
		{"TC89KCOS", ApproxTC89KCOS},
	}

	for _, tt := range tests {
		got, err := ParseApproximationMode(tt.name)
		if err != nil {
			t.Errorf("ParseApproximationMode(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseApproximationMode(%q): got %v, want %v", tt.name, got, tt.want)
		}
	}

	_, err := ParseApproximationMode("None")
	var me *ModeError
	if !errors.As(err, &me) {
		t.Fatalf("got %v, want *ModeError", err)
	}
	if me.Kind != "approximation" || me.Value != "None" {
		t.Errorf("unexpected ModeError fields: %+v", me)
	}
	if !strings.Contains(err.Error(), "TC89KCOS") {
		t.Errorf("error should list valid modes: %v", err)
	}
}

func TestModeString(t *testing.T) {
	if got := RetrievalMode(9).String(); got != "RetrievalMode(9)" {
		t.Errorf("got %q", got)
	}
	if RetrievalMode(9).Valid() || ApproximationMode(-1).Valid() {
		t.Error("out of range modes reported valid")
	}
	if !RetrievalFloodFill.Valid() || !ApproxTC89KCOS.Valid() {
		t.Error("declared modes reported invalid")
	}
}

func TestModeNamesAreCopies(t *testing.T) {
	names := RetrievalModeNames()
	names[0] = "changed"
	if RetrievalExternal.String() != "External" {
		t.Error("RetrievalModeNames exposed internal slice")
	}
}
