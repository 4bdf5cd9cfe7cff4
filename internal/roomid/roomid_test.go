package roomid

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	id := Generate()
	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated code failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := Generate()
		if ids[id] {
			t.Errorf("duplicate code generated: %s", id)
		}
		ids[id] = true
	}
}

type seqRand struct{ n int }

func (s *seqRand) IntN(n int) int {
	v := s.n % n
	s.n++
	return v
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(&seqRand{}).Generate()
	b := NewGenerator(&seqRand{}).Generate()
	if a != b {
		t.Errorf("same source should give same code: %s != %s", a, b)
	}
	if err := Validate(a); err != nil {
		t.Errorf("deterministic code failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid code", "01h5n0et", false},
		{"too short", "01h5n0e", true},
		{"too long", "01h5n0et5", true},
		{"invalid character", "01h5n0ei", true},
		{"uppercase not allowed", "01H5N0ET", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	if len(alphabet) != 32 {
		t.Errorf("alphabet should have 32 characters, got %d", len(alphabet))
	}
	seen := make(map[rune]bool)
	for _, char := range alphabet {
		if seen[char] {
			t.Errorf("duplicate character in alphabet: %c", char)
		}
		seen[char] = true
	}
	for _, char := range "ilou" {
		if strings.ContainsRune(alphabet, char) {
			t.Errorf("alphabet should not contain %c", char)
		}
	}
}
