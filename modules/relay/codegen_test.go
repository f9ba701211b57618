package relay

import (
	"testing"
)

func TestGenerateRoomCode(t *testing.T) {
	code, err := GenerateRoomCode()
	if err != nil {
		t.Fatalf("GenerateRoomCode() error = %v", err)
	}

	if len(code) != roomCodeBytes*2 {
		t.Errorf("GenerateRoomCode() length = %d, want %d", len(code), roomCodeBytes*2)
	}

	if !IsValidRoomCode(code) {
		t.Errorf("GenerateRoomCode() generated invalid code: %s", code)
	}
}

func TestGenerateRoomCode_Uniqueness(t *testing.T) {
	codes := make(map[string]bool)
	count := 100

	for i := 0; i < count; i++ {
		code, err := GenerateRoomCode()
		if err != nil {
			t.Fatalf("GenerateRoomCode() error = %v", err)
		}

		if codes[code] {
			t.Errorf("GenerateRoomCode() generated duplicate code: %s", code)
		}
		codes[code] = true
	}
}

func TestIsValidRoomCode(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{
			name:  "valid uppercase hex",
			code:  "A1B2C3D4E5",
			valid: true,
		},
		{
			name:  "valid digits only",
			code:  "0123456789",
			valid: true,
		},
		{
			name:  "valid letters only",
			code:  "ABCDEFABCD",
			valid: true,
		},
		{
			name:  "empty string",
			code:  "",
			valid: false,
		},
		{
			name:  "too short",
			code:  "A1B2C3",
			valid: false,
		},
		{
			name:  "too long",
			code:  "A1B2C3D4E5F6",
			valid: false,
		},
		{
			name:  "lowercase hex",
			code:  "a1b2c3d4e5",
			valid: false,
		},
		{
			name:  "non-hex letter",
			code:  "A1B2C3D4G5",
			valid: false,
		},
		{
			name:  "contains space",
			code:  "A1B2 C3D4E",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidRoomCode(tt.code)
			if got != tt.valid {
				t.Errorf("IsValidRoomCode(%q) = %v, want %v", tt.code, got, tt.valid)
			}
		})
	}
}

func BenchmarkGenerateRoomCode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GenerateRoomCode()
	}
}
