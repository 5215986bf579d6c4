package credentials

import (
	"regexp"
	"strings"
	"testing"
)

func TestGenerateUsername(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+[0-9]{2}$`)
	for i := 0; i < 50; i++ {
		name, err := GenerateUsername()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !pattern.MatchString(name) {
			t.Fatalf("username %q does not match adjective+animal+digits", name)
		}
	}
}

func TestGeneratePassword(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GeneratePassword()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(pw) != 6 {
			t.Fatalf("len=%d want 6", len(pw))
		}
		for _, ch := range pw {
			if !strings.ContainsRune(passwordChars, ch) {
				t.Fatalf("password %q contains %q outside the alphabet", pw, ch)
			}
		}
	}
}
