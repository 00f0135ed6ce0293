package authutil

import (
	"strings"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"minimum length", "abc12x", nil},
		{"typical passphrase", "clearpath-back-office-2026", nil},
		{"spaces allowed", "my secret phrase", nil},
		{"maximum length", strings.Repeat("a", 128), nil},

		{"one under minimum", "abc12", ErrPasswordTooShort},
		{"empty", "", ErrPasswordTooShort},
		{"over maximum", strings.Repeat("a", 129), ErrPasswordTooLong},

		{"blocklisted", "123456", ErrPasswordCommon},
		{"blocklisted word", "password", ErrPasswordCommon},
		{"blocklist is case-insensitive", "QWERTY123", ErrPasswordCommon},
		{"blocklisted letmein", "letmein", ErrPasswordCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidatePassword(tt.password); err != tt.wantErr {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	const password = "CorrectHorse9!"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("hash = %q, must be a non-empty digest", hash)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("hash %q is not a bcrypt digest", hash)
	}

	if !CheckPassword(password, hash) {
		t.Error("CheckPassword() should accept the original password")
	}
	if CheckPassword("CorrectHorse9", hash) {
		t.Error("CheckPassword() should reject a near-miss password")
	}
	if CheckPassword(password, "") {
		t.Error("CheckPassword() should reject an empty hash")
	}
}

func TestHashPassword_SaltsEachCall(t *testing.T) {
	const password = "CorrectHorse9!"

	first, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestPasswordRules(t *testing.T) {
	rules := PasswordRules()
	if !strings.Contains(rules, "6") {
		t.Errorf("PasswordRules() = %q, should mention the minimum length", rules)
	}
}
