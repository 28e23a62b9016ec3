package crypto

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateSecretKey(t *testing.T) {
	first, err := GenerateSecretKey()
	if err != nil {
		t.Fatalf("GenerateSecretKey failed: %v", err)
	}
	second, err := GenerateSecretKey()
	if err != nil {
		t.Fatalf("GenerateSecretKey failed: %v", err)
	}

	if first == second {
		t.Error("expected two generated secrets to differ")
	}

	raw, err := base64.StdEncoding.DecodeString(first)
	if err != nil {
		t.Fatalf("secret is not standard base64: %v", err)
	}
	if len(raw) != SecretKeySize {
		t.Errorf("expected %d bytes, got %d", SecretKeySize, len(raw))
	}
}

func TestDecodeSecretKey(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
		wantErr bool
	}{
		{"valid", base64.StdEncoding.EncodeToString([]byte(strings.Repeat("a", 32))), false},
		{"longer than minimum", base64.StdEncoding.EncodeToString([]byte(strings.Repeat("a", 64))), false},
		{"too short", base64.StdEncoding.EncodeToString([]byte("abc")), true},
		{"not base64", "not-base64!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSecretKey(tt.encoded)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeSecretKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cryptoErr *CryptoError
				if !errors.As(err, &cryptoErr) || cryptoErr.Code() != ErrCodeKeyManagement {
					t.Errorf("expected key management error, got %v", err)
				}
			}
		})
	}
}

func TestSaveSecretKeyToFile(t *testing.T) {
	dir := t.TempDir()
	secret, err := GenerateSecretKey()
	if err != nil {
		t.Fatalf("GenerateSecretKey failed: %v", err)
	}

	if err := SaveSecretKeyToFile(secret, dir, "secret.key"); err != nil {
		t.Fatalf("SaveSecretKeyToFile failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "secret.key"))
	if err != nil {
		t.Fatalf("failed to read secret file: %v", err)
	}
	if strings.TrimSpace(string(data)) != secret {
		t.Errorf("file contents do not match secret")
	}

	if err := SaveSecretKeyToFile(secret, dir, "../escape.key"); err == nil {
		t.Error("expected writing outside the base directory to fail")
	}
}
