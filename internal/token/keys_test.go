package token

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadKeysRoundTrip(t *testing.T) {
	key, err := GenerateDevKeypair()
	if err != nil {
		t.Fatalf("GenerateDevKeypair() error = %v", err)
	}

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")

	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(privatePath, privatePEM, 0600); err != nil {
		t.Fatalf("Failed to write private key: %v", err)
	}

	publicDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("Failed to marshal public key: %v", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: publicDER})
	if err := os.WriteFile(publicPath, publicPEM, 0644); err != nil {
		t.Fatalf("Failed to write public key: %v", err)
	}

	loadedPrivate, err := LoadPrivateKey(privatePath)
	if err != nil {
		t.Fatalf("LoadPrivateKey() error = %v", err)
	}
	loadedPublic, err := LoadPublicKey(publicPath)
	if err != nil {
		t.Fatalf("LoadPublicKey() error = %v", err)
	}

	// A token signed with the loaded private key must verify against the
	// loaded public key
	svc := NewService(loadedPrivate, loadedPublic, "tripbound-auth", time.Hour)
	signed, err := svc.Issue("u1", "ann@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, err := svc.VerifyClaims(signed); err != nil {
		t.Errorf("VerifyClaims() error = %v", err)
	}
}

func TestLoadKeysErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPrivateKey(filepath.Join(dir, "missing.pem")); err == nil {
		t.Error("LoadPrivateKey() on missing file should fail")
	}
	if _, err := LoadPublicKey(filepath.Join(dir, "missing.pem")); err == nil {
		t.Error("LoadPublicKey() on missing file should fail")
	}

	garbage := filepath.Join(dir, "garbage.pem")
	if err := os.WriteFile(garbage, []byte("not a key"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadPrivateKey(garbage); err == nil {
		t.Error("LoadPrivateKey() on garbage should fail")
	}
	if _, err := LoadPublicKey(garbage); err == nil {
		t.Error("LoadPublicKey() on garbage should fail")
	}
}
