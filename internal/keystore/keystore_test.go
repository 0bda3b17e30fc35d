package keystore_test

import (
	"bytes"
	"errors"
	"testing"

	"kexd/internal/hostkey"
	"kexd/internal/keystore"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	store := keystore.NewFileStore(t.TempDir())

	key, err := hostkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if store.HasHostKey() {
		t.Fatal("HasHostKey before save")
	}
	if err := store.SaveHostKey("open sesame", key); err != nil {
		t.Fatalf("SaveHostKey: %v", err)
	}
	if !store.HasHostKey() {
		t.Fatal("HasHostKey false after save")
	}

	loaded, err := store.LoadHostKey("open sesame")
	if err != nil {
		t.Fatalf("LoadHostKey: %v", err)
	}
	if !bytes.Equal(loaded.PublicBlob(), key.PublicBlob()) {
		t.Fatal("loaded key differs from saved key")
	}
}

func TestWrongPassphrase(t *testing.T) {
	store := keystore.NewFileStore(t.TempDir())

	key, err := hostkey.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := store.SaveHostKey("open sesame", key); err != nil {
		t.Fatalf("SaveHostKey: %v", err)
	}

	if _, err := store.LoadHostKey("open sesame!"); !errors.Is(err, keystore.ErrWrongPassphrase) {
		t.Fatalf("wrong passphrase: %v, want ErrWrongPassphrase", err)
	}
}

func TestLoadWithoutSave(t *testing.T) {
	store := keystore.NewFileStore(t.TempDir())
	if _, err := store.LoadHostKey("anything"); err == nil {
		t.Fatal("loaded a host key that was never saved")
	}
}
