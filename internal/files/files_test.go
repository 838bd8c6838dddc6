package files

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	log := zerolog.Nop()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "uploads.db"), &log)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	payload := []byte("fake image bytes")
	id, err := s.Put(KindEvent, payload)
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}

	got, err := s.Get(KindEvent, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(KindDocs, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnknownKindRejected(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Put("malware", []byte("x")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if _, err := s.Get("malware", "1"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestKindsIsolated(t *testing.T) {
	s := newTestStore(t)

	id, err := s.Put(KindAvatar, []byte("avatar"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, err := s.Get(KindProgram, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected kinds to be isolated, got %v", err)
	}
}
