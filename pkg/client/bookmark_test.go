package client_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Mathew005/event-platform-sub000/pkg/client"
)

func TestBookmarkDoubleToggleRestoresState(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	b := client.NewBookmarkController(c, "7", "program", "42")

	marked, err := b.Check(ctx)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if marked {
		t.Fatal("expected unbookmarked target")
	}

	if !b.Toggle(ctx) {
		t.Fatal("first toggle should bookmark")
	}
	if b.State() != client.ToggleConfirmed {
		t.Fatalf("state = %v, want confirmed", b.State())
	}

	if b.Toggle(ctx) {
		t.Fatal("second toggle should unbookmark")
	}

	// backend agrees with the restored local state
	marked, err = b.Check(ctx)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if marked {
		t.Fatal("backend still bookmarked after double toggle")
	}
}

func TestBookmarkRollbackOnFailure(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	b := client.NewBookmarkController(c, "7", "program", "42")
	if _, err := b.Check(ctx); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	// cut the network out from under the toggle
	c.HTTP = &http.Client{Transport: &countingTransport{err: errors.New("network down")}}

	if b.Toggle(ctx) {
		t.Fatal("failed toggle must roll back to unbookmarked")
	}
	if b.State() != client.ToggleFailed {
		t.Fatalf("state = %v, want failed", b.State())
	}
	if b.Bookmarked() {
		t.Fatal("local state drifted from backend")
	}
}
