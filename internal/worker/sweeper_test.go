package worker

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mathew005/event-platform-sub000/internal/mailer"
	"github.com/Mathew005/event-platform-sub000/internal/store"
)

func TestSweepLapsesExpiredPending(t *testing.T) {
	log := zerolog.Nop()
	st := store.New(&log)

	progID, _ := st.InsertRow("programs", store.Row{"name": "Coding Contest"})
	past := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	future := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

	expiredID, _ := st.InsertRow("registrations", store.Row{
		"status": "pending", "program_id": progID, "email": "late@x.in", "expire_at": past,
	})
	freshID, _ := st.InsertRow("registrations", store.Row{
		"status": "pending", "program_id": progID, "email": "ontime@x.in", "expire_at": future,
	})
	paidID, _ := st.InsertRow("registrations", store.Row{
		"status": "confirmed", "program_id": progID, "email": "paid@x.in", "expire_at": past,
	})

	s, err := NewSweeper(st, mailer.Config{}, "@every 1h")
	if err != nil {
		t.Fatalf("failed to build sweeper: %v", err)
	}
	s.sweep()

	assertStatus := func(id, want string) {
		t.Helper()
		row, err := st.FetchFields("registrations", id, "id", []string{"status"})
		if err != nil {
			t.Fatalf("fetch %s failed: %v", id, err)
		}
		if got := fmt.Sprint(row["status"]); got != want {
			t.Fatalf("registration %s: status = %q, want %q", id, got, want)
		}
	}

	assertStatus(expiredID, "lapsed")
	assertStatus(freshID, "pending")
	assertStatus(paidID, "confirmed")
}
