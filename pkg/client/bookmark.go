package client

import (
	"context"
	"net/url"
	"sync"
)

// ToggleState tracks a bookmark toggle through its network round trip.
type ToggleState int

const (
	ToggleIdle ToggleState = iota
	TogglePending
	ToggleConfirmed
	ToggleFailed
)

// BookmarkController owns the saved-for-later flag of one target. The local
// flag flips optimistically when a toggle starts, but a failed call rolls it
// back and leaves the controller in ToggleFailed rather than letting the UI
// drift from the backend.
type BookmarkController struct {
	mu sync.Mutex

	client   *Client
	userID   string
	typ      string
	targetID string

	bookmarked bool
	state      ToggleState
}

func NewBookmarkController(c *Client, userID, typ, targetID string) *BookmarkController {
	return &BookmarkController{
		client:   c,
		userID:   userID,
		typ:      typ,
		targetID: targetID,
	}
}

// Check refreshes the local flag from the backend.
func (b *BookmarkController) Check(ctx context.Context) (bool, error) {
	body, err := b.client.getJSON(ctx, "/bookmark", b.query("check"))
	if err != nil {
		return false, err
	}
	marked, _ := body["isBookmarked"].(bool)

	b.mu.Lock()
	b.bookmarked = marked
	b.state = ToggleConfirmed
	b.mu.Unlock()
	return marked, nil
}

// Toggle flips the flag. Returns the flag's value after the attempt.
func (b *BookmarkController) Toggle(ctx context.Context) bool {
	b.mu.Lock()
	was := b.bookmarked
	b.bookmarked = !was
	b.state = TogglePending
	b.mu.Unlock()

	action := "add"
	if was {
		action = "remove"
	}

	body, err := b.client.getJSON(ctx, "/bookmark", b.query(action))
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.client.log.Error().Err(err).Str("target", b.targetID).Msg("bookmark toggle failed, rolling back")
		b.bookmarked = was
		b.state = ToggleFailed
		return b.bookmarked
	}

	if marked, ok := body["isBookmarked"].(bool); ok {
		b.bookmarked = marked
	}
	b.state = ToggleConfirmed
	return b.bookmarked
}

func (b *BookmarkController) Bookmarked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bookmarked
}

func (b *BookmarkController) State() ToggleState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BookmarkController) query(action string) url.Values {
	q := url.Values{}
	q.Set("userId", b.userID)
	q.Set("type", b.typ)
	q.Set("action", action)
	q.Set("bookMarkId", b.targetID)
	return q
}
