// Package session holds the logged-in user's identity and profile, and the
// Selection value screens hand to each other. Selection is a plain value
// passed explicitly; there is no ambient "current event" a screen could read
// stale ids out of.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/Mathew005/event-platform-sub000/internal/model"
	"github.com/Mathew005/event-platform-sub000/pkg/client"
)

const usersTable = "users"

// Selection carries the ids a detail screen operates on.
type Selection struct {
	EventID   string
	ProgramID string
}

func (s Selection) WithEvent(eventID string) Selection {
	s.EventID = eventID
	s.ProgramID = ""
	return s
}

func (s Selection) WithProgram(programID string) Selection {
	s.ProgramID = programID
	return s
}

// Context is the process-wide user state shared by every screen.
type Context struct {
	mu      sync.RWMutex
	account client.Account
	profile model.User
}

func NewContext() *Context {
	return &Context{}
}

func (c *Context) SetAccount(a client.Account) {
	c.mu.Lock()
	c.account = a
	c.mu.Unlock()
}

func (c *Context) Account() client.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

func (c *Context) Profile() model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.profile
}

func (c *Context) SetProfile(u model.User) {
	c.mu.Lock()
	c.profile = u
	c.mu.Unlock()
}

func (c *Context) Clear() {
	c.mu.Lock()
	c.account = client.Account{}
	c.profile = model.User{}
	c.mu.Unlock()
}

func profileColumns(role string) []string {
	common := []string{"id", "username", "role", "name", "email", "phone", "country_code", "avatar", "institute"}
	switch role {
	case model.RoleParticipant:
		return append(common, "course", "department")
	case model.RoleOrganizer:
		return append(common, "website", "address", "gps_link")
	}
	return common
}

// FetchUserData populates the profile from the record layer for the given
// role's field set.
func (c *Context) FetchUserData(ctx context.Context, cl *client.Client, id, role string) error {
	row, err := cl.FetchFields(ctx, usersTable, id, "id", profileColumns(role))
	if err != nil {
		return err
	}

	var user model.User
	raw := make(map[string]any, len(row))
	for k, v := range row {
		raw[k] = v
	}
	if err := decode(raw, &user); err != nil {
		return err
	}

	c.mu.Lock()
	c.profile = user
	c.account = client.Account{ID: user.ID, Username: user.Username, Role: user.Role}
	c.mu.Unlock()
	return nil
}

// DumpUserData pushes the whole profile back as a single payload, replacing
// the stored row. This is the profile screens' save path; per-field saves are
// not used for profiles.
func (c *Context) DumpUserData(ctx context.Context, cl *client.Client, role string) bool {
	c.mu.RLock()
	profile := c.profile
	c.mu.RUnlock()

	row := client.Row{}
	for _, col := range profileColumns(role) {
		row[col] = profileValue(profile, col)
	}
	if profile.ID == "" {
		delete(row, "id")
	}

	id, ok := cl.InsertRow(ctx, usersTable, row)
	if !ok {
		return false
	}
	if profile.ID == "" {
		c.mu.Lock()
		c.profile.ID = id
		c.account.ID = id
		c.mu.Unlock()
	}
	return true
}

func profileValue(u model.User, column string) any {
	switch column {
	case "id":
		return u.ID
	case "username":
		return u.Username
	case "role":
		return u.Role
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "phone":
		return u.Phone
	case "country_code":
		return u.CountryCode
	case "avatar":
		return u.Avatar
	case "institute":
		return u.Institute
	case "course":
		return u.Course
	case "department":
		return u.Department
	case "website":
		return u.Website
	case "address":
		return u.Address
	case "gps_link":
		return u.GPSLink
	}
	return nil
}

func decode(raw map[string]any, dst *model.User) error {
	str := func(key string) string {
		if v, ok := raw[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	}
	dst.ID = str("id")
	dst.Username = str("username")
	dst.Role = str("role")
	dst.Name = str("name")
	dst.Email = str("email")
	dst.Phone = str("phone")
	dst.CountryCode = str("country_code")
	dst.Avatar = str("avatar")
	dst.Institute = str("institute")
	dst.Course = str("course")
	dst.Department = str("department")
	dst.Website = str("website")
	dst.Address = str("address")
	dst.GPSLink = str("gps_link")
	return nil
}
