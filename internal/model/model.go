package model

import "time"

const (
	StatusScheduled  = "scheduled"
	StatusCommencing = "commencing"
	StatusConcluded  = "concluded"
	StatusCancelled  = "cancelled"

	ViewStaged    = "staged"
	ViewPublished = "published"

	RoleParticipant = "participant"
	RoleOrganizer   = "organizer"

	RegistrationPending   = "pending"
	RegistrationConfirmed = "confirmed"
	RegistrationLapsed    = "lapsed"
)

type Event struct {
	ID                 string    `json:"id" validate:"required"`
	OrganizerID        string    `json:"organizer_id"`
	Name               string    `json:"name" validate:"required"`
	Categories         []string  `json:"categories"`
	Description        string    `json:"description,omitempty"`
	Image              string    `json:"image,omitempty"`
	StartDate          string    `json:"start_date"`
	EndDate            string    `json:"end_date,omitempty"`
	Location           string    `json:"location,omitempty"`
	CoordinatorGroupID string    `json:"coordinator_group_id,omitempty"`
	Status             string    `json:"status"`
	View               string    `json:"view"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type Program struct {
	ID                 string    `json:"id" validate:"required"`
	EventID            string    `json:"event_id" validate:"required"`
	Name               string    `json:"name" validate:"required"`
	Type               string    `json:"type,omitempty"`
	Date               string    `json:"date"`
	Time               string    `json:"time,omitempty"`
	Venue              string    `json:"venue,omitempty"`
	Image              string    `json:"image,omitempty"`
	Rules              string    `json:"rules,omitempty"`
	RulesDoc           string    `json:"rules_doc,omitempty"`
	Fee                int       `json:"fee"`
	MinParticipants    int       `json:"min_participants"`
	MaxParticipants    int       `json:"max_participants"`
	TeamEvent          bool      `json:"team_event"`
	Open               bool      `json:"open"`
	CoordinatorGroupID string    `json:"coordinator_group_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Coordinator is one of up to four fixed slots attached to an Event or
// Program through a shared coordinator group id.
type Coordinator struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	IsFaculty bool   `json:"is_faculty"`
}

const CoordinatorSlots = 4

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	Institute   string `json:"institute,omitempty"`

	// participant-only
	Course     string `json:"course,omitempty"`
	Department string `json:"department,omitempty"`

	// organizer-only
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`
	GPSLink string `json:"gps_link,omitempty"`
}

type Registration struct {
	ID            string    `json:"id"`
	ProgramID     string    `json:"program_id"`
	EventID       string    `json:"event_id"`
	ParticipantID string    `json:"participant_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Members       []Member  `json:"members,omitempty"`
	College       string    `json:"college,omitempty"`
	Department    string    `json:"department,omitempty"`
	Course        string    `json:"course,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Member struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Bookmark is a (user, target type, target id) membership fact.
type Bookmark struct {
	UserID   string `json:"user_id"`
	Type     string `json:"type"`
	TargetID string `json:"target_id"`
}
