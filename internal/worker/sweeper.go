package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wb-go/wbf/zlog"

	"github.com/Mathew005/event-platform-sub000/internal/mailer"
	"github.com/Mathew005/event-platform-sub000/internal/store"
)

// Sweeper is the no-broker fallback for the lapse pipeline: a cron job that
// scans pending registrations and lapses the ones whose payment window has
// expired.
type Sweeper struct {
	c     *cron.Cron
	store store.Store
	mail  mailer.Config
	spec  string
}

func NewSweeper(st store.Store, mail mailer.Config, cronSpec string) (*Sweeper, error) {
	s := &Sweeper{
		c:     cron.New(),
		store: st,
		mail:  mail,
		spec:  cronSpec,
	}
	if _, err := s.c.AddFunc(cronSpec, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) Start() {
	zlog.Logger.Info().Str("cron", s.spec).Msg("starting lapse sweeper")
	s.c.Start()
}

func (s *Sweeper) Stop() {
	s.c.Stop()
}

func (s *Sweeper) sweep() {
	now := time.Now().UTC()
	lapsed := 0

	for _, row := range s.store.Rows("registrations") {
		if fmt.Sprint(row["status"]) != "pending" {
			continue
		}
		raw, ok := row["expire_at"].(string)
		if !ok {
			continue
		}
		expireAt, err := time.Parse(time.RFC3339, raw)
		if err != nil || expireAt.After(now) {
			continue
		}

		id := fmt.Sprint(row["id"])
		flipped, err := s.store.LapseIfPending(id)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("registration_id", id).Msg("sweep failed to lapse registration")
			continue
		}
		if !flipped {
			continue
		}
		lapsed++

		programName := ""
		if prog, err := s.store.FetchFields("programs", fmt.Sprint(row["program_id"]), "id", []string{"name"}); err == nil {
			programName = fmt.Sprint(prog["name"])
		}
		if err := mailer.SendRegistrationEmail(&zlog.Logger, s.mail, programName, "lapsed", fmt.Sprint(row["email"]), 0); err != nil {
			zlog.Logger.Warn().Err(err).Msg("failed to send lapse notification email")
		}
	}

	if lapsed > 0 {
		zlog.Logger.Info().Int("lapsed", lapsed).Msg("sweep lapsed expired registrations")
	}
}
