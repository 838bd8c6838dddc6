package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wb-go/wbf/zlog"

	"github.com/Mathew005/event-platform-sub000/internal/dto"
	"github.com/Mathew005/event-platform-sub000/internal/mailer"
	"github.com/Mathew005/event-platform-sub000/internal/queue"
	"github.com/Mathew005/event-platform-sub000/internal/store"
)

// Reader consumes delayed lapse messages and cancels registrations whose
// payment was never captured.
type Reader struct {
	RMQ    *queue.Client
	store  store.Store
	mail   mailer.Config
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *queue.Client, st store.Store, mail mailer.Config) *Reader {
	return &Reader{
		RMQ:   rmq,
		store: st,
		mail:  mail,
		done:  make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("registration lapse reader started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.LapseMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().
					Err(err).
					Msgf("failed to unmarshal lapse message: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Str("registration_id", msg.RegistrationID).
				Str("program_id", msg.ProgramID).
				Msg("received lapse message")

			lapsed, err := r.store.LapseIfPending(msg.RegistrationID)
			if err != nil {
				zlog.Logger.Error().
					Err(err).
					Str("registration_id", msg.RegistrationID).
					Msg("failed to lapse registration")
				return err
			}

			if !lapsed {
				zlog.Logger.Info().
					Str("registration_id", msg.RegistrationID).
					Msg("registration already confirmed or lapsed, skipping email")
				return nil
			}

			r.notify(msg.RegistrationID)
			return nil
		}

		if err := r.RMQ.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("registration lapse reader stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

func (r *Reader) notify(registrationID string) {
	reg, err := r.store.FetchFields("registrations", registrationID, "id", []string{"email", "program_id"})
	if err != nil {
		zlog.Logger.Error().
			Err(err).
			Str("registration_id", registrationID).
			Msg("failed to load registration for notification")
		return
	}

	programName := ""
	if prog, err := r.store.FetchFields("programs", fmt.Sprint(reg["program_id"]), "id", []string{"name"}); err == nil {
		programName = fmt.Sprint(prog["name"])
	}

	if err := mailer.SendRegistrationEmail(
		&zlog.Logger,
		r.mail,
		programName,
		"lapsed",
		fmt.Sprint(reg["email"]),
		0,
	); err != nil {
		zlog.Logger.Warn().
			Err(err).
			Msg("failed to send lapse notification email")
	}
}
