package store

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/db/models"
	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
)

// SentinelPassword is what an elevated sign-in defaults to when no password is given.
const SentinelPassword = "password"

func signInFailed() *Notification {
	return alert("Sign In Failed", "Invalid email or password.")
}

// SignIn authenticates email, registering unknown emails as customers.
// Elevated accounts must pass the credential checker; a nil password is
// treated as the sentinel. Every path clears the signing-in flag.
func (s *Store) SignIn(ctx context.Context, email string, password *string) Outcome {
	s.mu.Lock()
	s.signInsInFlight++
	s.mu.Unlock()
	s.publish([]Event{{Kind: EventStateChanged, Operation: OpSignIn}})

	existing, known, waitErr := s.prepareSignIn(ctx, email)

	var (
		credentialsOK = true
		checkErr      error
	)
	if waitErr == nil && known && existing.Role.IsElevated() {
		effective := SentinelPassword
		if password != nil {
			effective = *password
		}
		credentialsOK, checkErr = s.credentials.Check(ctx, existing, effective)
		if checkErr != nil {
			s.logg.Warn(s.logg.WithField(s.logContext(ctx, OpSignIn), "error", checkErr.Error()), "credential check failed")
			credentialsOK = false
		}
	}

	return s.run(ctx, OpSignIn, func(t *txn) {
		s.signInsInFlight--
		t.changed = true

		switch {
		case waitErr != nil:
			t.fail(nil)
			return
		case strings.TrimSpace(email) == "":
			t.fail(alert("Sign In Failed", "An email address is required."))
			return
		case !credentialsOK:
			t.fail(signInFailed())
			return
		}

		idx := findUser(s.roster, email)
		if idx < 0 {
			s.roster = append(s.roster, models.User{ID: s.newID(), Email: email, Role: enums.RoleCustomer})
			idx = len(s.roster) - 1
			s.persistRoster(ctx, OpSignIn)
		} else if !known && s.roster[idx].Role.IsElevated() {
			// Promoted to seller while the password check was skipped.
			t.fail(signInFailed())
			return
		}

		user := s.roster[idx]
		s.sessionEmail = user.Email
		s.persist(ctx, OpSignIn, kv.KeySession, user.Email)
		s.logg.Info(s.logg.WithUserEmail(s.logContext(ctx, OpSignIn), user.Email), "signed in as "+user.Role.String())

		t.succeed(nil)
		t.redirect(enums.HomeFor(user.Role))
	})
}

// prepareSignIn waits out the simulated latency and snapshots the roster entry for email.
func (s *Store) prepareSignIn(ctx context.Context, email string) (models.User, bool, error) {
	if err := sleep(ctx, s.signInDelay); err != nil {
		return models.User{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := findUser(s.roster, email)
	if idx < 0 {
		return models.User{}, false, nil
	}
	return s.roster[idx].Clone(), true, nil
}

// SignOut forgets the session and sends the device home.
func (s *Store) SignOut(ctx context.Context) Outcome {
	return s.run(ctx, OpSignOut, func(t *txn) {
		t.changed = s.sessionEmail != ""
		s.sessionEmail = ""
		s.forget(ctx, OpSignOut, kv.KeySession)
		t.succeed(nil)
		t.redirect(enums.RouteHome)
	})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
