package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/ownshop-backend/pkg/enums"
	"github.com/angelmondragon/ownshop-backend/pkg/kv"
)

func TestSignInUnknownEmailCreatesCustomer(t *testing.T) {
	env := newTestStore(t)
	before := len(env.store.Roster())

	out := env.store.SignIn(context.Background(), "new@x.com", nil)
	if !out.OK || out.Redirect != enums.RouteHome {
		t.Fatalf("unexpected outcome %+v", out)
	}

	roster := env.store.Roster()
	if len(roster) != before+1 {
		t.Fatalf("expected roster to grow by one, got %d -> %d", before, len(roster))
	}
	user, ok := env.store.CurrentUser()
	if !ok || user.Email != "new@x.com" || user.Role != enums.RoleCustomer {
		t.Fatalf("expected new customer session, got %+v", user)
	}
	if email, _ := env.kvValue(t, kv.KeySession); email != "new@x.com" {
		t.Fatalf("session email not persisted, got %q", email)
	}
	if raw, _ := env.kvValue(t, kv.KeyRoster); !strings.Contains(raw, "new@x.com") {
		t.Fatalf("roster not persisted with new user")
	}
}

func TestSignInCustomerNeedsNoPassword(t *testing.T) {
	env := newTestStore(t)
	wrong := "nope"
	out := env.store.SignIn(context.Background(), "user@example.com", &wrong)
	if !out.OK {
		t.Fatalf("customer sign in must ignore password")
	}
}

func TestSignInElevatedWrongPasswordFails(t *testing.T) {
	env := newTestStore(t)
	env.events.reset()
	wrong := "letmein"

	out := env.store.SignIn(context.Background(), "seller@example.com", &wrong)
	if out.OK {
		t.Fatalf("expected failure")
	}
	if out.Notification == nil || out.Notification.Title != "Sign In Failed" || out.Notification.Variant != enums.NotificationVariantDestructive {
		t.Fatalf("expected destructive sign-in failure, got %+v", out.Notification)
	}
	if _, ok := env.store.CurrentUser(); ok {
		t.Fatalf("failed sign in must not set a session")
	}
	if _, ok := env.kvValue(t, kv.KeySession); ok {
		t.Fatalf("failed sign in must not persist a session")
	}
	if env.store.Snapshot().IsUserLoading {
		t.Fatalf("failure must clear the loading flag")
	}
	if n := env.events.notifications(); len(n) != 1 {
		t.Fatalf("expected one notification event, got %d", len(n))
	}
}

func TestSignInFailureKeepsPriorSession(t *testing.T) {
	env := newTestStore(t)
	env.signIn(t, "user@example.com")
	wrong := "bad"

	env.store.SignIn(context.Background(), "admin@example.com", &wrong)

	user, ok := env.store.CurrentUser()
	if !ok || user.Email != "user@example.com" {
		t.Fatalf("expected prior session to survive, got %+v", user)
	}
}

func TestSignInElevatedRoutesByRole(t *testing.T) {
	cases := []struct {
		email string
		route enums.Route
	}{
		{"seller@example.com", enums.RouteSeller},
		{"admin@example.com", enums.RouteAdmin},
		{"user@example.com", enums.RouteHome},
	}
	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			env := newTestStore(t)
			pw := SentinelPassword
			out := env.store.SignIn(context.Background(), tc.email, &pw)
			if !out.OK || out.Redirect != tc.route {
				t.Fatalf("expected redirect %s, got %+v", tc.route, out)
			}
		})
	}
}

func TestSignInNilPasswordDefaultsToSentinel(t *testing.T) {
	env := newTestStore(t)
	out := env.store.SignIn(context.Background(), "seller@example.com", nil)
	if !out.OK {
		t.Fatalf("nil password should default to the sentinel")
	}
}

func TestSignInEmptyEmailFails(t *testing.T) {
	env := newTestStore(t)
	before := len(env.store.Roster())
	out := env.store.SignIn(context.Background(), "  ", nil)
	if out.OK || out.Notification == nil {
		t.Fatalf("expected failure notification")
	}
	if len(env.store.Roster()) != before {
		t.Fatalf("empty email must not register a user")
	}
}

func TestSignInCancelledDuringDelay(t *testing.T) {
	env := newTestStore(t, withSignInDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan Outcome, 1)
	go func() { done <- env.store.SignIn(ctx, "new@x.com", nil) }()

	deadline := time.Now().Add(2 * time.Second)
	for !env.store.Snapshot().IsUserLoading {
		if time.Now().After(deadline) {
			t.Fatalf("sign in never entered loading state")
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case out := <-done:
		if out.OK {
			t.Fatalf("cancelled sign in must fail")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("sign in did not return after cancel")
	}
	if env.store.Snapshot().IsUserLoading {
		t.Fatalf("cancelled sign in must clear the loading flag")
	}
	if _, ok := env.store.CurrentUser(); ok {
		t.Fatalf("cancelled sign in must not set a session")
	}
}

func TestSignOutClearsSession(t *testing.T) {
	env := newTestStore(t)
	env.signIn(t, "user@example.com")

	out := env.store.SignOut(context.Background())
	if !out.OK || out.Redirect != enums.RouteHome {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if _, ok := env.store.CurrentUser(); ok {
		t.Fatalf("session should be cleared")
	}
	if _, ok := env.kvValue(t, kv.KeySession); ok {
		t.Fatalf("remembered email should be removed")
	}
}

func TestKVFailuresAreSwallowed(t *testing.T) {
	base := newTestStore(t)
	env := newTestStore(t, withKV(flakyKV{Store: base.kv}))

	if out := env.store.SignIn(context.Background(), "new@x.com", nil); !out.OK {
		t.Fatalf("kv failure must not fail sign in")
	}
	if out := env.store.SignOut(context.Background()); !out.OK {
		t.Fatalf("kv failure must not fail sign out")
	}
}

func TestSnapshotNeverLeaksPasswordHash(t *testing.T) {
	roster := WithPasswordHash(DefaultRoster(), "admin@example.com", "$argon2id$fake")
	env := newTestStore(t, withRoster(roster...))
	env.store.mu.Lock()
	env.store.sessionEmail = "admin@example.com"
	env.store.mu.Unlock()

	snap := env.store.Snapshot()
	if snap.User == nil || snap.User.PasswordHash != "" {
		t.Fatalf("snapshot user must not carry a hash: %+v", snap.User)
	}
	for _, u := range env.store.Roster() {
		if u.PasswordHash != "" {
			t.Fatalf("roster must not carry hashes")
		}
	}
}
