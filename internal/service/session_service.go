package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
	"voiceunheard/internal/state"
)

type SessionService interface {
	Start(ctx context.Context) error
	SignIn(ctx context.Context, email, password string) (state.State, error)
	SignUp(ctx context.Context, email, password string) (state.State, error)
	SignOut(ctx context.Context) (state.State, error)
	Current(ctx context.Context) state.State
	IsModerator(ctx context.Context) bool
	SetView(tab models.Tab) (state.State, error)
}

// PendingCounter refreshes the moderation badge after a moderator signs in.
type PendingCounter interface {
	RefreshPendingCount(ctx context.Context) int
}

type sessionService struct {
	auth        AuthService
	profileRepo repository.ProfileRepository
	store       *state.Store
	pending     PendingCounter

	// serialises role resolution so events apply in emission order
	mu      sync.Mutex
	lastSeq uint64
}

func NewSessionService(auth AuthService, profileRepo repository.ProfileRepository, store *state.Store, pending PendingCounter) SessionService {
	return &sessionService{
		auth:        auth,
		profileRepo: profileRepo,
		store:       store,
		pending:     pending,
	}
}

// Start subscribes to auth events for the lifetime of ctx and restores the
// persisted session, which arrives as the initial event.
func (s *sessionService) Start(ctx context.Context) error {
	unsubscribe := s.auth.Subscribe(func(event AuthEvent) {
		s.handle(context.WithoutCancel(ctx), event)
	})
	go func() {
		<-ctx.Done()
		unsubscribe()
	}()

	if _, err := s.auth.Restore(ctx); err != nil {
		return fmt.Errorf("ошибка восстановления сессии: %w", err)
	}
	return nil
}

func (s *sessionService) handle(ctx context.Context, event AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Seq <= s.lastSeq {
		slog.Debug("[SessionService] stale auth event dropped",
			slog.String("event", string(event.Type)),
			slog.Uint64("seq", event.Seq))
		return
	}
	s.lastSeq = event.Seq

	role := models.RoleNone
	if event.Session != nil {
		role = s.resolveRole(ctx, event.Session.UserID)
	}

	next := s.store.Update(func(st state.State) state.State {
		return state.SetSession(st, event.Session, role)
	})

	slog.Info("[SessionService] session changed",
		slog.String("event", string(event.Type)),
		slog.String("role", string(next.Role)))

	if next.IsModerator() && s.pending != nil {
		s.pending.RefreshPendingCount(ctx)
	}
}

// resolveRole falls back to the ordinary user role whenever the profile
// lookup cannot say otherwise.
func (s *sessionService) resolveRole(ctx context.Context, userID string) models.Role {
	raw, err := s.profileRepo.GetRole(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Warn("[SessionService] role lookup failed",
				slog.String("user_id", userID),
				slog.Any("error", err))
		}
		return models.RoleUser
	}
	return NormalizeRole(raw)
}

func NormalizeRole(raw string) models.Role {
	switch models.Role(raw) {
	case models.RoleModerator:
		return models.RoleModerator
	default:
		return models.RoleUser
	}
}

func (s *sessionService) SignIn(ctx context.Context, email, password string) (state.State, error) {
	if _, err := s.auth.SignIn(ctx, email, password); err != nil {
		return s.store.Snapshot(), err
	}
	return s.store.Snapshot(), nil
}

func (s *sessionService) SignUp(ctx context.Context, email, password string) (state.State, error) {
	if _, err := s.auth.SignUp(ctx, email, password); err != nil {
		return s.store.Snapshot(), err
	}
	return s.store.Snapshot(), nil
}

func (s *sessionService) SignOut(ctx context.Context) (state.State, error) {
	if err := s.auth.SignOut(ctx); err != nil {
		return s.store.Snapshot(), err
	}
	return s.store.Snapshot(), nil
}

// Current revalidates the session with the auth provider before reading
// state. A lapsed access token is refreshed or signed out there, and the
// resulting event is applied before the snapshot is taken.
func (s *sessionService) Current(ctx context.Context) state.State {
	s.auth.GetSession(ctx)
	return s.store.Snapshot()
}

func (s *sessionService) IsModerator(ctx context.Context) bool {
	return s.Current(ctx).IsModerator()
}

func (s *sessionService) SetView(tab models.Tab) (state.State, error) {
	switch tab {
	case models.TabFeed, models.TabSpeak, models.TabAdmin, models.TabLearn, models.TabHelp, models.TabProfile:
	default:
		return s.store.Snapshot(), fmt.Errorf("%w: неизвестная вкладка %q", ErrValidation, tab)
	}

	allowed := true
	next := s.store.Update(func(st state.State) state.State {
		out, ok := state.SetTab(st, tab)
		allowed = ok
		return out
	})
	if !allowed {
		return next, ErrForbidden
	}
	return next, nil
}
