package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"voiceunheard/internal/config"
	"voiceunheard/internal/localstore"
	"voiceunheard/internal/models"
	"voiceunheard/internal/repository"
)

const keyRefreshToken = "auth_refresh_token"

// AuthEvent is delivered to subscribers on every session change.
// Seq grows with each event so late deliveries can be recognised.
type AuthEvent struct {
	Seq     uint64
	Type    models.SessionEvent
	Session *models.Session
}

type AuthService interface {
	Restore(ctx context.Context) (*models.Session, error)
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	Refresh(ctx context.Context) (*models.Session, error)
	GetSession(ctx context.Context) *models.Session
	Subscribe(fn func(AuthEvent)) func()
	ValidateToken(tokenString string) (*jwt.Token, error)
}

type authService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	kv          localstore.KV
	cfg         *config.Config

	mu        sync.Mutex
	session   *models.Session
	seq       uint64
	nextSubID int
	subs      map[int]func(AuthEvent)
}

func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, kv localstore.KV, cfg *config.Config) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		kv:          kv,
		cfg:         cfg,
		subs:        make(map[int]func(AuthEvent)),
	}
}

// Restore resumes the session persisted on this device, if any, and
// announces the result as the initial session.
func (s *authService) Restore(ctx context.Context) (*models.Session, error) {
	token, ok, err := s.kv.Get(ctx, keyRefreshToken)
	if err != nil || !ok || token == "" {
		s.emit(models.EventInitialSession, nil)
		return nil, err
	}

	session, err := s.rotate(ctx, token)
	if err != nil {
		slog.Warn("[AuthService] stored session rejected", slog.Any("error", err))
		_ = s.kv.Delete(ctx, keyRefreshToken)
		s.emit(models.EventInitialSession, nil)
		return nil, nil
	}

	s.emit(models.EventInitialSession, session)
	return session, nil
}

func (s *authService) SignUp(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email и пароль обязательны", ErrValidation)
	}

	existingUser, err := s.userRepo.GetUserByEmail(ctx, email)
	if err == nil && existingUser != nil {
		return nil, fmt.Errorf("%w: пользователь с email %s уже существует", ErrValidation, email)
	}

	user := &models.User{Email: email}
	if err := s.userRepo.CreateUser(ctx, user, password); err != nil {
		return nil, fmt.Errorf("ошибка при регистрации: %w", err)
	}

	if err := s.profileRepo.Create(ctx, user.UserID, string(models.RoleUser)); err != nil {
		slog.Warn("[AuthService] profile not created",
			slog.String("user_id", user.UserID),
			slog.Any("error", err))
	}

	return s.SignIn(ctx, email, password)
}

func (s *authService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email и пароль обязательны", ErrValidation)
	}

	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	s.emit(models.EventSignedIn, session)
	return session, nil
}

func (s *authService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	current := s.session
	s.mu.Unlock()

	if current != nil {
		if err := s.userRepo.UpdateRefreshToken(ctx, current.UserID, "", time.Time{}); err != nil {
			slog.Warn("[AuthService] refresh token not revoked", slog.Any("error", err))
		}
	}
	if err := s.kv.Delete(ctx, keyRefreshToken); err != nil {
		slog.Warn("[AuthService] stored session not cleared", slog.Any("error", err))
	}

	s.emit(models.EventSignedOut, nil)
	return nil
}

func (s *authService) Refresh(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	current := s.session
	s.mu.Unlock()

	if current == nil {
		return nil, ErrNotSignedIn
	}

	session, err := s.rotate(ctx, current.RefreshToken)
	if err != nil {
		return nil, err
	}

	s.emit(models.EventTokenRefreshed, session)
	return session, nil
}

// GetSession returns the current session, refreshing it when the access
// token has lapsed. A session that cannot be refreshed is signed out.
func (s *authService) GetSession(ctx context.Context) *models.Session {
	s.mu.Lock()
	current := s.session
	s.mu.Unlock()

	if current == nil {
		return nil
	}
	if _, err := s.ValidateToken(current.AccessToken); err == nil {
		out := *current
		return &out
	}

	session, err := s.Refresh(ctx)
	if err != nil {
		slog.Info("[AuthService] session expired", slog.Any("error", err))
		_ = s.SignOut(ctx)
		return nil
	}
	return session
}

func (s *authService) Subscribe(fn func(AuthEvent)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *authService) emit(eventType models.SessionEvent, session *models.Session) {
	s.mu.Lock()
	s.seq++
	s.session = session
	event := AuthEvent{Seq: s.seq, Type: eventType}
	if session != nil {
		copied := *session
		event.Session = &copied
	}
	listeners := make([]func(AuthEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(event)
	}
}

func (s *authService) rotate(ctx context.Context, refreshToken string) (*models.Session, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("недействительный refresh token: %w", err)
	}
	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *models.User) (*models.Session, error) {
	accessToken, expiresAt, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации access token: %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("ошибка сохранения refresh token: %w", err)
	}

	if err := s.kv.Set(ctx, keyRefreshToken, refreshToken); err != nil {
		slog.Warn("[AuthService] session not persisted", slog.Any("error", err))
	}

	return &models.Session{
		UserID:       user.UserID,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTokenDuration)

	claims := jwt.MapClaims{
		"userId": user.UserID,
		"email":  user.Email,
		"exp":    expiresAt.Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return tokenString, expiresAt, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга токена: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("недействительный токен")
	}

	return token, nil
}
