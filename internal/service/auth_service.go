package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"bjustcoin/internal/auth"
	apperrors "bjustcoin/internal/errors"
	"bjustcoin/internal/model"
	"bjustcoin/internal/notifier"
	"bjustcoin/internal/repository"
)

// maxLoginAttempts is the login-guard threshold: once the stored counter
// passes it, attempts fail before credentials are even checked.
const maxLoginAttempts = 99

// verificationTokenTTL bounds how long an emailed code stays valid.
const verificationTokenTTL = 24 * time.Hour

// SignupInput carries a registration request.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Token     string
}

// AuthService handles login (including the per-email attempt guard),
// invite/signup/reset through emailed verification codes, and session
// token resolution for the identity middleware.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Logout(ctx context.Context, actor *model.User) error
	Invite(ctx context.Context, name, email string) error
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Reset(ctx context.Context, email, password, token string) (*model.User, error)
	ResolveSession(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	authRepo  repository.AuthRequestRepository
	tokenRepo repository.VerificationTokenRepository
	hasher    *auth.Hasher
	sessions  auth.SessionStoreInterface
	mail      notifier.Notifier
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	authRepo repository.AuthRequestRepository,
	tokenRepo repository.VerificationTokenRepository,
	hasher *auth.Hasher,
	sessions auth.SessionStoreInterface,
	mail notifier.Notifier,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		authRepo:  authRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		sessions:  sessions,
		mail:      mail,
	}
}

// Login authenticates by email and password behind the attempt guard.
// A tripped guard fails before credentials are checked. A failed attempt
// increments the counter; the increment that crosses the threshold also
// forces the account into the blocked role. Successful logins leave the
// counter untouched.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, error) {
	req, err := s.authRepo.GetOrCreate(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: auth request: %v", apperrors.ErrInternal, err)
	}
	if req.Count > maxLoginAttempts {
		return nil, apperrors.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: find user: %v", apperrors.ErrInternal, err)
	}
	if user != nil && s.hasher.Verify(user.PasswordHash, password) {
		if err := s.sessions.Put(ctx, user.SessionToken, user.ID); err != nil {
			log.Printf("cache session for %d: %v", user.ID, err)
		}
		return user, nil
	}

	count, err := s.authRepo.Increment(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: count attempt: %v", apperrors.ErrInternal, err)
	}
	if count > maxLoginAttempts {
		if user != nil {
			if err := s.userRepo.UpdateRole(ctx, user.ID, model.RoleUserBlocked); err != nil {
				return nil, fmt.Errorf("%w: block user: %v", apperrors.ErrInternal, err)
			}
		}
		return nil, apperrors.ErrTooManyAttempts
	}
	return nil, apperrors.ErrInvalidCredentials
}

// Logout rotates the actor's session token, invalidating the old one
// everywhere.
func (s *authService) Logout(ctx context.Context, actor *model.User) error {
	token, err := auth.NewToken()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	if err := s.userRepo.UpdateSessionToken(ctx, actor.ID, token); err != nil {
		return fmt.Errorf("%w: rotate session: %v", apperrors.ErrInternal, err)
	}
	return s.sessions.Invalidate(ctx, actor.SessionToken)
}

// Invite creates a verification token for the address and mails the code.
func (s *authService) Invite(ctx context.Context, name, email string) error {
	value, err := auth.NewToken()
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	token := &model.VerificationToken{
		Email:     email,
		Token:     value,
		ExpiresAt: time.Now().Add(verificationTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return fmt.Errorf("%w: create verification token: %v", apperrors.ErrInternal, err)
	}

	go func() {
		if err := s.mail.Send(context.Background(), name, email,
			"Bjustcoin - Email confirmation code",
			"Here is your code - <strong>"+value+"</strong>"); err != nil {
			log.Printf("send verification code to %s: %v", email, err)
		}
	}()
	return nil
}

// claimToken validates value against email and expiry, then consumes it in
// a single conditional update so it cannot be replayed.
func (s *authService) claimToken(ctx context.Context, value, email string) error {
	token, err := s.tokenRepo.FindByToken(ctx, value)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return fmt.Errorf("%w: find verification token: %v", apperrors.ErrInternal, err)
	}
	if token.Email != email || !token.Usable(time.Now()) {
		return apperrors.ErrInvalidToken
	}
	consumed, err := s.tokenRepo.Consume(ctx, token.ID)
	if err != nil {
		return fmt.Errorf("%w: consume verification token: %v", apperrors.ErrInternal, err)
	}
	if !consumed {
		return apperrors.ErrInvalidToken
	}
	return nil
}

// Signup registers a new user against an emailed verification code. The
// first account ever promoted happens here: when no superuser exists, the
// new user becomes one, with the existence check and the promotion inside
// one transaction.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	if err := s.claimToken(ctx, in.Token, in.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	session, err := auth.NewToken()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}

	user := &model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		SessionToken: session,
	}

	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		if err := repo.Create(ctx, user); err != nil {
			return err
		}
		exists, err := repo.SuperuserExists(ctx)
		if err != nil {
			return err
		}
		if !exists {
			if err := repo.UpdateRole(ctx, user.ID, model.RoleSuperuser); err != nil {
				return err
			}
			user.Role = model.RoleSuperuser
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateValue
		}
		return nil, fmt.Errorf("%w: create user: %v", apperrors.ErrInternal, err)
	}

	if err := s.sessions.Put(ctx, user.SessionToken, user.ID); err != nil {
		log.Printf("cache session for %d: %v", user.ID, err)
	}
	return user, nil
}

// Reset sets a new password for an existing user against an emailed
// verification code.
func (s *authService) Reset(ctx context.Context, email, password, token string) (*model.User, error) {
	if err := s.claimToken(ctx, token, email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", apperrors.ErrInternal, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInternal, err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("%w: update password: %v", apperrors.ErrInternal, err)
	}
	return user, nil
}

// ResolveSession turns a bearer token into the live user. The redis cache
// is only a shortcut to the user id; the user row (and with it the current
// role) is always re-read so blocking takes effect immediately.
func (s *authService) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if id, ok := s.sessions.Lookup(ctx, token); ok {
		user, err := s.userRepo.FindByID(ctx, id)
		if err == nil && user.SessionToken == token {
			return user, nil
		}
	}

	user, err := s.userRepo.FindBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: resolve session: %v", apperrors.ErrInternal, err)
	}
	if err := s.sessions.Put(ctx, token, user.ID); err != nil {
		log.Printf("cache session for %d: %v", user.ID, err)
	}
	return user, nil
}
