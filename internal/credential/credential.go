// Package credential owns the registered local accounts and the persisted
// session record. Passwords are stored as bcrypt hashes; the original
// storage scheme used a reversible encoding, which is deliberately not
// reproduced here.
package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatakou1021-design/sns-site/internal/domain"
	"github.com/hatakou1021-design/sns-site/internal/kv"
	"github.com/hatakou1021-design/sns-site/internal/validate"
)

const (
	accountsKey = "sns-accounts"
	sessionKey  = "sns-user"

	BcryptCost = 10
)

var (
	ErrInvalidInput = errors.New("invalid")
	// ErrDuplicateEmail is returned when registering an email that already
	// has an account, compared case-insensitively.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
)

type Ledger struct {
	kv kv.Store
}

func New(store kv.Store) *Ledger {
	return &Ledger{kv: store}
}

// Register creates a new account and establishes a session for it.
func (l *Ledger) Register(ctx context.Context, name, email, password string) (domain.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validate.SignUpForm(name, email, password); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	accounts := l.loadAccounts(ctx)
	for _, a := range accounts {
		if strings.EqualFold(a.Email, email) {
			return domain.Session{}, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return domain.Session{}, fmt.Errorf("hashing password: %w", err)
	}

	account := domain.Account{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hash),
	}
	l.saveAccounts(ctx, append(accounts, account))

	session := domain.Session{ID: account.ID, Name: account.Name, Email: account.Email}
	l.putSession(ctx, session)
	return session, nil
}

// Login verifies the credentials and establishes a session. An unknown email
// and a wrong password yield the same error.
func (l *Ledger) Login(ctx context.Context, email, password string) (domain.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var account domain.Account
	found := false
	for _, a := range l.loadAccounts(ctx) {
		if strings.EqualFold(a.Email, email) {
			account = a
			found = true
			break
		}
	}
	if !found {
		return domain.Session{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return domain.Session{}, ErrInvalidCredentials
	}

	session := domain.Session{ID: account.ID, Name: account.Name, Email: account.Email}
	l.putSession(ctx, session)
	return session, nil
}

// AdoptClaim establishes a session from an identity-provider claim, without
// any password verification and without touching the account table.
func (l *Ledger) AdoptClaim(ctx context.Context, claim domain.Claim) (domain.Session, error) {
	if claim.SubjectID == "" || claim.Email == "" {
		return domain.Session{}, fmt.Errorf("%w: claim is missing subject or email", ErrInvalidInput)
	}
	session := claim.Session()
	l.putSession(ctx, session)
	return session, nil
}

// Logout removes the persisted session. Logging out twice is fine.
func (l *Ledger) Logout(ctx context.Context) error {
	if err := l.kv.Remove(ctx, sessionKey); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Current returns the persisted session, or ErrNoSession.
func (l *Ledger) Current(ctx context.Context) (domain.Session, error) {
	raw, err := l.kv.Get(ctx, sessionKey)
	if errors.Is(err, kv.ErrNotExist) {
		return domain.Session{}, ErrNoSession
	}
	if err != nil {
		log.Error().Err(err).Msg("reading session")
		return domain.Session{}, ErrNoSession
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		log.Error().Err(err).Msg("parsing persisted session")
		return domain.Session{}, ErrNoSession
	}
	return session, nil
}

// UpdateProfileName changes the display name on the session copy only. The
// account table keeps the name given at registration.
func (l *Ledger) UpdateProfileName(ctx context.Context, name string) (domain.Session, error) {
	name = strings.TrimSpace(name)
	if err := validate.Name(name); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	session, err := l.Current(ctx)
	if err != nil {
		return domain.Session{}, err
	}

	session.Name = name
	l.putSession(ctx, session)
	return session, nil
}

func (l *Ledger) loadAccounts(ctx context.Context) []domain.Account {
	raw, err := l.kv.Get(ctx, accountsKey)
	if errors.Is(err, kv.ErrNotExist) {
		return nil
	}
	if err != nil {
		log.Error().Err(err).Msg("loading accounts")
		return nil
	}

	var accounts []domain.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		log.Error().Err(err).Msg("parsing persisted accounts")
		return nil
	}
	return accounts
}

func (l *Ledger) saveAccounts(ctx context.Context, accounts []domain.Account) {
	raw, err := json.Marshal(accounts)
	if err != nil {
		log.Error().Err(err).Msg("serializing accounts")
		return
	}
	if err := l.kv.Set(ctx, accountsKey, string(raw)); err != nil {
		log.Error().Err(err).Msg("saving accounts")
	}
}

func (l *Ledger) putSession(ctx context.Context, session domain.Session) {
	raw, err := json.Marshal(session)
	if err != nil {
		log.Error().Err(err).Msg("serializing session")
		return
	}
	if err := l.kv.Set(ctx, sessionKey, string(raw)); err != nil {
		log.Error().Err(err).Msg("saving session")
	}
}
