package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Sub-repositories are exposed as
// methods so a Tx-scoped Store can hand out the same repositories bound to
// the transaction, and nobody can start a transaction within a transaction.
type Store interface {
	Users() Users
	Passkeys() Passkeys
	Challenges() Challenges
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller MUST Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsernameOrEmail matches either column; both are stored lowercased.
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error)

	// CreateUser inserts a user. Duplicate username or email yields ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	UpdateLastLogin(ctx context.Context, userID string, at time.Time) error
	MarkEmailVerified(ctx context.Context, userID string, at time.Time) error

	// SetActive flips the active flag. Unknown users yield ErrNotFound.
	SetActive(ctx context.Context, userID string, active bool, at time.Time) error
}

type Passkeys interface {
	// CreatePasskey inserts a credential. A duplicate credential id yields ErrAlreadyExists.
	CreatePasskey(ctx context.Context, p domain.PasskeyCredential) error

	GetPasskey(ctx context.Context, credentialID string) (domain.PasskeyCredential, error)

	// ListUserPasskeys returns the user's credentials, oldest first.
	ListUserPasskeys(ctx context.Context, userID string) ([]domain.PasskeyCredential, error)

	CountUserPasskeys(ctx context.Context, userID string) (int, error)

	// AdvanceSignCount stores newCount and usedAt only while the stored count
	// is below newCount, or both are zero. Returns false when the condition
	// no longer holds, leaving the row untouched.
	AdvanceSignCount(ctx context.Context, credentialID string, newCount uint32, usedAt time.Time) (bool, error)

	// DeleteUserPasskey removes a credential owned by userID. ErrNotFound if
	// no such credential belongs to the user.
	DeleteUserPasskey(ctx context.Context, userID, credentialID string) error
}

// Challenges holds one-time ceremony challenges.
type Challenges interface {
	CreateChallenge(ctx context.Context, c domain.Challenge) error

	// ConsumeChallenge atomically fetches and deletes a challenge. Of any
	// concurrent callers exactly one receives it; the rest get ErrNotFound.
	ConsumeChallenge(ctx context.Context, id string) (domain.Challenge, error)

	DeleteExpiredChallenges(ctx context.Context, now time.Time) error
}

// RevokedTokens is the revocation list.
type RevokedTokens interface {
	// RevokeToken inserts the record unless one already exists for the hash,
	// reporting whether this call inserted it.
	RevokeToken(ctx context.Context, t domain.RevokedToken) (bool, error)

	// IsTokenRevoked reports whether an unexpired record exists for hash.
	IsTokenRevoked(ctx context.Context, hash string, now time.Time) (bool, error)

	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) error
}
