// Package session persists the signed-in user's token and identity in the
// local SQLite database so a session survives restarts of the client.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/dmitrijs2005/runnio/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/runnio/internal/common"
	"github.com/dmitrijs2005/runnio/internal/dbx"
	"github.com/dmitrijs2005/runnio/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenKey    = "session.token"
	IdentityKey = "session.identity"
)

// Session is a token together with the identity it was issued for.
type Session struct {
	Token    string
	Identity *models.Identity
}

// Store reads and writes the persisted session. The token and identity are
// always written and removed together in one transaction.
type Store struct {
	db  *sql.DB
	log logging.Logger
	now func() time.Time
}

func NewStore(db *sql.DB, log logging.Logger) *Store {
	if log == nil {
		log = logging.Discard()
	}
	return &Store{db: db, log: log, now: time.Now}
}

// Load returns the persisted session, or (nil, nil) when there is none.
//
// A partial or unreadable session (one key missing or a malformed identity)
// is corrupt: it is treated as absent and both keys are removed, so a second
// Load also reports absent. Only storage failures are returned as errors.
//
// As an extension beyond corruption, a token that parses as a JWT whose exp
// claim has passed is discarded the same way, so Load after Save does not
// return such a token. Opaque tokens are never checked for expiry.
func (s *Store) Load(ctx context.Context) (*Session, error) {
	var sess *Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		token, err := repo.Get(ctx, TokenKey)
		if err != nil {
			return err
		}
		raw, err := repo.Get(ctx, IdentityKey)
		if err != nil {
			return err
		}
		if token == nil && raw == nil {
			return nil
		}

		candidate, reason := s.decode(token, raw)
		if reason != nil {
			s.log.Warn(ctx, "discarding persisted session", "reason", reason)
			return repo.Delete(ctx, TokenKey, IdentityKey)
		}
		sess = candidate
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return sess, nil
}

func (s *Store) decode(token, raw []byte) (*Session, error) {
	if len(token) == 0 {
		return nil, fmt.Errorf("%w: token missing", common.ErrCorruptSession)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: identity missing", common.ErrCorruptSession)
	}

	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCorruptSession, err)
	}
	if err := identity.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrCorruptSession, err)
	}

	tok := string(token)
	if err := checkExpiry(tok, s.now()); err != nil {
		return nil, err
	}
	return &Session{Token: tok, Identity: &identity}, nil
}

// checkExpiry rejects JWTs whose exp claim has passed. Tokens that do not
// parse as JWTs are opaque to the client and accepted as is; the server
// remains the authority on their validity.
func checkExpiry(token string, now time.Time) error {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return common.ErrTokenExpired
	}
	return nil
}

// Save replaces the persisted session with token and identity.
func (s *Store) Save(ctx context.Context, token string, identity *models.Identity) error {
	if token == "" {
		return fmt.Errorf("save session: %w", common.ErrInvalidToken)
	}
	if err := identity.Validate(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("save session: encode identity: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, IdentityKey, raw)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, TokenKey, IdentityKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
