package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wedlink-admin/internal/common"
	"github.com/dmitrijs2005/wedlink-admin/internal/cryptox"
	"github.com/dmitrijs2005/wedlink-admin/internal/dbx"
)

const saltSize = 16

// TokenStore persists the access token between runs.
type TokenStore interface {
	// Load returns "" when no token is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// SQLiteTokenStore keeps the token in the local metadata table. When a secret
// is configured the token is sealed with AES-GCM under a key derived from the
// secret and a per-install salt.
type SQLiteTokenStore struct {
	db     *sql.DB
	secret []byte
}

func NewSQLiteTokenStore(db *sql.DB, secret string) *SQLiteTokenStore {
	s := &SQLiteTokenStore{db: db}
	if secret != "" {
		s.secret = []byte(secret)
	}
	return s
}

func (s *SQLiteTokenStore) Load(ctx context.Context) (string, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	raw, err := repo.Get(ctx, metadata.KeyAccessToken)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	if len(raw) == 0 {
		return "", nil
	}
	if s.secret == nil {
		return string(raw), nil
	}

	salt, err := repo.Get(ctx, metadata.KeyTokenSalt)
	if err != nil {
		return "", fmt.Errorf("load token salt: %w", err)
	}
	if len(salt) == 0 {
		return "", fmt.Errorf("sealed token without salt")
	}

	key := cryptox.DeriveKey(s.secret, salt)
	plain, err := cryptox.Open(raw, key)
	if err != nil {
		return "", fmt.Errorf("open token: %w", err)
	}
	return string(plain), nil
}

func (s *SQLiteTokenStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		if s.secret == nil {
			return repo.Set(ctx, metadata.KeyAccessToken, []byte(token))
		}

		salt, err := repo.Get(ctx, metadata.KeyTokenSalt)
		if err != nil {
			return err
		}
		if len(salt) == 0 {
			salt = common.GenerateRandByteArray(saltSize)
			if err := repo.Set(ctx, metadata.KeyTokenSalt, salt); err != nil {
				return err
			}
		}

		sealed, err := cryptox.Seal([]byte(token), cryptox.DeriveKey(s.secret, salt))
		if err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyAccessToken, sealed)
	})
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, metadata.KeyAccessToken)
}
