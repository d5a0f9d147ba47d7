package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mentorlink/client/internal/dbx"
)

// Storage keys. Each value lives under its own row so a future migration can
// add session-scoped flags without schema changes.
const (
	keyToken        = "token"
	keyRefreshToken = "refresh_token"
	keyRole         = "role"
)

// SQLiteStore keeps credentials in a local SQLite key-value table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save writes token, refresh token, and role in a single transaction so a
// crash cannot leave a token without its role.
func (s *SQLiteStore) Save(ctx context.Context, creds Credentials) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range map[string]string{
			keyToken:        creds.Token,
			keyRefreshToken: creds.RefreshToken,
			keyRole:         creds.Role,
		} {
			if err := set(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Read returns the stored credentials, or nil when no token is stored.
// A row that exists with an empty token counts as "nothing stored".
func (s *SQLiteStore) Read(ctx context.Context) (*Credentials, error) {
	token, err := get(ctx, s.db, keyToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	refresh, err := get(ctx, s.db, keyRefreshToken)
	if err != nil {
		return nil, err
	}
	role, err := get(ctx, s.db, keyRole)
	if err != nil {
		return nil, err
	}

	return &Credentials{Token: token, RefreshToken: refresh, Role: role}, nil
}

// Clear removes every stored key in one statement. Idempotent.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

func set(ctx context.Context, db dbx.DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

func get(ctx context.Context, db dbx.DBTX, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}
