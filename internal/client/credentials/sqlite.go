package credentials

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/migrations"
	"github.com/dmitrijs2005/storefront/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/filex"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// SQLiteStore keeps the slot in the metadata table of the client database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLite opens (creating if needed) the client database at dsn and applies
// migrations. The caller owns the returned *sql.DB.
func OpenSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("open client database: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open client database: %w", err)
	}
	if err := migrations.Up(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Credentials, error) {
	values, err := metadata.NewSQLiteRepository(s.db).GetMany(ctx, accessTokenKey, refreshTokenKey)
	if err != nil {
		return Credentials{}, fmt.Errorf("load credentials: %w", err)
	}
	return Credentials{
		AccessToken:  string(values[accessTokenKey]),
		RefreshToken: string(values[refreshTokenKey]),
	}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, c Credentials) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := putOrDelete(ctx, repo, accessTokenKey, c.AccessToken); err != nil {
			return err
		}
		return putOrDelete(ctx, repo, refreshTokenKey, c.RefreshToken)
	})
	if err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, accessTokenKey, refreshTokenKey)
	})
	if err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

func putOrDelete(ctx context.Context, repo metadata.Repository, key, value string) error {
	if value == "" {
		return repo.Delete(ctx, key)
	}
	return repo.Set(ctx, key, []byte(value))
}
