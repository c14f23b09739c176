package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/models"
	"github.com/dmitrijs2005/finkeeper/internal/common"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const selectColumns = `SELECT id, username, email, password_hash, salt, created_at FROM credentials`

type scanner interface {
	Scan(dest ...any) error
}

func scanCredential(s scanner) (*models.Credential, error) {
	var (
		c     models.Credential
		nanos int64
	)
	if err := s.Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Salt, &nanos); err != nil {
		return nil, err
	}
	c.CreatedAt = time.Unix(0, nanos).UTC()
	return &c, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, c *models.Credential) error {
	query := `INSERT INTO credentials (id, username, email, password_hash, salt, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Username, c.Email, c.PasswordHash, c.Salt, c.CreatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("failed to insert credential: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if err := dbx.ExpectRowsAffected(res, 1); err != nil {
		return fmt.Errorf("delete credential %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Credential, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to select credentials: %w", err)
	}
	defer rows.Close()

	var result []models.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credential row: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credential rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) FindByUsername(ctx context.Context, username string) (*models.Credential, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE username = ? ORDER BY created_at DESC, rowid DESC LIMIT 1`, username)
	c, err := scanCredential(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find credential: %w", err)
	}
	return c, nil
}
