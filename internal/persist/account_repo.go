package persist

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AccountRow struct {
	ID           uint32
	Name         string
	PasswordHash string
	Sex          uint8
	CreatedAt    time.Time
	LastActive   *time.Time
}

type AccountRepo struct {
	db *DB
}

func NewAccountRepo(db *DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Load returns nil without error when no account has that name.
func (r *AccountRepo) Load(ctx context.Context, name string) (*AccountRow, error) {
	row := &AccountRow{}
	var created int64
	var active sql.NullInt64
	err := r.db.SQL.QueryRowContext(ctx,
		`SELECT id, name, password_hash, sex, created_at, last_active
		 FROM accounts WHERE name = ?`, name,
	).Scan(&row.ID, &row.Name, &row.PasswordHash, &row.Sex, &created, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	row.CreatedAt = time.Unix(created, 0)
	if active.Valid {
		t := time.Unix(active.Int64, 0)
		row.LastActive = &t
	}
	return row, nil
}

func (r *AccountRepo) Create(ctx context.Context, name, rawPassword string, sex uint8) (*AccountRow, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	row := &AccountRow{
		Name:         name,
		PasswordHash: string(hash),
		Sex:          sex,
		CreatedAt:    now,
		LastActive:   &now,
	}
	res, err := r.db.SQL.ExecContext(ctx,
		`INSERT INTO accounts (name, password_hash, sex, created_at, last_active)
		 VALUES (?, ?, ?, ?, ?)`,
		row.Name, row.PasswordHash, row.Sex, now.Unix(), now.Unix(),
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	row.ID = uint32(id)
	return row, nil
}

func (r *AccountRepo) ValidatePassword(hash string, rawPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawPassword)) == nil
}

func (r *AccountRepo) UpdateLastActive(ctx context.Context, id uint32) error {
	_, err := r.db.SQL.ExecContext(ctx,
		`UPDATE accounts SET last_active = ? WHERE id = ?`, time.Now().Unix(), id,
	)
	return err
}
