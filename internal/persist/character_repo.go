package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrNameTaken         = errors.New("character name already used")
	ErrSlotTaken         = errors.New("character slot already used")
)

type CharacterRow struct {
	ID        uint32
	AccountID uint32
	Slot      uint8
	Name      string
	Sex       uint8
	Job       uint16
	Head      uint16
	BaseLevel uint16
	JobLevel  int32
	BaseExp   int64
	JobExp    int64
	Zeny      int32
	HP        int64
	MaxHP     int64
	SP        int64
	MaxSP     int64
	Str       uint8
	Agi       uint8
	Vit       uint8
	Int       uint8
	Dex       uint8
	Luk       uint8
	MapName   string
	X         uint16
	Y         uint16
}

type CharacterRepo struct {
	db *DB
}

func NewCharacterRepo(db *DB) *CharacterRepo {
	return &CharacterRepo{db: db}
}

const characterColumns = `id, account_id, slot, name, sex, job, head,
	base_level, job_level, base_exp, job_exp, zeny,
	hp, max_hp, sp, max_sp,
	str, agi, vit, int, dex, luk,
	map_name, x, y`

type scanner interface {
	Scan(dest ...any) error
}

func scanCharacter(s scanner) (CharacterRow, error) {
	var c CharacterRow
	err := s.Scan(
		&c.ID, &c.AccountID, &c.Slot, &c.Name, &c.Sex, &c.Job, &c.Head,
		&c.BaseLevel, &c.JobLevel, &c.BaseExp, &c.JobExp, &c.Zeny,
		&c.HP, &c.MaxHP, &c.SP, &c.MaxSP,
		&c.Str, &c.Agi, &c.Vit, &c.Int, &c.Dex, &c.Luk,
		&c.MapName, &c.X, &c.Y,
	)
	return c, err
}

func (r *CharacterRepo) LoadByAccount(ctx context.Context, accountID uint32) ([]CharacterRow, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE account_id = ? ORDER BY slot`, accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CharacterRow
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *CharacterRepo) LoadBySlot(ctx context.Context, accountID uint32, slot uint8) (*CharacterRow, error) {
	c, err := scanCharacter(r.db.SQL.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE account_id = ? AND slot = ?`, accountID, slot,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCharacterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CharacterRepo) Load(ctx context.Context, id uint32) (*CharacterRow, error) {
	c, err := scanCharacter(r.db.SQL.QueryRowContext(ctx,
		`SELECT `+characterColumns+` FROM characters WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCharacterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts c and fills in its id. Name and slot collisions are
// reported as ErrNameTaken and ErrSlotTaken.
func (r *CharacterRepo) Create(ctx context.Context, c *CharacterRow) error {
	if taken, err := r.NameExists(ctx, c.Name); err != nil {
		return err
	} else if taken {
		return ErrNameTaken
	}
	if _, err := r.LoadBySlot(ctx, c.AccountID, c.Slot); err == nil {
		return ErrSlotTaken
	} else if !errors.Is(err, ErrCharacterNotFound) {
		return err
	}

	res, err := r.db.SQL.ExecContext(ctx,
		`INSERT INTO characters (
			account_id, slot, name, sex, job, head,
			base_level, job_level, base_exp, job_exp, zeny,
			hp, max_hp, sp, max_sp,
			str, agi, vit, int, dex, luk,
			map_name, x, y
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.AccountID, c.Slot, c.Name, c.Sex, c.Job, c.Head,
		c.BaseLevel, c.JobLevel, c.BaseExp, c.JobExp, c.Zeny,
		c.HP, c.MaxHP, c.SP, c.MaxSP,
		c.Str, c.Agi, c.Vit, c.Int, c.Dex, c.Luk,
		c.MapName, c.X, c.Y,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return ErrNameTaken
		}
		return fmt.Errorf("insert character: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint32(id)
	return nil
}

func (r *CharacterRepo) NameExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.SQL.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM characters WHERE name = ?)`, name,
	).Scan(&exists)
	return exists, err
}

// Delete removes a character owned by accountID.
func (r *CharacterRepo) Delete(ctx context.Context, accountID, id uint32) error {
	res, err := r.db.SQL.ExecContext(ctx,
		`DELETE FROM characters WHERE id = ? AND account_id = ?`, id, accountID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// SwitchSlot moves the character in slot from to slot to, swapping with
// whatever occupies the destination.
func (r *CharacterRepo) SwitchSlot(ctx context.Context, accountID uint32, from, to uint8) error {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE characters SET slot = -1 WHERE account_id = ? AND slot = ?`, accountID, from,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCharacterNotFound
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE characters SET slot = ? WHERE account_id = ? AND slot = ?`, from, accountID, to,
	); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE characters SET slot = ? WHERE account_id = ? AND slot = -1`, to, accountID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// SavePosition updates the character's map and tile.
func (r *CharacterRepo) SavePosition(ctx context.Context, id uint32, mapName string, x, y uint16) error {
	_, err := r.db.SQL.ExecContext(ctx,
		`UPDATE characters SET map_name = ?, x = ?, y = ? WHERE id = ?`, mapName, x, y, id,
	)
	return err
}
