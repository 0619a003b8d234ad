package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrNotEnoughItems = errors.New("not enough items")
	ErrStackFull      = errors.New("item stack full")
)

// ItemRow represents a persisted inventory item.
type ItemRow struct {
	ID            uint32
	CharID        uint32
	ItemID        uint32
	Amount        uint16
	EquipPosition uint32
	Equipped      bool
	Identified    bool
}

type ItemRepo struct {
	db *DB
}

func NewItemRepo(db *DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// LoadByCharID returns all items belonging to a character, oldest first.
func (r *ItemRepo) LoadByCharID(ctx context.Context, charID uint32) ([]ItemRow, error) {
	rows, err := r.db.SQL.QueryContext(ctx,
		`SELECT id, char_id, item_id, amount, equip_position, equipped, identified
		 FROM character_items WHERE char_id = ? ORDER BY id`, charID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ItemRow
	for rows.Next() {
		var it ItemRow
		if err := rows.Scan(
			&it.ID, &it.CharID, &it.ItemID, &it.Amount,
			&it.EquipPosition, &it.Equipped, &it.Identified,
		); err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	return result, rows.Err()
}

// ItemGrant is one item row to store.
type ItemGrant struct {
	ItemID        uint32
	Amount        uint16
	EquipPosition uint32
}

// ItemTake takes Amount off the row ID.
type ItemTake struct {
	ID     uint32
	Amount uint16
}

// Add stacks amount onto an existing non-equippable row of the same item
// or inserts a new row. The stored row is returned.
func (r *ItemRepo) Add(ctx context.Context, charID, itemID uint32, amount uint16, equipPosition uint32) (*ItemRow, error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	it, err := addItem(ctx, tx, charID, ItemGrant{ItemID: itemID, Amount: amount, EquipPosition: equipPosition})
	if err != nil {
		return nil, err
	}
	return it, tx.Commit()
}

// Purchase stores every grant and sets the character's zeny in one
// transaction. Nothing is stored when any step fails.
func (r *ItemRepo) Purchase(ctx context.Context, charID uint32, grants []ItemGrant, zeny int32) ([]ItemRow, error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows := make([]ItemRow, 0, len(grants))
	for _, g := range grants {
		it, err := addItem(ctx, tx, charID, g)
		if err != nil {
			return nil, fmt.Errorf("add item %d: %w", g.ItemID, err)
		}
		rows = append(rows, *it)
	}
	if err := setZeny(ctx, tx, charID, zeny); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Sell removes every take and sets the character's zeny in one
// transaction. A take larger than its row fails with ErrNotEnoughItems and
// nothing changes.
func (r *ItemRepo) Sell(ctx context.Context, charID uint32, takes []ItemTake, zeny int32) error {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range takes {
		have, err := itemAmount(ctx, tx, charID, t.ID)
		if err != nil {
			return err
		}
		if t.Amount > have {
			return fmt.Errorf("%w: row %d holds %d, want %d", ErrNotEnoughItems, t.ID, have, t.Amount)
		}
		if _, err := takeItem(ctx, tx, t.ID, have, t.Amount); err != nil {
			return err
		}
	}
	if err := setZeny(ctx, tx, charID, zeny); err != nil {
		return err
	}
	return tx.Commit()
}

func addItem(ctx context.Context, tx *sql.Tx, charID uint32, g ItemGrant) (*ItemRow, error) {
	it := ItemRow{CharID: charID, ItemID: g.ItemID, EquipPosition: g.EquipPosition, Identified: true}
	if g.EquipPosition == 0 {
		err := tx.QueryRowContext(ctx,
			`SELECT id, amount FROM character_items
			 WHERE char_id = ? AND item_id = ? AND equip_position = 0`, charID, g.ItemID,
		).Scan(&it.ID, &it.Amount)
		switch {
		case err == nil:
			if int(it.Amount)+int(g.Amount) > math.MaxUint16 {
				return nil, ErrStackFull
			}
			it.Amount += g.Amount
			if _, err := tx.ExecContext(ctx,
				`UPDATE character_items SET amount = ? WHERE id = ?`, it.Amount, it.ID,
			); err != nil {
				return nil, err
			}
			return &it, nil
		case !errors.Is(err, sql.ErrNoRows):
			return nil, err
		}
	}

	it.Amount = g.Amount
	res, err := tx.ExecContext(ctx,
		`INSERT INTO character_items (char_id, item_id, amount, equip_position, equipped, identified)
		 VALUES (?, ?, ?, ?, 0, 1)`,
		charID, g.ItemID, g.Amount, g.EquipPosition,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	it.ID = uint32(id)
	return &it, nil
}

func itemAmount(ctx context.Context, tx *sql.Tx, charID, id uint32) (uint16, error) {
	var have uint16
	err := tx.QueryRowContext(ctx,
		`SELECT amount FROM character_items WHERE id = ? AND char_id = ?`, id, charID,
	).Scan(&have)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrItemNotFound
	}
	return have, err
}

// takeItem removes amount (at most have) from row id and returns what is left.
func takeItem(ctx context.Context, tx *sql.Tx, id uint32, have, amount uint16) (uint16, error) {
	if amount >= have {
		_, err := tx.ExecContext(ctx, `DELETE FROM character_items WHERE id = ?`, id)
		return 0, err
	}
	left := have - amount
	_, err := tx.ExecContext(ctx, `UPDATE character_items SET amount = ? WHERE id = ?`, left, id)
	return left, err
}

func setZeny(ctx context.Context, tx *sql.Tx, charID uint32, zeny int32) error {
	res, err := tx.ExecContext(ctx, `UPDATE characters SET zeny = ? WHERE id = ?`, zeny, charID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCharacterNotFound
	}
	return nil
}
