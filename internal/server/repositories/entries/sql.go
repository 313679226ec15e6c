package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kbadmin/internal/common"
	"github.com/dmitrijs2005/kbadmin/internal/dbx"
	"github.com/dmitrijs2005/kbadmin/internal/server/models"
)

const (
	entryColumns = `id, title, description, category, status, created_at, tech_name, prod_time, views, image`

	queryList   = `SELECT ` + entryColumns + ` FROM knowledge_entries ORDER BY seq`
	queryGet    = `SELECT ` + entryColumns + ` FROM knowledge_entries WHERE id = ?`
	queryInsert = `INSERT INTO knowledge_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	queryUpdate = `UPDATE knowledge_entries
		SET title = ?, description = ?, category = ?, status = ?, tech_name = ?, prod_time = ?, views = ?, image = ?
		WHERE id = ?`
	queryDelete = `DELETE FROM knowledge_entries WHERE id = ?`
)

// SQLRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
// Queries are written with ? placeholders and rebound per dialect.
type SQLRepository struct {
	db          dbx.DBTX
	rebind      func(string) string
	isDuplicate func(error) bool
}

func (r *SQLRepository) List(ctx context.Context) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(queryList))
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := []models.Entry{}
	for rows.Next() {
		var item models.Entry
		if err := scanEntry(rows, &item); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Entry, error) {
	var item models.Entry
	err := scanEntry(r.db.QueryRowContext(ctx, r.rebind(queryGet), id), &item)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select entry: %w", err)
	}
	return &item, nil
}

func (r *SQLRepository) Create(ctx context.Context, e *models.Entry) error {
	_, err := r.db.ExecContext(ctx, r.rebind(queryInsert),
		e.ID, e.Title, e.Description, e.Category, e.Status, e.CreatedAt, e.TechName, e.ProdTime, e.Views, e.Image)
	if err != nil {
		if r.isDuplicate(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLRepository) Update(ctx context.Context, e *models.Entry) error {
	res, err := r.db.ExecContext(ctx, r.rebind(queryUpdate),
		e.Title, e.Description, e.Category, e.Status, e.TechName, e.ProdTime, e.Views, e.Image, e.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.rebind(queryDelete), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner, e *models.Entry) error {
	return s.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.Status,
		&e.CreatedAt, &e.TechName, &e.ProdTime, &e.Views, &e.Image)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

// dollarPlaceholders rewrites ? placeholders to $1, $2, ... The queries
// above contain no literal question marks.
func dollarPlaceholders(q string) string {
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func keepPlaceholders(q string) string { return q }
