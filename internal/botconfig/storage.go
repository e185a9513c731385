package botconfig

import (
	"context"
	"errors"
	"fmt"

	"print3d-order-admin/pkg"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx"
)

type Repo interface {
	// GetValue reports false when the key was never stored.
	GetValue(ctx context.Context, key string) (string, bool, error)
	GetAll(ctx context.Context) (map[string]string, error)
	// Upsert writes every pair in a single statement.
	Upsert(ctx context.Context, values map[string]string) error
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const upsertSuffix = "ON CONFLICT (config_key) DO UPDATE SET config_value = EXCLUDED.config_value, updated_at = now()"

type DefaultRepo struct {
	db *pgx.ConnPool
}

func NewDefaultRepo(db *pgx.ConnPool) Repo {
	return &DefaultRepo{db: db}
}

func (d *DefaultRepo) GetValue(ctx context.Context, key string) (string, bool, error) {
	query, args, err := psql.Select("config_value").
		From("bot_config").
		Where(sq.Eq{"config_key": key}).
		ToSql()
	if err != nil {
		return "", false, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	var value string
	err = d.db.QueryRowEx(ctx, query, nil, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false,
			&pkg.ErrDBProcedure{
				Cause: "failed to select config value",
				Info:  fmt.Sprintf("key: %s", key),
				Err:   err,
			}
	}
	return value, true, nil
}

func (d *DefaultRepo) GetAll(ctx context.Context) (map[string]string, error) {
	query, args, err := psql.Select("config_key", "config_value").
		From("bot_config").
		OrderBy("config_key").
		ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	rows, err := d.db.QueryEx(ctx, query, nil, args...)
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to select config", Err: err}
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, &pkg.ErrDBProcedure{Cause: "failed to scan config value", Err: err}
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to iterate config", Err: err}
	}
	return values, nil
}

func (d *DefaultRepo) Upsert(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	builder := psql.Insert("bot_config").Columns("config_key", "config_value")
	for _, key := range sortedKeys(values) {
		builder = builder.Values(key, values[key])
	}
	query, args, err := builder.Suffix(upsertSuffix).ToSql()
	if err != nil {
		return &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	if _, err := d.db.ExecEx(ctx, query, nil, args...); err != nil {
		return &pkg.ErrDBProcedure{
			Cause: "failed to upsert config",
			Info:  fmt.Sprintf("keys: %d", len(values)),
			Err:   err,
		}
	}
	return nil
}
