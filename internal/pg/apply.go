package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// код duplicate_object: повторный add constraint на уже размеченной базе
const codeDuplicateObject = "42710"

// ApplyDDL выполняет map[ключ]sql в порядке ключей. Ожидается idempotent DDL (create ... if not exists).
func ApplyDDL(ctx context.Context, db *sql.DB, ddl map[string]string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	keys := make([]string, 0, len(ddl))
	for k := range ddl {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, stmt := range splitStatements(ddl[k]) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				if isAlreadyExists(err) {
					log.Debug("DDL skipped (already exists)", zap.String("phase", k), zap.Error(err))
					continue
				}
				return fmt.Errorf("DDL apply failed (%s): %w", k, err)
			}
		}
		log.Info("DDL applied", zap.String("phase", k))
	}
	return nil
}

// FK-фаза идёт отдельными statement'ами: одна уже существующая constraint не должна
// откатывать остальные.
func splitStatements(sqlText string) []string {
	var out []string
	for _, s := range strings.Split(sqlText, ";\n") {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";"))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeDuplicateObject {
		return true
	}
	e := strings.ToLower(err.Error())
	return strings.Contains(e, "already exists")
}
