// Package store — репозитории jobly поверх Postgres.
// Динамические SET/WHERE собираются через sqlfrag; всё остальное — статический SQL.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"jobly/internal/sqlfrag"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Storage struct {
	db         *sql.DB
	log        *zap.Logger
	bcryptCost int

	mu      sync.Mutex // ulid.Monotonic не потокобезопасен
	entropy io.Reader
}

type Option func(*Storage)

func WithLogger(log *zap.Logger) Option {
	return func(s *Storage) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBcryptCost задаёт стоимость хеширования паролей; вне диапазона bcrypt — DefaultCost.
func WithBcryptCost(cost int) Option {
	return func(s *Storage) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.bcryptCost = cost
		}
	}
}

func New(db *sql.DB, opts ...Option) *Storage {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &Storage{
		db:         db,
		log:        zap.NewNop(),
		bcryptCost: bcrypt.DefaultCost,
		entropy:    ulid.Monotonic(src, 0),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Storage) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	s.log.Debug("Executing SQL", zap.String("sql", q), zap.Int("params", len(args)))
	return s.db.QueryRowContext(ctx, q, args...)
}

func (s *Storage) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	s.log.Debug("Executing SQL", zap.String("sql", q), zap.Int("params", len(args)))
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.log.Error("Failed to execute query", zap.Error(err), zap.String("sql", q))
	}
	return rows, err
}

func (s *Storage) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	s.log.Debug("Executing SQL", zap.String("sql", q), zap.Int("params", len(args)))
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		s.log.Error("Failed to execute statement", zap.Error(err), zap.String("sql", q))
	}
	return res, err
}

// deleteOne удаляет строку по ключу и возвращает ErrNotFound, если удалять было нечего.
func (s *Storage) deleteOne(ctx context.Context, q, what string, key any) error {
	res, err := s.exec(ctx, q, key)
	if err != nil {
		return mapErr(err, what)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapErr(err, what)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}

// checkFields — граница доверия для CompileUpdate: имена колонок берутся только из allowed.
func checkFields(changes sqlfrag.Changes, allowed ...string) error {
	for _, f := range changes.Fields() {
		ok := false
		for _, a := range allowed {
			if f == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, f)
		}
	}
	return nil
}

// where == nil — без фильтра
func withWhere(base string, where *sqlfrag.Fragment, tail string) (string, []any) {
	if where == nil {
		return base + " " + tail, nil
	}
	return base + " " + where.SQL + " " + tail, where.Values
}

type scanner interface {
	Scan(dest ...any) error
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
