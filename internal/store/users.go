package store

import (
	"context"
	"errors"
	"fmt"

	"jobly/internal/sqlfrag"

	"golang.org/x/crypto/bcrypt"
)

var userColumns = sqlfrag.Columns{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// UserUpdatable — isAdmin и username через обновление профиля не меняются.
var UserUpdatable = []string{"firstName", "lastName", "password", "email"}

const userSelect = `SELECT username, first_name, last_name, email, is_admin FROM users`

func scanUser(r scanner) (User, error) {
	var u User
	if err := r.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Storage) hashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// RegisterUser сохраняет пользователя с bcrypt-хешем пароля. Занятый username → ErrConflict.
func (s *Storage) RegisterUser(ctx context.Context, in NewUser) (User, error) {
	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return User{}, err
	}
	row := s.queryRow(ctx,
		`INSERT INTO users (username, password, first_name, last_name, email, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING username, first_name, last_name, email, is_admin`,
		in.Username, hash, in.FirstName, in.LastName, in.Email, in.IsAdmin)
	u, err := scanUser(row)
	if err != nil {
		return User{}, mapErr(err, "user "+in.Username)
	}
	return u, nil
}

func (s *Storage) FindUsers(ctx context.Context) ([]User, error) {
	rows, err := s.query(ctx, userSelect+` ORDER BY username`)
	if err != nil {
		return nil, mapErr(err, "users")
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapErr(err, "users")
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err(), "users")
}

// GetUser возвращает пользователя с id вакансий, на которые он откликнулся.
func (s *Storage) GetUser(ctx context.Context, username string) (User, error) {
	u, err := scanUser(s.queryRow(ctx, userSelect+` WHERE username = $1`, username))
	if err != nil {
		return User{}, mapErr(err, "user "+username)
	}

	rows, err := s.query(ctx, `SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return User{}, mapErr(err, "applications of "+username)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return User{}, mapErr(err, "applications of "+username)
		}
		u.Jobs = append(u.Jobs, id)
	}
	return u, mapErr(rows.Err(), "applications of "+username)
}

// UpdateUser применяет частичное обновление; пароль перехешируется на своей позиции в payload.
func (s *Storage) UpdateUser(ctx context.Context, username string, changes sqlfrag.Changes) (User, error) {
	if err := checkFields(changes, UserUpdatable...); err != nil {
		return User{}, err
	}
	if v, ok := changes.Get("password"); ok {
		plain, _ := v.(string)
		if plain == "" {
			return User{}, fmt.Errorf("user %s: %w: empty password", username, ErrConstraint)
		}
		hash, err := s.hashPassword(plain)
		if err != nil {
			return User{}, err
		}
		// копия, чтобы не переписать payload вызывающего
		changes = append(sqlfrag.Changes(nil), changes...)
		changes.Set("password", hash)
	}

	set, err := sqlfrag.CompileUpdate(changes, userColumns)
	if err != nil {
		return User{}, err
	}
	q := `UPDATE users SET ` + set.SQL + ` WHERE username = ` + set.Next() +
		` RETURNING username, first_name, last_name, email, is_admin`
	u, err := scanUser(s.queryRow(ctx, q, set.Args(username)...))
	if err != nil {
		return User{}, mapErr(err, "user "+username)
	}
	return u, nil
}

func (s *Storage) RemoveUser(ctx context.Context, username string) error {
	return s.deleteOne(ctx, `DELETE FROM users WHERE username = $1`, "user "+username, username)
}

// ApplyToJob записывает отклик. Нет пользователя или вакансии → ErrNotFound, повтор → ErrConflict.
func (s *Storage) ApplyToJob(ctx context.Context, username, jobID string) error {
	_, err := s.exec(ctx, `INSERT INTO applications (username, job_id) VALUES ($1, $2)`, username, jobID)
	if err == nil {
		return nil
	}
	err = mapErr(err, fmt.Sprintf("application %s/%s", username, jobID))
	if errors.Is(err, ErrInvalidReference) {
		return fmt.Errorf("application %s/%s: %w", username, jobID, ErrNotFound)
	}
	return err
}
