package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobly/internal/store"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Load читает один YAML-файл или все *.yaml/*.yml из папки (в лексическом порядке).
func Load(path string) (Fixtures, error) {
	st, err := os.Stat(path)
	if err != nil {
		return Fixtures{}, err
	}
	if !st.IsDir() {
		return loadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return Fixtures{}, err
	}
	var all Fixtures
	for _, e := range entries {
		if e.IsDir() || !(strings.HasSuffix(e.Name(), ".yaml") || strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}
		f, err := loadFile(filepath.Join(path, e.Name()))
		if err != nil {
			return Fixtures{}, err
		}
		all.Companies = append(all.Companies, f.Companies...)
		all.Users = append(all.Users, f.Users...)
	}
	return all, nil
}

func loadFile(path string) (Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, err
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Fixtures{}, fmt.Errorf("%s: %w", path, err)
	}
	for i, c := range f.Companies {
		if strings.TrimSpace(c.Handle) == "" {
			return Fixtures{}, fmt.Errorf("%s: companies[%d]: handle is required", path, i)
		}
	}
	for i, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" {
			return Fixtures{}, fmt.Errorf("%s: users[%d]: username is required", path, i)
		}
	}
	return f, nil
}

// Target — то, во что сидируем (store.Storage).
type Target interface {
	CreateCompany(ctx context.Context, in store.NewCompany) (store.Company, error)
	CreateJob(ctx context.Context, in store.NewJob) (store.Job, error)
	RegisterUser(ctx context.Context, in store.NewUser) (store.User, error)
}

type Result struct {
	Companies int
	Jobs      int
	Users     int
	Skipped   int
}

// Apply вставляет фикстуры. Уже существующие компании/пользователи пропускаются;
// вакансии создаются только вместе с новой компанией, поэтому повторный запуск ничего не дублирует.
func Apply(ctx context.Context, t Target, f Fixtures, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res Result

	for _, c := range f.Companies {
		_, err := t.CreateCompany(ctx, store.NewCompany{
			Handle:       c.Handle,
			Name:         c.Name,
			Description:  c.Description,
			NumEmployees: c.NumEmployees,
			LogoURL:      c.LogoURL,
		})
		if errors.Is(err, store.ErrConflict) {
			log.Debug("seed: company exists, skipped", zap.String("handle", c.Handle))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Companies++

		for _, j := range c.Jobs {
			if _, err := t.CreateJob(ctx, store.NewJob{
				Title:         j.Title,
				Salary:        j.Salary,
				Equity:        j.Equity,
				CompanyHandle: c.Handle,
			}); err != nil {
				return res, err
			}
			res.Jobs++
		}
	}

	for _, u := range f.Users {
		_, err := t.RegisterUser(ctx, store.NewUser{
			Username:  u.Username,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
		})
		if errors.Is(err, store.ErrConflict) {
			log.Debug("seed: user exists, skipped", zap.String("username", u.Username))
			res.Skipped++
			continue
		}
		if err != nil {
			return res, err
		}
		res.Users++
	}

	log.Info("seed applied",
		zap.Int("companies", res.Companies),
		zap.Int("jobs", res.Jobs),
		zap.Int("users", res.Users),
		zap.Int("skipped", res.Skipped))
	return res, nil
}
