package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"jobly/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturesYAML = `
companies:
  - handle: c1
    name: C1
    description: Desc1
    numEmployees: 1
    logoUrl: http://c1.img
    jobs:
      - title: j1
        salary: 1000
        equity: 0.1
      - title: j2
  - handle: c2
    name: C2
    description: Desc2
users:
  - username: u1
    password: password1
    firstName: U1F
    lastName: U1L
    email: u1@email.com
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, t.TempDir(), "jobly.yaml", fixturesYAML)

	f, err := Load(p)
	require.NoError(t, err)
	require.Len(t, f.Companies, 2)
	assert.Equal(t, "c1", f.Companies[0].Handle)
	assert.Equal(t, int64(1), *f.Companies[0].NumEmployees)
	require.Len(t, f.Companies[0].Jobs, 2)
	assert.Equal(t, 0.1, *f.Companies[0].Jobs[0].Equity)
	assert.Nil(t, f.Companies[0].Jobs[1].Salary)
	assert.Nil(t, f.Companies[1].LogoURL)
	require.Len(t, f.Users, 1)
	assert.Equal(t, "U1F", f.Users[0].FirstName)
}

func TestLoad_Dir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "companies:\n  - handle: a\n    name: A\n    description: d\n")
	writeFile(t, dir, "b.yml", "users:\n  - username: b\n    password: p\n")
	writeFile(t, dir, "notes.txt", "ignored")

	f, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, f.Companies, 1)
	assert.Len(t, f.Users, 1)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "bad.yaml", "companies: [\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "nohandle.yaml", "companies:\n  - name: X\n"))
	assert.ErrorContains(t, err, "handle is required")
}

type fakeTarget struct {
	companies map[string]bool
	users     map[string]bool
	jobs      []store.NewJob
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{companies: map[string]bool{}, users: map[string]bool{}}
}

func (f *fakeTarget) CreateCompany(_ context.Context, in store.NewCompany) (store.Company, error) {
	if f.companies[in.Handle] {
		return store.Company{}, fmt.Errorf("company %s: %w", in.Handle, store.ErrConflict)
	}
	f.companies[in.Handle] = true
	return store.Company{Handle: in.Handle}, nil
}

func (f *fakeTarget) CreateJob(_ context.Context, in store.NewJob) (store.Job, error) {
	f.jobs = append(f.jobs, in)
	return store.Job{Title: in.Title, CompanyHandle: in.CompanyHandle}, nil
}

func (f *fakeTarget) RegisterUser(_ context.Context, in store.NewUser) (store.User, error) {
	if f.users[in.Username] {
		return store.User{}, fmt.Errorf("user %s: %w", in.Username, store.ErrConflict)
	}
	f.users[in.Username] = true
	return store.User{Username: in.Username}, nil
}

func TestApply_IsRepeatable(t *testing.T) {
	f, err := Load(writeFile(t, t.TempDir(), "jobly.yaml", fixturesYAML))
	require.NoError(t, err)

	tgt := newFakeTarget()
	res, err := Apply(context.Background(), tgt, f, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Companies: 2, Jobs: 2, Users: 1}, res)
	assert.Equal(t, "c1", tgt.jobs[0].CompanyHandle)

	res, err = Apply(context.Background(), tgt, f, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Skipped: 3}, res)
	assert.Len(t, tgt.jobs, 2)
}

type failingTarget struct{ *fakeTarget }

func (failingTarget) CreateJob(context.Context, store.NewJob) (store.Job, error) {
	return store.Job{}, errors.New("db down")
}

func TestApply_StopsOnError(t *testing.T) {
	f, err := Load(writeFile(t, t.TempDir(), "jobly.yaml", fixturesYAML))
	require.NoError(t, err)

	res, err := Apply(context.Background(), failingTarget{newFakeTarget()}, f, nil)
	assert.EqualError(t, err, "db down")
	assert.Equal(t, 1, res.Companies)
	assert.Equal(t, 0, res.Jobs)
}
