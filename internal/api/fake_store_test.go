package api

import (
	"context"
	"fmt"

	"jobly/internal/sqlfrag"
	"jobly/internal/store"
)

// fakeStore держит данные в памяти и запоминает, что пришло от хендлеров.
type fakeStore struct {
	companies map[string]store.Company
	users     map[string]store.User
	jobs      map[string]store.Job

	lastWhere   *sqlfrag.Fragment
	lastChanges sqlfrag.Changes
	pingErr     error
	failWith    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companies: map[string]store.Company{},
		users:     map[string]store.User{},
		jobs:      map[string]store.Job{},
	}
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CreateCompany(_ context.Context, in store.NewCompany) (store.Company, error) {
	if _, ok := f.companies[in.Handle]; ok {
		return store.Company{}, fmt.Errorf("%w: company %s", store.ErrConflict, in.Handle)
	}
	c := store.Company{Handle: in.Handle, Name: in.Name, Description: in.Description,
		NumEmployees: in.NumEmployees, LogoURL: in.LogoURL}
	f.companies[in.Handle] = c
	return c, nil
}

func (f *fakeStore) FindCompanies(_ context.Context, where *sqlfrag.Fragment) ([]store.Company, error) {
	f.lastWhere = where
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []store.Company{}
	for _, c := range f.companies {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) GetCompany(_ context.Context, handle string) (store.Company, error) {
	c, ok := f.companies[handle]
	if !ok {
		return store.Company{}, fmt.Errorf("%w: company %s", store.ErrNotFound, handle)
	}
	return c, nil
}

func (f *fakeStore) UpdateCompany(_ context.Context, handle string, changes sqlfrag.Changes) (store.Company, error) {
	f.lastChanges = changes
	if _, err := sqlfrag.CompileUpdate(changes, nil); err != nil {
		return store.Company{}, err
	}
	c, ok := f.companies[handle]
	if !ok {
		return store.Company{}, fmt.Errorf("%w: company %s", store.ErrNotFound, handle)
	}
	if v, ok := changes.Get("name"); ok {
		c.Name, _ = v.(string)
	}
	f.companies[handle] = c
	return c, nil
}

func (f *fakeStore) RemoveCompany(_ context.Context, handle string) error {
	if _, ok := f.companies[handle]; !ok {
		return fmt.Errorf("%w: company %s", store.ErrNotFound, handle)
	}
	delete(f.companies, handle)
	return nil
}

func (f *fakeStore) RegisterUser(_ context.Context, in store.NewUser) (store.User, error) {
	if _, ok := f.users[in.Username]; ok {
		return store.User{}, fmt.Errorf("%w: user %s", store.ErrConflict, in.Username)
	}
	u := store.User{Username: in.Username, FirstName: in.FirstName, LastName: in.LastName,
		Email: in.Email, IsAdmin: in.IsAdmin}
	f.users[in.Username] = u
	return u, nil
}

func (f *fakeStore) FindUsers(context.Context) ([]store.User, error) {
	out := []store.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) GetUser(_ context.Context, username string) (store.User, error) {
	u, ok := f.users[username]
	if !ok {
		return store.User{}, fmt.Errorf("%w: user %s", store.ErrNotFound, username)
	}
	return u, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, username string, changes sqlfrag.Changes) (store.User, error) {
	f.lastChanges = changes
	if _, err := sqlfrag.CompileUpdate(changes, nil); err != nil {
		return store.User{}, err
	}
	u, ok := f.users[username]
	if !ok {
		return store.User{}, fmt.Errorf("%w: user %s", store.ErrNotFound, username)
	}
	return u, nil
}

func (f *fakeStore) RemoveUser(_ context.Context, username string) error {
	if _, ok := f.users[username]; !ok {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, username)
	}
	delete(f.users, username)
	return nil
}

func (f *fakeStore) ApplyToJob(_ context.Context, username, jobID string) error {
	u, ok := f.users[username]
	if !ok {
		return fmt.Errorf("%w: user %s", store.ErrNotFound, username)
	}
	if _, ok := f.jobs[jobID]; !ok {
		return fmt.Errorf("%w: job %s", store.ErrNotFound, jobID)
	}
	u.Jobs = append(u.Jobs, jobID)
	f.users[username] = u
	return nil
}

func (f *fakeStore) CreateJob(_ context.Context, in store.NewJob) (store.Job, error) {
	if _, ok := f.companies[in.CompanyHandle]; !ok {
		return store.Job{}, fmt.Errorf("%w: company %s", store.ErrInvalidReference, in.CompanyHandle)
	}
	id := fmt.Sprintf("job-%d", len(f.jobs)+1)
	j := store.Job{ID: id, Title: in.Title, Salary: in.Salary, CompanyHandle: in.CompanyHandle}
	f.jobs[id] = j
	return j, nil
}

func (f *fakeStore) FindJobs(_ context.Context, where *sqlfrag.Fragment) ([]store.Job, error) {
	f.lastWhere = where
	out := []store.Job{}
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeStore) GetJob(_ context.Context, id string) (store.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return store.Job{}, fmt.Errorf("%w: job %s", store.ErrNotFound, id)
	}
	return j, nil
}

func (f *fakeStore) UpdateJob(_ context.Context, id string, changes sqlfrag.Changes) (store.Job, error) {
	f.lastChanges = changes
	if _, err := sqlfrag.CompileUpdate(changes, nil); err != nil {
		return store.Job{}, err
	}
	j, ok := f.jobs[id]
	if !ok {
		return store.Job{}, fmt.Errorf("%w: job %s", store.ErrNotFound, id)
	}
	return j, nil
}

func (f *fakeStore) RemoveJob(_ context.Context, id string) error {
	if _, ok := f.jobs[id]; !ok {
		return fmt.Errorf("%w: job %s", store.ErrNotFound, id)
	}
	delete(f.jobs, id)
	return nil
}
