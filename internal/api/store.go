package api

import (
	"context"

	"jobly/internal/sqlfrag"
	"jobly/internal/store"
)

// Store — то, что нужно хендлерам от хранилища (реализует *store.Storage).
type Store interface {
	Ping(ctx context.Context) error

	CreateCompany(ctx context.Context, in store.NewCompany) (store.Company, error)
	FindCompanies(ctx context.Context, where *sqlfrag.Fragment) ([]store.Company, error)
	GetCompany(ctx context.Context, handle string) (store.Company, error)
	UpdateCompany(ctx context.Context, handle string, changes sqlfrag.Changes) (store.Company, error)
	RemoveCompany(ctx context.Context, handle string) error

	RegisterUser(ctx context.Context, in store.NewUser) (store.User, error)
	FindUsers(ctx context.Context) ([]store.User, error)
	GetUser(ctx context.Context, username string) (store.User, error)
	UpdateUser(ctx context.Context, username string, changes sqlfrag.Changes) (store.User, error)
	RemoveUser(ctx context.Context, username string) error
	ApplyToJob(ctx context.Context, username, jobID string) error

	CreateJob(ctx context.Context, in store.NewJob) (store.Job, error)
	FindJobs(ctx context.Context, where *sqlfrag.Fragment) ([]store.Job, error)
	GetJob(ctx context.Context, id string) (store.Job, error)
	UpdateJob(ctx context.Context, id string, changes sqlfrag.Changes) (store.Job, error)
	RemoveJob(ctx context.Context, id string) error
}

var _ Store = (*store.Storage)(nil)
