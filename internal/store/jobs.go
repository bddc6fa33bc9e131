package store

import (
	"context"
	"database/sql"

	"jobly/internal/sqlfrag"
)

// у jobs логические имена совпадают с колонками
var jobColumns = sqlfrag.Columns{}

// JobUpdatable — companyHandle и id не меняются.
var JobUpdatable = []string{"title", "salary", "equity"}

const jobSelect = `SELECT id, title, salary, equity::text, company_handle FROM jobs`

func scanJob(r scanner) (Job, error) {
	var (
		j      Job
		salary sql.NullInt64
		equity sql.NullString
	)
	if err := r.Scan(&j.ID, &j.Title, &salary, &equity, &j.CompanyHandle); err != nil {
		return Job{}, err
	}
	j.Salary = int64Ptr(salary)
	j.Equity = stringPtr(equity)
	return j, nil
}

func (s *Storage) CreateJob(ctx context.Context, in NewJob) (Job, error) {
	id := s.newID()
	row := s.queryRow(ctx,
		`INSERT INTO jobs (id, title, salary, equity, company_handle)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, salary, equity::text, company_handle`,
		id, in.Title, in.Salary, in.Equity, in.CompanyHandle)
	j, err := scanJob(row)
	if err != nil {
		return Job{}, mapErr(err, "job for company "+in.CompanyHandle)
	}
	return j, nil
}

// FindJobs возвращает вакансии; where — результат sqlfrag.CompileJobFilter или nil.
func (s *Storage) FindJobs(ctx context.Context, where *sqlfrag.Fragment) ([]Job, error) {
	q, args := withWhere(jobSelect, where, "ORDER BY title, id")
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err, "jobs")
	}
	defer rows.Close()

	out := make([]Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, mapErr(err, "jobs")
		}
		out = append(out, j)
	}
	return out, mapErr(rows.Err(), "jobs")
}

func (s *Storage) GetJob(ctx context.Context, id string) (Job, error) {
	j, err := scanJob(s.queryRow(ctx, jobSelect+` WHERE id = $1`, id))
	if err != nil {
		return Job{}, mapErr(err, "job "+id)
	}
	return j, nil
}

func (s *Storage) UpdateJob(ctx context.Context, id string, changes sqlfrag.Changes) (Job, error) {
	if err := checkFields(changes, JobUpdatable...); err != nil {
		return Job{}, err
	}
	set, err := sqlfrag.CompileUpdate(changes, jobColumns)
	if err != nil {
		return Job{}, err
	}
	q := `UPDATE jobs SET ` + set.SQL + ` WHERE id = ` + set.Next() +
		` RETURNING id, title, salary, equity::text, company_handle`
	j, err := scanJob(s.queryRow(ctx, q, set.Args(id)...))
	if err != nil {
		return Job{}, mapErr(err, "job "+id)
	}
	return j, nil
}

func (s *Storage) RemoveJob(ctx context.Context, id string) error {
	return s.deleteOne(ctx, `DELETE FROM jobs WHERE id = $1`, "job "+id, id)
}
