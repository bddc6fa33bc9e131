package store

import (
	"context"
	"database/sql"

	"jobly/internal/sqlfrag"
)

// логические имена полей → колонки companies
var companyColumns = sqlfrag.Columns{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// CompanyUpdatable — поля, которые можно менять через UpdateCompany.
var CompanyUpdatable = []string{"name", "description", "numEmployees", "logoUrl"}

const companySelect = `SELECT handle, name, description, num_employees, logo_url FROM companies`

func scanCompany(r scanner) (Company, error) {
	var (
		c      Company
		numEmp sql.NullInt64
		logo   sql.NullString
	)
	if err := r.Scan(&c.Handle, &c.Name, &c.Description, &numEmp, &logo); err != nil {
		return Company{}, err
	}
	c.NumEmployees = int64Ptr(numEmp)
	c.LogoURL = stringPtr(logo)
	return c, nil
}

func (s *Storage) CreateCompany(ctx context.Context, in NewCompany) (Company, error) {
	row := s.queryRow(ctx,
		`INSERT INTO companies (handle, name, description, num_employees, logo_url)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING handle, name, description, num_employees, logo_url`,
		in.Handle, in.Name, in.Description, in.NumEmployees, in.LogoURL)
	c, err := scanCompany(row)
	if err != nil {
		return Company{}, mapErr(err, "company "+in.Handle)
	}
	return c, nil
}

// FindCompanies возвращает компании по имени; where — результат sqlfrag.CompileCompanyFilter или nil.
func (s *Storage) FindCompanies(ctx context.Context, where *sqlfrag.Fragment) ([]Company, error) {
	q, args := withWhere(companySelect, where, "ORDER BY name")
	rows, err := s.query(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err, "companies")
	}
	defer rows.Close()

	out := make([]Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, mapErr(err, "companies")
		}
		out = append(out, c)
	}
	return out, mapErr(rows.Err(), "companies")
}

// GetCompany возвращает компанию вместе с её вакансиями.
func (s *Storage) GetCompany(ctx context.Context, handle string) (Company, error) {
	c, err := scanCompany(s.queryRow(ctx, companySelect+` WHERE handle = $1`, handle))
	if err != nil {
		return Company{}, mapErr(err, "company "+handle)
	}
	where := sqlfrag.Fragment{SQL: "WHERE company_handle = $1", Values: []any{handle}}
	jobs, err := s.FindJobs(ctx, &where)
	if err != nil {
		return Company{}, err
	}
	c.Jobs = jobs
	return c, nil
}

func (s *Storage) UpdateCompany(ctx context.Context, handle string, changes sqlfrag.Changes) (Company, error) {
	if err := checkFields(changes, CompanyUpdatable...); err != nil {
		return Company{}, err
	}
	set, err := sqlfrag.CompileUpdate(changes, companyColumns)
	if err != nil {
		return Company{}, err
	}
	q := `UPDATE companies SET ` + set.SQL + ` WHERE handle = ` + set.Next() +
		` RETURNING handle, name, description, num_employees, logo_url`
	c, err := scanCompany(s.queryRow(ctx, q, set.Args(handle)...))
	if err != nil {
		return Company{}, mapErr(err, "company "+handle)
	}
	return c, nil
}

func (s *Storage) RemoveCompany(ctx context.Context, handle string) error {
	return s.deleteOne(ctx, `DELETE FROM companies WHERE handle = $1`, "company "+handle, handle)
}

