package pg

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDDL_Jobly(t *testing.T) {
	ddl, err := GenerateDDL(Tables)
	require.NoError(t, err)
	require.Len(t, ddl, 2)

	tables := ddl["000_tables"]
	assert.Contains(t, tables, `create table if not exists "companies" (`)
	assert.Contains(t, tables, `"handle" varchar(25) not null check (handle = lower(handle))`)
	assert.Contains(t, tables, `"is_admin" boolean not null default false`)
	assert.Contains(t, tables, `primary key ("username", "job_id")`)
	assert.Contains(t, tables, `create unique index if not exists "companies_name_uq" on "companies"("name");`)

	fks := ddl["200_foreign_keys"]
	assert.Contains(t, fks, `alter table "jobs" add constraint "jobs_company_handle_fk" foreign key ("company_handle") references "companies"("handle") on delete CASCADE;`)
	assert.Contains(t, fks, `"applications_job_id_fk"`)
}

func TestGenerateDDL_RejectsBadNames(t *testing.T) {
	_, err := GenerateDDL([]Table{{Name: "user"}})
	assert.ErrorContains(t, err, "reserved")

	_, err = GenerateDDL([]Table{{Name: "x; drop table y"}})
	assert.ErrorContains(t, err, "not a plain identifier")

	_, err = GenerateDDL([]Table{{Name: "t", Columns: []Column{{Name: "a", Type: "text"}, {Name: "a", Type: "text"}}}})
	assert.ErrorContains(t, err, "duplicates")

	_, err = GenerateDDL([]Table{{Name: "t"}, {Name: "t"}})
	assert.ErrorContains(t, err, "declared twice")
}

func TestGenerateDDL_NoForeignKeys(t *testing.T) {
	ddl, err := GenerateDDL([]Table{{Name: "t", Columns: []Column{{Name: "a", Type: "text"}}}})
	require.NoError(t, err)
	_, ok := ddl["200_foreign_keys"]
	assert.False(t, ok)
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("create table a ();\n\nalter table b add x;\n")
	assert.Equal(t, []string{"create table a ()", "alter table b add x"}, got)
}

func TestIsAlreadyExists(t *testing.T) {
	assert.True(t, isAlreadyExists(&pgconn.PgError{Code: "42710"}))
	assert.True(t, isAlreadyExists(errors.New(`relation "x" already exists`)))
	assert.False(t, isAlreadyExists(&pgconn.PgError{Code: "42601", Message: "syntax error"}))
}
