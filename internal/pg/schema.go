package pg

import (
	"fmt"
	"regexp"
	"strings"
)

type OnDeletePolicy string

const (
	OnDeleteRestrict OnDeletePolicy = "RESTRICT"
	OnDeleteCascade  OnDeletePolicy = "CASCADE"
	OnDeleteSetNull  OnDeletePolicy = "SET NULL"
)

var reserved = map[string]struct{}{
	"user": {}, "select": {}, "table": {}, "insert": {}, "update": {}, "delete": {},
	"where": {}, "join": {}, "group": {}, "order": {}, "limit": {}, "offset": {},
	"primary": {}, "foreign": {}, "key": {}, "constraint": {}, "default": {},
	"from": {}, "into": {}, "values": {}, "unique": {}, "index": {}, "create": {},
	"drop": {}, "alter": {}, "schema": {}, "grant": {}, "revoke": {},
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func isReserved(s string) bool { _, ok := reserved[strings.ToLower(s)]; return ok }

func sqlIdent(s string) string { return `"` + strings.ToLower(s) + `"` }

type Column struct {
	Name    string
	Type    string
	NotNull bool
	Default string
	Check   string
}

type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  OnDeletePolicy
}

type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	Unique      [][]string
	ForeignKeys []ForeignKey
}

// Tables — схема jobly. Порядок важен только для читаемости: FK применяются отдельной фазой.
var Tables = []Table{
	{
		Name: "companies",
		Columns: []Column{
			{Name: "handle", Type: "varchar(25)", NotNull: true, Check: "handle = lower(handle)"},
			{Name: "name", Type: "text", NotNull: true},
			{Name: "num_employees", Type: "integer", Check: "num_employees >= 0"},
			{Name: "description", Type: "text", NotNull: true},
			{Name: "logo_url", Type: "text"},
		},
		PrimaryKey: []string{"handle"},
		Unique:     [][]string{{"name"}},
	},
	{
		Name: "users",
		Columns: []Column{
			{Name: "username", Type: "varchar(25)", NotNull: true},
			{Name: "password", Type: "text", NotNull: true},
			{Name: "first_name", Type: "text", NotNull: true},
			{Name: "last_name", Type: "text", NotNull: true},
			{Name: "email", Type: "text", NotNull: true, Check: "position('@' in email) > 1"},
			{Name: "is_admin", Type: "boolean", NotNull: true, Default: "false"},
		},
		PrimaryKey: []string{"username"},
	},
	{
		Name: "jobs",
		Columns: []Column{
			{Name: "id", Type: "text", NotNull: true},
			{Name: "title", Type: "text", NotNull: true},
			{Name: "salary", Type: "integer", Check: "salary >= 0"},
			{Name: "equity", Type: "numeric", Check: "equity <= 1.0"},
			{Name: "company_handle", Type: "varchar(25)", NotNull: true},
		},
		PrimaryKey: []string{"id"},
		ForeignKeys: []ForeignKey{
			{Column: "company_handle", RefTable: "companies", RefColumn: "handle", OnDelete: OnDeleteCascade},
		},
	},
	{
		Name: "applications",
		Columns: []Column{
			{Name: "username", Type: "varchar(25)", NotNull: true},
			{Name: "job_id", Type: "text", NotNull: true},
		},
		PrimaryKey: []string{"username", "job_id"},
		ForeignKeys: []ForeignKey{
			{Column: "username", RefTable: "users", RefColumn: "username", OnDelete: OnDeleteCascade},
			{Column: "job_id", RefTable: "jobs", RefColumn: "id", OnDelete: OnDeleteCascade},
		},
	},
}

func checkIdent(kind, s string) error {
	if !identRe.MatchString(s) {
		return fmt.Errorf("%s %q is not a plain identifier", kind, s)
	}
	return nil
}

// GenerateDDL возвращает карту фаза -> SQL: таблицы и unique, затем FK (после создания всех таблиц).
func GenerateDDL(tables []Table) (map[string]string, error) {
	out := make(map[string]string, 2)

	// --- Phase A: tables + unique ---
	var phaseA strings.Builder
	var phaseB strings.Builder
	seen := map[string]struct{}{}

	for _, t := range tables {
		if err := checkIdent("table", t.Name); err != nil {
			return nil, err
		}
		if isReserved(t.Name) {
			return nil, fmt.Errorf("table %q is a reserved word", t.Name)
		}
		if _, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("table %q declared twice", t.Name)
		}
		seen[t.Name] = struct{}{}

		cols := make([]string, 0, len(t.Columns)+1)
		colSeen := map[string]struct{}{}
		for _, c := range t.Columns {
			if err := checkIdent("column", c.Name); err != nil {
				return nil, fmt.Errorf("%s: %w", t.Name, err)
			}
			if _, dup := colSeen[c.Name]; dup {
				return nil, fmt.Errorf("%s: column %q duplicates another column", t.Name, c.Name)
			}
			colSeen[c.Name] = struct{}{}

			def := fmt.Sprintf("%s %s", sqlIdent(c.Name), c.Type)
			if c.NotNull {
				def += " not null"
			}
			if c.Default != "" {
				def += " default " + c.Default
			}
			if c.Check != "" {
				def += " check (" + c.Check + ")"
			}
			cols = append(cols, def)
		}
		if len(t.PrimaryKey) > 0 {
			cols = append(cols, fmt.Sprintf("primary key (%s)", identList(t.PrimaryKey)))
		}

		fmt.Fprintf(&phaseA, "create table if not exists %s (\n  %s\n);\n",
			sqlIdent(t.Name), strings.Join(cols, ",\n  "))

		for _, set := range t.Unique {
			if len(set) == 0 {
				continue
			}
			idxName := strings.ToLower(t.Name + "_" + strings.Join(set, "_") + "_uq")
			fmt.Fprintf(&phaseA, "create unique index if not exists %s on %s(%s);\n",
				sqlIdent(idxName), sqlIdent(t.Name), identList(set))
		}

		// --- Phase B: foreign keys ---
		for _, fk := range t.ForeignKeys {
			onDelete := fk.OnDelete
			if onDelete == "" {
				onDelete = OnDeleteRestrict
			}
			fmt.Fprintf(&phaseB,
				"alter table %s add constraint %s foreign key (%s) references %s(%s) on delete %s;\n",
				sqlIdent(t.Name),
				sqlIdent(t.Name+"_"+fk.Column+"_fk"),
				sqlIdent(fk.Column),
				sqlIdent(fk.RefTable), sqlIdent(fk.RefColumn),
				onDelete,
			)
		}
	}

	out["000_tables"] = phaseA.String()
	if phaseB.Len() > 0 {
		out["200_foreign_keys"] = phaseB.String()
	}
	return out, nil
}

func identList(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = sqlIdent(n)
	}
	return strings.Join(parts, ", ")
}
