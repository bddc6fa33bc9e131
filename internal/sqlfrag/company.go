package sqlfrag

import "fmt"

const (
	FilterNameLike     = "nameLike"
	FilterMinEmployees = "minEmployees"
	FilterMaxEmployees = "maxEmployees"
)

var companyFilterKeys = []string{FilterNameLike, FilterMinEmployees, FilterMaxEmployees}

// CompanyFilter — типизированные фильтры поиска компаний.
type CompanyFilter struct {
	NameLike     Opt[string]
	MinEmployees Opt[int64]
	MaxEmployees Opt[int64]
}

// CompileCompanyFilter проверяет недоверенные параметры и собирает WHERE-клаузу:
//
//	WHERE name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3
func CompileCompanyFilter(p Params) (Fragment, error) {
	f, err := DecodeCompanyFilter(p)
	if err != nil {
		return Fragment{}, err
	}
	return f.Compile()
}

// DecodeCompanyFilter: сначала allow-list (по всем ключам), потом типы значений.
func DecodeCompanyFilter(p Params) (CompanyFilter, error) {
	if bad := p.unknown(companyFilterKeys...); len(bad) > 0 {
		return CompanyFilter{}, errUnknownFilters(bad)
	}

	var (
		f   CompanyFilter
		err error
	)
	if f.NameLike, err = p.stringOpt(FilterNameLike); err != nil {
		return CompanyFilter{}, err
	}
	if f.MinEmployees, err = p.intOpt(FilterMinEmployees); err != nil {
		return CompanyFilter{}, err
	}
	if f.MaxEmployees, err = p.intOpt(FilterMaxEmployees); err != nil {
		return CompanyFilter{}, err
	}
	return f, nil
}

func (f CompanyFilter) Compile() (Fragment, error) {
	if !f.NameLike.Present() && !f.MinEmployees.Present() && !f.MaxEmployees.Present() {
		return Fragment{}, errEmptyFilter()
	}

	minEmp, hasMin := f.MinEmployees.Get()
	maxEmp, hasMax := f.MaxEmployees.Get()
	// строго: равные границы тоже ошибка
	if hasMin && hasMax && minEmp >= maxEmp {
		return Fragment{}, newErr(KindInvalidRange, FilterMinEmployees,
			fmt.Sprintf("The '%s' must be less than '%s'", FilterMinEmployees, FilterMaxEmployees))
	}

	// порядок фиксирован: подстрока, нижняя граница, верхняя граница
	var b builder
	if name, ok := f.NameLike.Get(); ok {
		b.add("name", " ILIKE ", "%"+name+"%")
	}
	if hasMin {
		b.add("num_employees", " >= ", minEmp)
	}
	if hasMax {
		b.add("num_employees", " <= ", maxEmp)
	}
	return b.build("WHERE ", " AND "), nil
}
