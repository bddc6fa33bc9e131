package sqlfrag

import "fmt"

const (
	FilterTitleLike = "titleLike"
	FilterMinSalary = "minSalary"
	FilterHasEquity = "hasEquity"
)

var jobFilterKeys = []string{FilterTitleLike, FilterMinSalary, FilterHasEquity}

// zeroEquity — значение для предиката "equity != $n", которым выражается hasEquity=true.
const zeroEquity = 0

// JobFilter — типизированные фильтры поиска вакансий.
// HasEquity=true превращается в "equity != 0"; false означает отсутствие фильтра.
type JobFilter struct {
	TitleLike Opt[string]
	MinSalary Opt[int64]
	HasEquity bool
}

// CompileJobFilter проверяет недоверенные параметры и собирает WHERE-клаузу:
//
//	WHERE title ILIKE $1 AND salary >= $2 AND equity != $3
func CompileJobFilter(p Params) (Fragment, error) {
	f, err := DecodeJobFilter(p)
	if err != nil {
		return Fragment{}, err
	}
	return f.Compile()
}

// DecodeJobFilter: нормализация hasEquity идёт первой, до allow-list и проверки пустоты.
// Принимаются только литералы true/false, без приведения 1/"yes"/"true".
func DecodeJobFilter(p Params) (JobFilter, error) {
	var f JobFilter
	if v, ok := p[FilterHasEquity]; ok {
		b, isBool := v.(bool)
		if !isBool {
			return JobFilter{}, newErr(KindInvalidBoolean, FilterHasEquity,
				fmt.Sprintf("The '%s' must be 'true' or 'false'", FilterHasEquity))
		}
		f.HasEquity = b
	}

	if bad := p.unknown(jobFilterKeys...); len(bad) > 0 {
		return JobFilter{}, errUnknownFilters(bad)
	}

	var err error
	if f.TitleLike, err = p.stringOpt(FilterTitleLike); err != nil {
		return JobFilter{}, err
	}
	if f.MinSalary, err = p.intOpt(FilterMinSalary); err != nil {
		return JobFilter{}, err
	}
	return f, nil
}

func (f JobFilter) Compile() (Fragment, error) {
	if !f.TitleLike.Present() && !f.MinSalary.Present() && !f.HasEquity {
		return Fragment{}, errEmptyFilter()
	}

	minSalary, hasMin := f.MinSalary.Get()
	if hasMin && minSalary < 0 {
		return Fragment{}, newErr(KindInvalidRange, FilterMinSalary,
			fmt.Sprintf("The '%s' must be greater than '0'", FilterMinSalary))
	}

	var b builder
	if title, ok := f.TitleLike.Get(); ok {
		b.add("title", " ILIKE ", "%"+title+"%")
	}
	if hasMin {
		b.add("salary", " >= ", minSalary)
	}
	if f.HasEquity {
		b.add("equity", " != ", zeroEquity)
	}
	return b.build("WHERE ", " AND "), nil
}
