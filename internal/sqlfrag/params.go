package sqlfrag

import (
	"encoding/json"
	"math"
	"net/url"
	"regexp"
	"sort"
)

// Params — недоверенный набор фильтров: тело {"filters": {...}} или query-строка.
type Params map[string]any

var numericRe = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// ParamsFromQuery приводит query-строку к JSON-подобным значениям:
// "true"/"false" → bool, числа → json.Number, остальное — строка.
// При повторе ключа берётся последнее значение.
func ParamsFromQuery(q url.Values) Params {
	p := make(Params, len(q))
	for k, vals := range q {
		if len(vals) == 0 {
			continue
		}
		p[k] = queryValue(vals[len(vals)-1])
	}
	return p
}

func queryValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if numericRe.MatchString(s) {
		return json.Number(s)
	}
	return s
}

// unknown возвращает отсортированный список ключей вне allow-list
func (p Params) unknown(allowed ...string) []string {
	var out []string
	for k := range p {
		ok := false
		for _, a := range allowed {
			if k == a {
				ok = true
				break
			}
		}
		if !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// null считается отсутствием фильтра
func (p Params) stringOpt(key string) (Opt[string], error) {
	v, ok := p[key]
	if !ok || v == nil {
		return Opt[string]{}, nil
	}
	switch s := v.(type) {
	case string:
		return Some(s), nil
	case json.Number:
		return Some(s.String()), nil
	}
	return Opt[string]{}, errInvalidValue(key, "a string")
}

func (p Params) intOpt(key string) (Opt[int64], error) {
	v, ok := p[key]
	if !ok || v == nil {
		return Opt[int64]{}, nil
	}
	switch n := v.(type) {
	case int:
		return Some(int64(n)), nil
	case int32:
		return Some(int64(n)), nil
	case int64:
		return Some(n), nil
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < math.MaxInt64 {
			return Some(int64(n)), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return Some(i), nil
		}
	}
	return Opt[int64]{}, errInvalidValue(key, "an integer")
}
