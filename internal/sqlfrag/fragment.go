package sqlfrag

import (
	"strconv"
	"strings"
)

// Fragment — скомпилированный кусок SQL с позиционными плейсхолдерами $1..$n.
// Плейсхолдер $k всегда соответствует Values[k-1].
type Fragment struct {
	SQL    string
	Values []any
}

// Next возвращает следующий свободный плейсхолдер, чтобы вызывающий мог
// дописать свои параметры (например, "WHERE id = $n") без сдвига нумерации.
func (f Fragment) Next() string { return placeholder(len(f.Values) + 1) }

// Args возвращает значения вместе с дополнительными параметрами, в порядке плейсхолдеров.
func (f Fragment) Args(extra ...any) []any {
	out := make([]any, 0, len(f.Values)+len(extra))
	out = append(out, f.Values...)
	return append(out, extra...)
}

func placeholder(i int) string { return "$" + strconv.Itoa(i) }

type predicate struct {
	left  string
	op    string
	value any
}

// builder копит пары предикат/значение; в текст они склеиваются только в build,
// поэтому номер плейсхолдера и позиция значения берутся из одного индекса.
type builder struct {
	preds []predicate
}

func (b *builder) add(left, op string, value any) {
	b.preds = append(b.preds, predicate{left: left, op: op, value: value})
}

func (b *builder) build(prefix, sep string) Fragment {
	parts := make([]string, len(b.preds))
	values := make([]any, len(b.preds))
	for i, p := range b.preds {
		parts[i] = p.left + p.op + placeholder(i+1)
		values[i] = p.value
	}
	return Fragment{SQL: prefix + strings.Join(parts, sep), Values: values}
}

// Opt — значение фильтра с явным признаком присутствия (0 и "" — тоже значения).
type Opt[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Opt[T] { return Opt[T]{v: v, ok: true} }

func (o Opt[T]) Get() (T, bool) { return o.v, o.ok }

func (o Opt[T]) Present() bool { return o.ok }
