package sqlfrag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind — вид ошибки компилятора. Все виды — ошибки клиента (400), не ретраятся.
type Kind string

const (
	KindEmptyInput     Kind = "empty_input"
	KindEmptyFilter    Kind = "empty_filter"
	KindUnknownFilter  Kind = "unknown_filter"
	KindInvalidRange   Kind = "invalid_range"
	KindInvalidBoolean Kind = "invalid_boolean"
	KindInvalidValue   Kind = "invalid_value"
)

// ErrBadRequest — общий признак: errors.Is(err, ErrBadRequest) верно для любой *Error.
var ErrBadRequest = errors.New("bad request")

// Error несёт вид ошибки, поле-виновника и одно или несколько сообщений для клиента.
type Error struct {
	Kind     Kind
	Field    string
	Messages []string
}

func (e *Error) Error() string { return strings.Join(e.Messages, "; ") }

func (e *Error) Is(target error) bool { return target == ErrBadRequest }

// KindOf достаёт Kind из цепочки ошибок.
func KindOf(err error) (Kind, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind, true
	}
	return "", false
}

func newErr(kind Kind, field string, msgs ...string) *Error {
	return &Error{Kind: kind, Field: field, Messages: msgs}
}

func errEmptyFilter() *Error {
	return newErr(KindEmptyFilter, "", "You must indicate at least one filter")
}

// keys приходят уже отсортированными
func errUnknownFilters(keys []string) *Error {
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("'%s' is not allowed for filtering", k))
	}
	return newErr(KindUnknownFilter, keys[0], msgs...)
}

func errInvalidValue(field, want string) *Error {
	return newErr(KindInvalidValue, field, fmt.Sprintf("The '%s' must be %s", field, want))
}
