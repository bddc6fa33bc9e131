package sqlfrag

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileCompanyFilter(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		wantSQL  string
		wantVals []any
	}{
		{
			name:     "name only",
			params:   Params{"nameLike": "net"},
			wantSQL:  "WHERE name ILIKE $1",
			wantVals: []any{"%net%"},
		},
		{
			name:     "name and lower bound",
			params:   Params{"nameLike": "x", "minEmployees": 5},
			wantSQL:  "WHERE name ILIKE $1 AND num_employees >= $2",
			wantVals: []any{"%x%", int64(5)},
		},
		{
			name:     "all three",
			params:   Params{"maxEmployees": json.Number("500"), "minEmployees": float64(100), "nameLike": "find name"},
			wantSQL:  "WHERE name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3",
			wantVals: []any{"%find name%", int64(100), int64(500)},
		},
		{
			name:     "upper bound only",
			params:   Params{"maxEmployees": 10},
			wantSQL:  "WHERE num_employees <= $1",
			wantVals: []any{int64(10)},
		},
		{
			name:     "skipped middle predicate keeps alignment",
			params:   Params{"nameLike": "a", "maxEmployees": 10},
			wantSQL:  "WHERE name ILIKE $1 AND num_employees <= $2",
			wantVals: []any{"%a%", int64(10)},
		},
		{
			name:     "zero lower bound is a real filter",
			params:   Params{"minEmployees": 0},
			wantSQL:  "WHERE num_employees >= $1",
			wantVals: []any{int64(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := CompileCompanyFilter(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, frag.SQL)
			assert.Equal(t, tt.wantVals, frag.Values)
			assert.Equal(t, len(frag.Values), countPlaceholders(frag.SQL))
		})
	}
}

func TestCompileCompanyFilter_OrderIsDeterministic(t *testing.T) {
	// map в Go итерируется случайно — результат должен быть одинаковым всегда
	for i := 0; i < 50; i++ {
		frag, err := CompileCompanyFilter(Params{"minEmployees": 5, "nameLike": "x"})
		require.NoError(t, err)
		assert.Equal(t, "WHERE name ILIKE $1 AND num_employees >= $2", frag.SQL)
		assert.Equal(t, []any{"%x%", int64(5)}, frag.Values)
	}
}

func TestCompileCompanyFilter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		kind     Kind
		messages []string
	}{
		{
			name:     "empty",
			params:   Params{},
			kind:     KindEmptyFilter,
			messages: []string{"You must indicate at least one filter"},
		},
		{
			name:     "only nulls",
			params:   Params{"nameLike": nil},
			kind:     KindEmptyFilter,
			messages: []string{"You must indicate at least one filter"},
		},
		{
			name:     "unknown key alone is not reported as empty",
			params:   Params{"handle": "c1"},
			kind:     KindUnknownFilter,
			messages: []string{"'handle' is not allowed for filtering"},
		},
		{
			name:     "unknown key next to valid ones",
			params:   Params{"nameLike": "c", "minEmployees": 1, "color": "red"},
			kind:     KindUnknownFilter,
			messages: []string{"'color' is not allowed for filtering"},
		},
		{
			name:     "all unknown keys reported sorted",
			params:   Params{"zeta": 1, "alpha": 2},
			kind:     KindUnknownFilter,
			messages: []string{"'alpha' is not allowed for filtering", "'zeta' is not allowed for filtering"},
		},
		{
			name:     "min greater than max",
			params:   Params{"minEmployees": 100, "maxEmployees": 50},
			kind:     KindInvalidRange,
			messages: []string{"The 'minEmployees' must be less than 'maxEmployees'"},
		},
		{
			name:     "equal bounds",
			params:   Params{"minEmployees": 50, "maxEmployees": 50},
			kind:     KindInvalidRange,
			messages: []string{"The 'minEmployees' must be less than 'maxEmployees'"},
		},
		{
			name:     "non-integer bound",
			params:   Params{"minEmployees": "many"},
			kind:     KindInvalidValue,
			messages: []string{"The 'minEmployees' must be an integer"},
		},
		{
			name:     "fractional bound",
			params:   Params{"maxEmployees": 1.5},
			kind:     KindInvalidValue,
			messages: []string{"The 'maxEmployees' must be an integer"},
		},
		{
			name:     "name must be a string",
			params:   Params{"nameLike": true},
			kind:     KindInvalidValue,
			messages: []string{"The 'nameLike' must be a string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag, err := CompileCompanyFilter(tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrBadRequest))
			assert.Equal(t, Fragment{}, frag)

			var fe *Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.messages, fe.Messages)
		})
	}
}

func TestCompileCompanyFilter_FromQuery(t *testing.T) {
	q := url.Values{"nameLike": {"c"}, "minEmployees": {"2"}, "maxEmployees": {"3"}}
	frag, err := CompileCompanyFilter(ParamsFromQuery(q))
	require.NoError(t, err)
	assert.Equal(t, "WHERE name ILIKE $1 AND num_employees >= $2 AND num_employees <= $3", frag.SQL)
	assert.Equal(t, []any{"%c%", int64(2), int64(3)}, frag.Values)
}

func TestCompileCompanyFilter_NumericNameFromQuery(t *testing.T) {
	frag, err := CompileCompanyFilter(ParamsFromQuery(url.Values{"nameLike": {"3"}}))
	require.NoError(t, err)
	assert.Equal(t, []any{"%3%"}, frag.Values)
}
