package sqlfrag

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Change — одно поле частичного обновления.
type Change struct {
	Field string
	Value any
}

// Changes — упорядоченный payload обновления. Порядок важен: он задаёт нумерацию плейсхолдеров.
type Changes []Change

// Get возвращает значение поля, если оно есть в payload.
func (cs Changes) Get(field string) (any, bool) {
	for _, c := range cs {
		if c.Field == field {
			return c.Value, true
		}
	}
	return nil, false
}

// Set заменяет значение на месте или дописывает поле в конец.
func (cs *Changes) Set(field string, value any) {
	for i := range *cs {
		if (*cs)[i].Field == field {
			(*cs)[i].Value = value
			return
		}
	}
	*cs = append(*cs, Change{Field: field, Value: value})
}

// Fields — имена полей в порядке payload.
func (cs Changes) Fields() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Field
	}
	return out
}

// DecodeChanges разбирает JSON-объект, сохраняя порядок ключей.
// Повторный ключ перезаписывает значение, но остаётся на первой позиции.
func DecodeChanges(data []byte) (Changes, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode changes: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("decode changes: expected JSON object")
	}

	var out Changes
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode changes: %w", err)
		}
		key, _ := kt.(string)

		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode changes: field %q: %w", key, err)
		}
		out.Set(key, normalizeNumber(raw))
	}
	// закрывающая '}'
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decode changes: %w", err)
	}
	return out, nil
}

// json.Number → int64 для целых, float64 для остальных; вложенные значения не трогаем
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

// Columns переводит логическое имя поля в имя колонки. Нет ключа — имя совпадает.
type Columns map[string]string

func (c Columns) Column(field string) string {
	if col, ok := c[field]; ok && col != "" {
		return col
	}
	return field
}
