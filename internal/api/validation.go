package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"jobly/internal/sqlfrag"
	"jobly/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Коды ошибок, которыми будем пользоваться
const (
	ErrRequired        = "required"
	ErrTypeMismatch    = "type_mismatch"
	ErrInvalid         = "invalid"
	ErrUnknownField    = "unknown_field"
	ErrUniqueViolation = "unique_violation"
	ErrRefNotFound     = "ref_not_found"
	ErrNotFound        = "not_found"
	ErrConstraint      = "constraint_violation"
)

func ferr(code, field, msg string) FieldError {
	return FieldError{Code: code, Field: field, Message: msg}
}

func init() {
	// в ошибках валидатора — имена полей из json-тегов, а не Go-имена
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	}
}

// bindStrict разбирает тело в obj (неизвестные поля запрещены), прогоняет binding-теги
// и возвращает сырое тело: из него потом берётся порядок ключей для частичного обновления.
func bindStrict(c *gin.Context, obj any) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{decodeError(err)}})
		return nil, false
	}
	if err := binding.Validator.ValidateStruct(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErrors(err)})
		return nil, false
	}
	return body, true
}

func decodeError(err error) FieldError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return ferr(ErrTypeMismatch, typeErr.Field,
			fmt.Sprintf("Field '%s' expected %s", typeErr.Field, typeErr.Type))
	}
	// encoding/json не экспортирует тип для unknown field — только текст
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		field := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return ferr(ErrUnknownField, field, fmt.Sprintf("Field '%s' is not allowed", field))
	}
	return ferr(ErrTypeMismatch, "", "Invalid JSON")
}

func validationErrors(err error) []FieldError {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return []FieldError{ferr(ErrInvalid, "", err.Error())}
	}
	out := make([]FieldError, 0, len(ves))
	for _, fe := range ves {
		code := ErrInvalid
		msg := fmt.Sprintf("Field '%s' failed '%s' check", fe.Field(), fe.Tag())
		if fe.Tag() == "required" {
			code = ErrRequired
			msg = fmt.Sprintf("Field '%s' is required", fe.Field())
		}
		out = append(out, ferr(code, fe.Field(), msg))
	}
	return out
}

func statusForErrors(errs []FieldError) int {
	// 409, если есть конфликтные ошибки (unique/ref)
	for _, e := range errs {
		if e.Code == ErrUniqueViolation || e.Code == ErrRefNotFound {
			return http.StatusConflict
		}
	}
	return http.StatusBadRequest
}

// respondError переводит ошибки компилятора и хранилища в ответ клиенту.
func respondError(c *gin.Context, err error) {
	var fe *sqlfrag.Error
	switch {
	case errors.As(err, &fe):
		errs := make([]FieldError, 0, len(fe.Messages))
		for _, m := range fe.Messages {
			errs = append(errs, ferr(string(fe.Kind), fe.Field, m))
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found", "details": err.Error()})
	case errors.Is(err, store.ErrConflict):
		errs := []FieldError{ferr(ErrUniqueViolation, "", err.Error())}
		c.JSON(statusForErrors(errs), gin.H{"errors": errs})
	case errors.Is(err, store.ErrInvalidReference):
		errs := []FieldError{ferr(ErrRefNotFound, "", err.Error())}
		c.JSON(statusForErrors(errs), gin.H{"errors": errs})
	case errors.Is(err, store.ErrConstraint):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{ferr(ErrConstraint, "", err.Error())}})
	case errors.Is(err, store.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []FieldError{ferr(ErrUnknownField, "", err.Error())}})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
