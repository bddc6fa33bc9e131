package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"jobly/internal/sqlfrag"

	"github.com/gin-gonic/gin"
)

// readFilters берёт фильтры из тела {"filters": {...}} или из query-строки.
// present=false — фильтров нет вовсе (список без WHERE); {"filters": {}} — это пустой фильтр, а не его отсутствие.
func readFilters(c *gin.Context) (p sqlfrag.Params, present bool, err error) {
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, false, err
		}
		if len(bytes.TrimSpace(body)) > 0 {
			var req struct {
				Filters map[string]any `json:"filters"`
			}
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.UseNumber()
			if err := dec.Decode(&req); err != nil {
				return nil, false, err
			}
			if req.Filters != nil {
				return sqlfrag.Params(req.Filters), true, nil
			}
		}
	}

	q := c.Request.URL.Query()
	if len(q) == 0 {
		return nil, false, nil
	}
	return sqlfrag.ParamsFromQuery(q), true, nil
}

// compileFilters: nil-фрагмент без ошибки — фильтров нет. ok=false — ответ уже отправлен.
func compileFilters(c *gin.Context, compile func(sqlfrag.Params) (sqlfrag.Fragment, error)) (*sqlfrag.Fragment, bool) {
	p, present, err := readFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return nil, false
	}
	if !present {
		return nil, true
	}
	frag, err := compile(p)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return &frag, true
}

// changesFrom — порядок ключей тела PATCH задаёт порядок плейсхолдеров.
func changesFrom(c *gin.Context, body []byte) (sqlfrag.Changes, bool) {
	changes, err := sqlfrag.DecodeChanges(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return nil, false
	}
	return changes, true
}
