package sqlfrag

import "regexp"

var placeholderRe = regexp.MustCompile(`\$([0-9]+)`)

// countPlaceholders проверяет, что плейсхолдеры идут подряд с $1 и возвращает их число (-1 при разрыве)
func countPlaceholders(sql string) int {
	ms := placeholderRe.FindAllStringSubmatch(sql, -1)
	for i, m := range ms {
		if m[1] != placeholder(i + 1)[1:] {
			return -1
		}
	}
	return len(ms)
}
