package sqlfrag

// CompileUpdate собирает тело SET-клаузы: `"first_name"=$1, "email"=$2`.
//
// Имена колонок НЕ экранируются и не проверяются: это граница доверия.
// Ключи changes должны быть заранее проверены схемой запроса, а cols — статической
// таблицей из кода, но никак не данными клиента.
func CompileUpdate(changes Changes, cols Columns) (Fragment, error) {
	if len(changes) == 0 {
		return Fragment{}, newErr(KindEmptyInput, "", "No data")
	}

	var b builder
	for _, ch := range changes {
		b.add(`"`+cols.Column(ch.Field)+`"`, "=", ch.Value)
	}
	return b.build("", ", "), nil
}
