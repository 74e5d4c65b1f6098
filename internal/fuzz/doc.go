// Package fuzztests houses Go fuzz harnesses for the formatting pipeline
// (source -> lexer -> declarations -> rules). They guard against panics and
// broken round trips on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через лексер, разбор деклараций и
// движок правил, проверяя инварианты из internal/testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
