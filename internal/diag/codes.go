package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnmatchedCloser          Code = 1005
	LexUnclosedScope            Code = 1006

	// Форматирование
	FmtInfo             Code = 2000
	FmtPassLimit        Code = 2001
	FmtPartition        Code = 2002
	FmtRuleFailed       Code = 2003
	FmtSkippedMalformed Code = 2004
	FmtHoistRefused     Code = 2005
	FmtNotFormatted     Code = 2006

	// Наблюдаемость
	ObsInfo    Code = 3000
	ObsTimings Code = 3001

	// Ввод-вывод
	IOInfo         Code = 4000
	IOReadFailed   Code = 4001
	IOWriteFailed  Code = 4002
	IODecodeFailed Code = 4003
	IOCacheCorrupt Code = 4004

	// Конфигурация
	CfgInfo         Code = 5000
	CfgUnknownKey   Code = 5001
	CfgUnknownRule  Code = 5002
	CfgRuleConflict Code = 5003
	CfgBadValue     Code = 5004
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed number literal",
		LexUnmatchedCloser:          "Unmatched closing delimiter",
		LexUnclosedScope:            "Unclosed delimiter at end of file",
		FmtInfo:                     "Formatting information",
		FmtPassLimit:                "Rules did not converge within the pass limit",
		FmtPartition:                "Declaration partition does not reconstruct the file",
		FmtRuleFailed:               "Rule failed",
		FmtSkippedMalformed:         "Rule skipped on malformed input",
		FmtHoistRefused:             "Pattern binding left in place",
		FmtNotFormatted:             "File is not formatted",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Timing report",
		IOInfo:                      "I/O information",
		IOReadFailed:                "Cannot read file",
		IOWriteFailed:               "Cannot write file",
		IODecodeFailed:              "Cannot decode file encoding",
		IOCacheCorrupt:              "Format cache is corrupt",
		CfgInfo:                     "Configuration information",
		CfgUnknownKey:               "Unknown configuration key",
		CfgUnknownRule:              "Unknown rule name",
		CfgRuleConflict:             "Conflicting rules enabled",
		CfgBadValue:                 "Invalid configuration value",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("OBS%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
