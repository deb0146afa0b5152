package format

import (
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/modset/modset/internal/resolver"
)

// ChangeKind returns a human cased, colorized version of a change kind.
func ChangeKind(kind resolver.ChangeKind) string {
	// Because of how colorizing a string works we need to
	// do the manipulations on case first or else it will not work.
	toTitle := cases.Title(language.AmericanEnglish)
	toLower := cases.Lower(language.AmericanEnglish)
	value := toTitle.String(toLower.String(string(kind)))

	return colorizeChangeKind(kind, value)
}

func colorizeChangeKind(kind resolver.ChangeKind, value string) string {
	switch kind {
	case resolver.ChangeAdded:
		return color.GreenString(value)
	case resolver.ChangeModified:
		return color.YellowString(value)
	case resolver.ChangeDeleted:
		return color.RedString(value)
	case resolver.ChangeRenamed:
		return color.BlueString(value)
	default:
		return value
	}
}

func SliceJoin(slice []string, msg string) string {
	if len(slice) == 0 {
		return msg
	}

	return strings.Join(slice, ", ")
}
