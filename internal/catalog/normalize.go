package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	turkishUpper = cases.Upper(language.Turkish)
	turkishLower = cases.Lower(language.Turkish)
)

// NormalizeCategoryName returns the canonical stored form of a category name:
// trimmed, whitespace-collapsed, uppercased with Turkish casing rules so that
// dotted and dotless i map correctly and diacritics survive.
func NormalizeCategoryName(name string) string {
	return turkishUpper.String(collapseSpaces(name))
}

// NormalizeItemName trims and collapses whitespace without changing case.
func NormalizeItemName(name string) string {
	return collapseSpaces(name)
}

func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(value)), " ")
}

func lowerTurkish(value string) string {
	return turkishLower.String(value)
}
