package catalog

import "strings"

// Units of measure used across the catalogue, pantry and market.
const (
	UnitKg    = "kg"
	UnitGr    = "gr"
	UnitLitre = "litre"
	UnitMl    = "ml"
	UnitAdet  = "adet"
	UnitPaket = "paket"
	UnitSise  = "şişe"
	UnitDemet = "demet"
	UnitKutu  = "kutu"
)

type unitRule struct {
	keyword string
	unit    string
}

// Global overrides are tested before category rules because some ingredients
// (bottled sauces, oils) appear across categories. Rule order is significant:
// the first match wins, and seed data depends on the exact ordering.
var globalUnitRules = []unitRule{
	{"yağ", UnitLitre},
	{"sirke", UnitSise},
	{"sos", UnitSise},
	{"salça", UnitSise},
	{"yumurta", UnitAdet},
	{"ekmek", UnitAdet},
	{"çay", UnitPaket},
	{"kahve", UnitPaket},
	{"süt", UnitLitre},
	{"şeker", UnitKg},
	{"makarna", UnitPaket},
	{"bulyon", UnitKutu},
	{"konserve", UnitKutu},
}

// Category sub-rules, applied after the global overrides with the same
// first-match-wins policy.
var categoryUnitRules = map[string][]unitRule{
	"SEBZELER": {
		{"maydanoz", UnitDemet},
		{"dereotu", UnitDemet},
		{"nane", UnitDemet},
		{"roka", UnitDemet},
		{"tere", UnitDemet},
		{"marul", UnitAdet},
		{"lahana", UnitAdet},
		{"karnabahar", UnitAdet},
		{"brokoli", UnitAdet},
		{"kereviz", UnitAdet},
	},
	"MEYVELER": {
		{"karpuz", UnitAdet},
		{"kavun", UnitAdet},
		{"ananas", UnitAdet},
		{"avokado", UnitAdet},
		{"limon", UnitKg},
	},
	"SÜT ÜRÜNLERİ": {
		{"yoğurt", UnitKg},
		{"peynir", UnitKg},
		{"tereyağ", UnitKg},
		{"kaymak", UnitKg},
	},
}

// Per-category fallbacks when no keyword rule matches.
var categoryDefaultUnits = map[string]string{
	"SEBZELER":         UnitKg,
	"MEYVELER":         UnitKg,
	"ET ÜRÜNLERİ":      UnitKg,
	"BAKLİYAT":         UnitKg,
	"TAHILLAR":         UnitKg,
	"KURUYEMİŞLER":     UnitGr,
	"BAHARATLAR":       UnitGr,
	"YAĞLAR":           UnitLitre,
	"İÇECEKLER":        UnitLitre,
	"SÜT ÜRÜNLERİ":     UnitAdet,
	"TEMEL MALZEMELER": UnitAdet,
	"DONDURULMUŞ":      UnitPaket,
	"KONSERVE":         UnitKutu,
}

// InferDefaultUnit returns the default unit of measure for an ingredient.
// It is pure and total: substring matching against the ordered override table,
// then the category sub-rules, then the category default, then "adet".
func InferDefaultUnit(name, category string) string {
	lowered := lowerTurkish(NormalizeItemName(name))
	normalizedCategory := NormalizeCategoryName(category)

	for _, rule := range globalUnitRules {
		if strings.Contains(lowered, rule.keyword) {
			return rule.unit
		}
	}

	for _, rule := range categoryUnitRules[normalizedCategory] {
		if strings.Contains(lowered, rule.keyword) {
			return rule.unit
		}
	}

	if unit, ok := categoryDefaultUnits[normalizedCategory]; ok {
		return unit
	}

	return UnitAdet
}

// Shelf-life keyword rules, in days. First match wins; the category table
// below covers the rest.
var shelfLifeRules = []struct {
	keyword string
	days    int
}{
	{"tavuk", 2},
	{"balık", 2},
	{"kıyma", 2},
	{"et", 3},
	{"süt", 7},
	{"yoğurt", 14},
	{"peynir", 30},
	{"yumurta", 21},
	{"ekmek", 3},
}

var categoryShelfLifeDays = map[string]int{
	"SEBZELER":     7,
	"MEYVELER":     7,
	"SÜT ÜRÜNLERİ": 10,
	"ET ÜRÜNLERİ":  3,
	"DONDURULMUŞ":  180,
	"KONSERVE":     365,
	"BAHARATLAR":   730,
	"BAKLİYAT":     365,
	"TAHILLAR":     365,
	"KURUYEMİŞLER": 180,
	"YAĞLAR":       365,
}

// InferShelfLifeDays returns the expected shelf life for an ingredient, or nil
// when nothing sensible is known.
func InferShelfLifeDays(name, category string) *int {
	lowered := lowerTurkish(NormalizeItemName(name))
	for _, rule := range shelfLifeRules {
		if strings.Contains(lowered, rule.keyword) {
			days := rule.days
			return &days
		}
	}

	if days, ok := categoryShelfLifeDays[NormalizeCategoryName(category)]; ok {
		value := days
		return &value
	}

	return nil
}
