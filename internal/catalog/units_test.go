package catalog

import "testing"

func TestInferDefaultUnit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		category string
		want     string
	}{
		{"Zeytinyağı", "YAĞLAR", UnitLitre},
		{"Ayçiçek Yağı", "YAĞLAR", UnitLitre},
		{"Domates", "SEBZELER", UnitKg},
		{"Patates", "SEBZELER", UnitKg},
		{"Maydanoz", "SEBZELER", UnitDemet},
		{"Marul", "SEBZELER", UnitAdet},
		{"Karpuz", "MEYVELER", UnitAdet},
		{"Elma", "MEYVELER", UnitKg},
		{"Yumurta", "TEMEL MALZEMELER", UnitAdet},
		{"Ekmek", "TEMEL MALZEMELER", UnitAdet},
		{"Tahin", "KURUYEMİŞLER", UnitGr},
		{"Çay", "İÇECEKLER", UnitPaket},
		{"Türk Kahvesi", "İÇECEKLER", UnitPaket},
		{"Elma Sirkesi", "TEMEL MALZEMELER", UnitSise},
		{"Domates Salçası", "KONSERVE", UnitSise},
		{"Soya Sosu", "TEMEL MALZEMELER", UnitSise},
		{"Bilinmeyen Şey", "GİZEMLİ RAF", UnitAdet},
		{"", "", UnitAdet},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name+"/"+tt.category, func(t *testing.T) {
			t.Parallel()
			if got := InferDefaultUnit(tt.name, tt.category); got != tt.want {
				t.Fatalf("InferDefaultUnit(%q, %q) = %q, want %q", tt.name, tt.category, got, tt.want)
			}
		})
	}
}

func TestInferDefaultUnitOverridesBeatCategory(t *testing.T) {
	t.Parallel()

	// Bottled sauces keep their override no matter the category they land in.
	for _, category := range []string{"SEBZELER", "KONSERVE", "TEMEL MALZEMELER", ""} {
		if got := InferDefaultUnit("Acı Sos", category); got != UnitSise {
			t.Fatalf("expected şişe for sauce in %q, got %q", category, got)
		}
	}
}

func TestInferDefaultUnitIsDeterministic(t *testing.T) {
	t.Parallel()

	first := InferDefaultUnit("Zeytinyağı", "YAĞLAR")
	for i := 0; i < 10; i++ {
		if got := InferDefaultUnit("Zeytinyağı", "YAĞLAR"); got != first {
			t.Fatalf("inference not deterministic: %q then %q", first, got)
		}
	}
}

func TestInferShelfLifeDays(t *testing.T) {
	t.Parallel()

	if days := InferShelfLifeDays("Tavuk Göğsü", "ET ÜRÜNLERİ"); days == nil || *days != 2 {
		t.Fatalf("expected 2 days for poultry, got %v", days)
	}
	if days := InferShelfLifeDays("Domates", "SEBZELER"); days == nil || *days != 7 {
		t.Fatalf("expected 7 days for vegetables, got %v", days)
	}
	if days := InferShelfLifeDays("Gizemli", "GİZEMLİ RAF"); days != nil {
		t.Fatalf("expected nil for unknown category, got %d", *days)
	}
}

func TestNormalizeCategoryName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"sebzeler", "SEBZELER"},
		{"yağlar", "YAĞLAR"},
		{"  süt   ürünleri ", "SÜT ÜRÜNLERİ"},
		{"içecekler", "İÇECEKLER"},
		{"kuruyemişler", "KURUYEMİŞLER"},
		{"SEBZELER", "SEBZELER"},
	}

	for _, tt := range cases {
		if got := NormalizeCategoryName(tt.in); got != tt.want {
			t.Fatalf("NormalizeCategoryName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
