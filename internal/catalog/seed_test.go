package catalog

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "mutfago/internal/db"
	"mutfago/models"
)

func openSeedTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(appdb.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openSeedTestDatabase(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	counts := func() (categories, ingredients, conversions, modules, migrations int64) {
		db.Model(&models.Category{}).Count(&categories)
		db.Model(&models.Ingredient{}).Count(&ingredients)
		db.Model(&models.UnitConversion{}).Count(&conversions)
		db.Model(&models.Module{}).Count(&modules)
		db.Model(&models.SeedMigration{}).Count(&migrations)
		return
	}

	c1, i1, u1, m1, s1 := counts()
	if c1 == 0 || i1 == 0 || u1 == 0 || m1 == 0 {
		t.Fatalf("seed left tables empty: categories=%d ingredients=%d conversions=%d modules=%d", c1, i1, u1, m1)
	}
	if s1 != int64(len(SeedSteps)) {
		t.Fatalf("expected %d seed migrations, got %d", len(SeedSteps), s1)
	}

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	c2, i2, u2, m2, s2 := counts()
	if c1 != c2 || i1 != i2 || u1 != u2 || m1 != m2 || s1 != s2 {
		t.Fatalf("second seed changed row counts: %d/%d %d/%d %d/%d %d/%d %d/%d", c1, c2, i1, i2, u1, u2, m1, m2, s1, s2)
	}
}

func TestSeedInfersUnitsForBaseIngredients(t *testing.T) {
	db := openSeedTestDatabase(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cases := map[string]string{
		"Zeytinyağı": UnitLitre,
		"Domates":    UnitKg,
		"Yumurta":    UnitAdet,
		"Tahin":      UnitGr,
		"Maydanoz":   UnitDemet,
	}
	for name, want := range cases {
		var ingredient models.Ingredient
		if err := db.Where("name = ?", name).First(&ingredient).Error; err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if ingredient.DefaultUnit != want {
			t.Errorf("%s: default unit %q, want %q", name, ingredient.DefaultUnit, want)
		}
	}
}

func TestSeedPersistsInactiveModules(t *testing.T) {
	db := openSeedTestDatabase(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var module models.Module
	if err := db.Where("slug = ?", "price-tracker").First(&module).Error; err != nil {
		t.Fatalf("lookup price-tracker: %v", err)
	}
	if module.IsActive {
		t.Fatal("price-tracker seeded inactive but stored active")
	}

	var active models.Module
	if err := db.Where("slug = ?", "pantry").First(&active).Error; err != nil {
		t.Fatalf("lookup pantry: %v", err)
	}
	if !active.IsActive {
		t.Fatal("pantry should be stored active")
	}
}

func TestConvertSeededPairs(t *testing.T) {
	db := openSeedTestDatabase(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := Convert(ctx, db, UnitGr, UnitKg, 500)
	if err != nil {
		t.Fatalf("convert gr to kg: %v", err)
	}
	if got != 0.5 {
		t.Fatalf("500 gr = %v kg, want 0.5", got)
	}

	same, err := Convert(ctx, db, UnitKg, UnitKg, 3)
	if err != nil || same != 3 {
		t.Fatalf("same-unit conversion = %v, %v", same, err)
	}

	if _, err := Convert(ctx, db, UnitKg, UnitDemet, 1); err == nil {
		t.Fatal("expected error for unseeded pair")
	}
}
