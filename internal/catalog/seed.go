package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	applog "mutfago/internal/log"
	"mutfago/models"
)

// SeedStep is one versioned catalogue migration, keyed by a stable name so
// re-running the seeder skips already-applied steps.
type SeedStep struct {
	Key   string
	Apply func(ctx context.Context, tx *gorm.DB) error
}

// SeedSteps is the ordered catalogue seed plan.
var SeedSteps = []SeedStep{
	{Key: "0001_categories", Apply: seedCategories},
	{Key: "0002_unit_conversions", Apply: seedUnitConversions},
	{Key: "0003_modules", Apply: seedModules},
	{Key: "0004_base_ingredients", Apply: seedBaseIngredients},
}

// Seed applies every pending seed step in order, each inside its own
// transaction. Applied steps are recorded in seed_migrations.
func Seed(ctx context.Context, db *gorm.DB) error {
	for _, step := range SeedSteps {
		var applied models.SeedMigration
		err := db.WithContext(ctx).Where("key = ?", step.Key).First(&applied).Error
		if err == nil {
			applog.Debug(ctx, "seed step already applied", "key", step.Key)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check seed step %s: %w", step.Key, err)
		}

		if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := step.Apply(ctx, tx); err != nil {
				return err
			}
			return tx.Create(&models.SeedMigration{Key: step.Key}).Error
		}); err != nil {
			return fmt.Errorf("apply seed step %s: %w", step.Key, err)
		}
		applog.Info(ctx, "seed step applied", "key", step.Key)
	}
	return nil
}

func seedCategories(ctx context.Context, tx *gorm.DB) error {
	categories := []struct {
		name string
		icon string
	}{
		{"Sebzeler", "🥕"},
		{"Meyveler", "🍎"},
		{"Et Ürünleri", "🥩"},
		{"Süt Ürünleri", "🥛"},
		{"Temel Malzemeler", "🧺"},
		{"Bakliyat", "🫘"},
		{"Tahıllar", "🌾"},
		{"Kuruyemişler", "🥜"},
		{"Baharatlar", "🧂"},
		{"Yağlar", "🫒"},
		{"İçecekler", "🧃"},
		{"Dondurulmuş", "🧊"},
		{"Konserve", "🥫"},
	}

	for _, entry := range categories {
		if _, err := UpsertCategory(ctx, tx, entry.name, entry.icon); err != nil {
			return err
		}
	}
	return nil
}

func seedUnitConversions(ctx context.Context, tx *gorm.DB) error {
	pairs := []models.UnitConversion{
		{UnitFrom: UnitGr, UnitTo: UnitKg, Multiplier: 0.001},
		{UnitFrom: UnitKg, UnitTo: UnitGr, Multiplier: 1000},
		{UnitFrom: UnitMl, UnitTo: UnitLitre, Multiplier: 0.001},
		{UnitFrom: UnitLitre, UnitTo: UnitMl, Multiplier: 1000},
		{UnitFrom: UnitAdet, UnitTo: UnitPaket, Multiplier: 0.1},
		{UnitFrom: UnitPaket, UnitTo: UnitAdet, Multiplier: 10},
	}

	for _, pair := range pairs {
		var existing models.UnitConversion
		err := tx.WithContext(ctx).
			Where("unit_from = ? AND unit_to = ?", pair.UnitFrom, pair.UnitTo).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pairCopy := pair
			if err := tx.WithContext(ctx).Create(&pairCopy).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if existing.Multiplier != pair.Multiplier {
				if err := tx.WithContext(ctx).Model(&existing).Update("multiplier", pair.Multiplier).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedModules(ctx context.Context, tx *gorm.DB) error {
	trialDays := 14
	price := 29.90
	modules := []models.Module{
		{Name: "Kiler", Slug: "pantry", Description: "Stok ve son kullanma takibi", Icon: "🏺", IsCore: true, IsActive: true, PricingType: models.PricingFree},
		{Name: "Pazar Listesi", Slug: "market", Description: "Ortak alışveriş listeleri", Icon: "🛒", IsCore: true, IsActive: true, PricingType: models.PricingFree},
		{Name: "Tarif Defteri", Slug: "recipes", Description: "Tarif kataloğu", Icon: "📖", IsCore: true, IsActive: true, PricingType: models.PricingFree},
		{Name: "Menü Planlayıcı", Slug: "meal-planner", Description: "Haftalık menü planı", Icon: "🗓️", IsCore: false, IsActive: true, PricingType: models.PricingTrial, TrialDays: &trialDays, Badge: "yeni"},
		{Name: "Beslenme Analizi", Slug: "nutrition", Description: "Kalori ve makro takibi", Icon: "📊", IsCore: false, IsActive: true, PricingType: models.PricingPaid, Price: &price},
		{Name: "Fiyat Takibi", Slug: "price-tracker", Description: "Pazar fiyatı geçmişi", Icon: "💸", IsCore: false, IsActive: false, PricingType: models.PricingFreemium},
	}

	for _, module := range modules {
		var existing models.Module
		err := tx.WithContext(ctx).Where("slug = ?", module.Slug).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			moduleCopy := module
			if err := tx.WithContext(ctx).Create(&moduleCopy).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			updates := map[string]any{
				"name":         module.Name,
				"description":  module.Description,
				"icon":         module.Icon,
				"is_core":      module.IsCore,
				"is_active":    module.IsActive,
				"pricing_type": module.PricingType,
				"badge":        module.Badge,
			}
			if err := tx.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedBaseIngredients(ctx context.Context, tx *gorm.DB) error {
	entries := []struct {
		name     string
		category string
	}{
		{"Domates", "Sebzeler"},
		{"Soğan", "Sebzeler"},
		{"Patates", "Sebzeler"},
		{"Biber", "Sebzeler"},
		{"Maydanoz", "Sebzeler"},
		{"Marul", "Sebzeler"},
		{"Elma", "Meyveler"},
		{"Muz", "Meyveler"},
		{"Karpuz", "Meyveler"},
		{"Limon", "Meyveler"},
		{"Kıyma", "Et Ürünleri"},
		{"Tavuk Göğsü", "Et Ürünleri"},
		{"Süt", "Süt Ürünleri"},
		{"Yoğurt", "Süt Ürünleri"},
		{"Beyaz Peynir", "Süt Ürünleri"},
		{"Yumurta", "Temel Malzemeler"},
		{"Ekmek", "Temel Malzemeler"},
		{"Un", "Temel Malzemeler"},
		{"Şeker", "Temel Malzemeler"},
		{"Makarna", "Temel Malzemeler"},
		{"Kırmızı Mercimek", "Bakliyat"},
		{"Nohut", "Bakliyat"},
		{"Pirinç", "Tahıllar"},
		{"Bulgur", "Tahıllar"},
		{"Fındık", "Kuruyemişler"},
		{"Tahin", "Kuruyemişler"},
		{"Karabiber", "Baharatlar"},
		{"Pul Biber", "Baharatlar"},
		{"Zeytinyağı", "Yağlar"},
		{"Ayçiçek Yağı", "Yağlar"},
		{"Çay", "İçecekler"},
		{"Türk Kahvesi", "İçecekler"},
		{"Domates Salçası", "Konserve"},
		{"Elma Sirkesi", "Temel Malzemeler"},
	}

	// One bad record must not sink the whole step.
	for _, entry := range entries {
		if _, err := UpsertIngredient(ctx, tx, entry.name, entry.category, "", nil); err != nil {
			applog.Warn(ctx, "skipping seed ingredient", "name", entry.name, "error", err)
		}
	}
	return nil
}
