package mock

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appdb "mutfago/internal/db"
	applog "mutfago/internal/log"
	"mutfago/models"
)

// New returns an in-memory sqlite database seeded with a representative
// household kitchen.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:mutfago-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(appdb.Tables...); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	password, err := bcrypt.GenerateFromPassword([]byte("mutfak"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := &models.User{
		Name:         "Elif Aksoy",
		Email:        "elif@mutfago.app",
		PasswordHash: string(password),
	}
	if err := db.WithContext(ctx).Create(owner).Error; err != nil {
		return err
	}

	kitchen := &models.Kitchen{
		Name:       "Aksoy Mutfağı",
		InviteCode: "AKSY01",
		OwnerID:    owner.ID,
		Status:     models.KitchenStatusActive,
	}
	if err := db.WithContext(ctx).Create(kitchen).Error; err != nil {
		return err
	}
	if err := db.WithContext(ctx).Create(&models.KitchenMember{
		KitchenID: kitchen.ID,
		UserID:    owner.ID,
		Role:      models.RoleOwner,
	}).Error; err != nil {
		return err
	}

	expiry := time.Now().UTC().Add(5 * 24 * time.Hour)
	pantry := []models.PantryItem{
		{KitchenID: kitchen.ID, Name: "Domates", Category: "SEBZELER", Quantity: 2, InitialQuantity: 2, Unit: "kg", ExpiryDate: &expiry},
		{KitchenID: kitchen.ID, Name: "Zeytinyağı", Category: "YAĞLAR", Quantity: 1, InitialQuantity: 1, Unit: "litre"},
		{KitchenID: kitchen.ID, Name: "Yumurta", Category: "TEMEL MALZEMELER", Quantity: 10, InitialQuantity: 10, Unit: "adet"},
	}
	for _, item := range pantry {
		itemCopy := item
		if err := db.WithContext(ctx).Create(&itemCopy).Error; err != nil {
			return err
		}
	}

	market := []models.MarketItem{
		{KitchenID: kitchen.ID, Name: "Süt", Category: "SÜT ÜRÜNLERİ", Quantity: 2, Unit: "litre", Status: models.MarketStatusPending},
		{KitchenID: kitchen.ID, Name: "Ekmek", Category: "TEMEL MALZEMELER", Quantity: 1, Unit: "adet", Status: models.MarketStatusPending},
	}
	for _, item := range market {
		itemCopy := item
		if err := db.WithContext(ctx).Create(&itemCopy).Error; err != nil {
			return err
		}
	}

	trialDays := 14
	modules := []models.Module{
		{Name: "Kiler", Slug: "pantry", Description: "Stok takibi", IsCore: true, IsActive: true, PricingType: models.PricingFree},
		{Name: "Pazar Listesi", Slug: "market", Description: "Alışveriş listeleri", IsCore: true, IsActive: true, PricingType: models.PricingFree},
		{Name: "Menü Planlayıcı", Slug: "meal-planner", Description: "Haftalık menü planı", IsCore: false, IsActive: true, PricingType: models.PricingTrial, TrialDays: &trialDays},
	}
	for _, module := range modules {
		moduleCopy := module
		if err := db.WithContext(ctx).Create(&moduleCopy).Error; err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
