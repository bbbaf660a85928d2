package cartops

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahand-dev/bazaar-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Discount{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *models.Product {
	t.Helper()
	category := models.Category{Name: "cat " + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	p := models.Product{
		CategoryID: category.ID,
		Name:       name,
		Price:      100,
		Stock:      50,
		Status:     models.ProductStatusAvailable,
		IsActive:   true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &p
}

func seedCart(t *testing.T, db *gorm.DB, userID, sessionKey string) *models.Cart {
	t.Helper()
	cart := models.Cart{}
	if userID != "" {
		cart.UserID = &userID
	}
	if sessionKey != "" {
		cart.SessionKey = &sessionKey
	}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	return &cart
}

func addLine(t *testing.T, db *gorm.DB, cartID, productID uint, qty int, color, size string) {
	t.Helper()
	item := models.CartItem{
		CartID: cartID, ProductID: productID,
		Quantity: qty, Color: color, Size: size,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed cart item: %v", err)
	}
}

func TestMergeNoGuestCart(t *testing.T) {
	db := openTestDB(t)

	merged, err := MergeGuestCart(db, "absent-session", "user-1")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged {
		t.Error("nothing to merge must report false")
	}

	merged, err = MergeGuestCart(db, "", "user-1")
	if err != nil || merged {
		t.Errorf("empty session key: got (%v, %v), want (false, nil)", merged, err)
	}
}

func TestMergeMovesAndSums(t *testing.T) {
	db := openTestDB(t)

	shirt := seedProduct(t, db, "shirt")
	shoes := seedProduct(t, db, "shoes")

	guestCart := seedCart(t, db, "", "sess-1")
	addLine(t, db, guestCart.ID, shirt.ID, 2, "red", "L") // overlaps
	addLine(t, db, guestCart.ID, shoes.ID, 1, "", "42")   // moves

	userCart := seedCart(t, db, "user-1", "")
	addLine(t, db, userCart.ID, shirt.ID, 3, "red", "L")

	merged, err := MergeGuestCart(db, "sess-1", "user-1")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !merged {
		t.Fatal("expected merge to happen")
	}

	// Guest cart and its rows are gone.
	var guestCount int64
	db.Model(&models.Cart{}).Where("session_key = ?", "sess-1").Count(&guestCount)
	if guestCount != 0 {
		t.Error("guest cart must be deleted after merge")
	}

	var items []models.CartItem
	if err := db.Where("cart_id = ?", userCart.ID).Order("product_id").Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 lines in user cart, got %d", len(items))
	}

	byProduct := map[uint]models.CartItem{}
	for _, it := range items {
		byProduct[it.ProductID] = it
	}
	if got := byProduct[shirt.ID].Quantity; got != 5 {
		t.Errorf("overlapping line quantity = %d, want 5", got)
	}
	if got := byProduct[shoes.ID].Quantity; got != 1 {
		t.Errorf("moved line quantity = %d, want 1", got)
	}

	// No stray rows anywhere else.
	var total int64
	db.Model(&models.CartItem{}).Count(&total)
	if total != 2 {
		t.Errorf("expected 2 cart item rows total, got %d", total)
	}
}

func TestMergeDistinctVariantsStaySeparate(t *testing.T) {
	db := openTestDB(t)

	shirt := seedProduct(t, db, "shirt")

	guestCart := seedCart(t, db, "", "sess-1")
	addLine(t, db, guestCart.ID, shirt.ID, 2, "blue", "M")

	userCart := seedCart(t, db, "user-1", "")
	addLine(t, db, userCart.ID, shirt.ID, 3, "red", "L")

	if _, err := MergeGuestCart(db, "sess-1", "user-1"); err != nil {
		t.Fatalf("merge: %v", err)
	}

	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", userCart.ID).Count(&count)
	if count != 2 {
		t.Errorf("different variants must stay separate lines, got %d", count)
	}
}

func TestMergeCreatesUserCart(t *testing.T) {
	db := openTestDB(t)

	shirt := seedProduct(t, db, "shirt")
	guestCart := seedCart(t, db, "", "sess-1")
	addLine(t, db, guestCart.ID, shirt.ID, 4, "", "")

	if _, err := MergeGuestCart(db, "sess-1", "user-new"); err != nil {
		t.Fatalf("merge: %v", err)
	}

	var userCart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", "user-new").First(&userCart).Error; err != nil {
		t.Fatalf("user cart missing: %v", err)
	}
	if len(userCart.Items) != 1 || userCart.Items[0].Quantity != 4 {
		t.Errorf("user cart items = %+v, want one line of 4", userCart.Items)
	}
}
