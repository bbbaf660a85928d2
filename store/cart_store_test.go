package store

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahand-dev/bazaar-api/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// One shared in-memory database per test so the pool's connections all
	// see the same tables.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Category{}, &models.Brand{},
		&models.Discount{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	category := models.Category{Name: "test category " + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	p := models.Product{
		CategoryID: category.ID,
		Name:       name,
		Price:      price,
		Stock:      stock,
		Status:     models.ProductStatusAvailable,
		IsActive:   true,
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &p
}

func TestGetOrCreateByIdentity(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)

	first, err := carts.GetOrCreateByIdentity(SessionIdentity("sess-1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := carts.GetOrCreateByIdentity(SessionIdentity("sess-1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected one cart per identity, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Cart{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 cart row, got %d", count)
	}

	if _, err := carts.GetOrCreateByIdentity(Identity{}); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("empty identity: got %v, want ErrNoIdentity", err)
	}
	if _, err := carts.GetOrCreateByIdentity(Identity{UserID: "u", SessionKey: "s"}); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("double identity: got %v, want ErrNoIdentity", err)
	}
}

func TestUserAndSessionCartsAreDistinct(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)

	userCart, err := carts.GetOrCreateByIdentity(UserIdentity("user-1"))
	if err != nil {
		t.Fatalf("user cart: %v", err)
	}
	sessCart, err := carts.GetOrCreateByIdentity(SessionIdentity("sess-1"))
	if err != nil {
		t.Fatalf("session cart: %v", err)
	}
	if userCart.ID == sessCart.ID {
		t.Error("user and session identities must own separate carts")
	}
}

func TestAddItemConsolidatesLines(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)
	product := seedProduct(t, db, "shirt", 100, 10)

	cart, err := carts.GetOrCreateByIdentity(UserIdentity("user-1"))
	if err != nil {
		t.Fatalf("cart: %v", err)
	}

	if err := carts.AddItem(cart.ID, product.ID, 2, "red", "L"); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := carts.AddItem(cart.ID, product.ID, 3, "red", "L"); err != nil {
		t.Fatalf("second add: %v", err)
	}
	// A different variant is its own line.
	if err := carts.AddItem(cart.ID, product.ID, 1, "blue", "L"); err != nil {
		t.Fatalf("variant add: %v", err)
	}

	var items []models.CartItem
	if err := db.Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
		t.Fatalf("load items: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("consolidated quantity = %d, want 5", items[0].Quantity)
	}
	if items[1].Quantity != 1 || items[1].Color != "blue" {
		t.Errorf("variant line = %+v, want quantity 1 color blue", items[1])
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)
	product := seedProduct(t, db, "shirt", 100, 10)

	cart, _ := carts.GetOrCreateByIdentity(UserIdentity("user-1"))

	for _, qty := range []int{0, -1, -100} {
		if err := carts.AddItem(cart.ID, product.ID, qty, "", ""); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("qty %d: got %v, want ErrInvalidQuantity", qty, err)
		}
	}

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	if count != 0 {
		t.Errorf("rejected adds must not create rows, found %d", count)
	}
}

func TestUpdateItemQuantity(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)
	product := seedProduct(t, db, "shirt", 100, 10)

	cart, _ := carts.GetOrCreateByIdentity(UserIdentity("user-1"))
	if err := carts.AddItem(cart.ID, product.ID, 2, "", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	var item models.CartItem
	db.Where("cart_id = ?", cart.ID).First(&item)

	// Overwrite, not increment.
	if err := carts.UpdateItemQuantity(cart.ID, item.ID, 7); err != nil {
		t.Fatalf("update: %v", err)
	}
	db.First(&item, item.ID)
	if item.Quantity != 7 {
		t.Errorf("quantity = %d, want 7", item.Quantity)
	}

	// Zero or negative deletes the line.
	if err := carts.UpdateItemQuantity(cart.ID, item.ID, 0); err != nil {
		t.Fatalf("delete via update: %v", err)
	}
	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected line removed, %d left", count)
	}

	if err := carts.UpdateItemQuantity(cart.ID, 9999, 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing item: got %v, want ErrNotFound", err)
	}
}

func TestRemoveItemCrossCart(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)
	product := seedProduct(t, db, "shirt", 100, 10)

	mine, _ := carts.GetOrCreateByIdentity(UserIdentity("user-1"))
	theirs, _ := carts.GetOrCreateByIdentity(UserIdentity("user-2"))
	if err := carts.AddItem(theirs.ID, product.ID, 1, "", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	var item models.CartItem
	db.Where("cart_id = ?", theirs.ID).First(&item)

	// Another identity's line is not reachable through my cart.
	if err := carts.RemoveItem(mine.ID, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("cross-cart removal: got %v, want ErrNotFound", err)
	}

	var count int64
	db.Model(&models.CartItem{}).Count(&count)
	if count != 1 {
		t.Errorf("line must survive cross-cart removal attempt, found %d", count)
	}

	if err := carts.RemoveItem(theirs.ID, item.ID); err != nil {
		t.Errorf("owner removal failed: %v", err)
	}
}

func TestDeleteCart(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)
	product := seedProduct(t, db, "shirt", 100, 10)

	cart, _ := carts.GetOrCreateByIdentity(SessionIdentity("sess-1"))
	if err := carts.AddItem(cart.ID, product.ID, 2, "", ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := carts.DeleteCart(cart.ID); err != nil {
		t.Fatalf("delete cart: %v", err)
	}

	var cartCount, itemCount int64
	db.Model(&models.Cart{}).Count(&cartCount)
	db.Model(&models.CartItem{}).Count(&itemCount)
	if cartCount != 0 || itemCount != 0 {
		t.Errorf("expected cart and items gone, got %d carts %d items", cartCount, itemCount)
	}

	if _, err := carts.FindCartWithItems(SessionIdentity("sess-1")); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted cart lookup: got %v, want ErrNotFound", err)
	}
}

func TestFindCartWithItemsLoadsPricing(t *testing.T) {
	db := openTestDB(t)
	carts := NewCartStore(db)
	product := seedProduct(t, db, "shirt", 100, 10)

	cart, _ := carts.GetOrCreateByIdentity(UserIdentity("user-1"))
	if err := carts.AddItem(cart.ID, product.ID, 2, "", ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	loaded, err := carts.FindCartWithItems(UserIdentity("user-1"))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Product == nil {
		t.Fatal("expected item with product preloaded")
	}
	if got := loaded.Subtotal(); got != 200 {
		t.Errorf("Subtotal = %d, want 200", got)
	}
}
