package repository

import (
	"avtopark/vehicle-api/internal/model"
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Factory{},
		&model.Chassis{},
		&model.WheelFormula{},
		&model.Engine{},
		&model.Vehicle{},
		&model.Request{},
		&model.OrderItem{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return db
}

func TestCreateAndGetByID(t *testing.T) {
	repo := New[model.Category](testDB(t))
	ctx := context.Background()

	cat := &model.Category{Name: "Dump trucks"}
	if err := repo.Create(ctx, cat); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if cat.CategoryID == 0 {
		t.Fatal("Create did not fill in the generated id")
	}

	got, err := repo.GetByID(ctx, cat.CategoryID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got == nil {
		t.Fatal("GetByID = nil; want the created record")
	}
	if got.Name != "Dump trucks" {
		t.Errorf("GetByID name = %q; want %q", got.Name, "Dump trucks")
	}
}

func TestGetByIDAbsent(t *testing.T) {
	repo := New[model.Category](testDB(t))

	got, err := repo.GetByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got != nil {
		t.Errorf("GetByID = %+v; want nil for a missing record", got)
	}
}

func TestGetAllPaging(t *testing.T) {
	repo := New[model.Category](testDB(t))
	ctx := context.Background()

	for _, name := range []string{"Tractors", "Trailers", "Vans"} {
		if err := repo.Create(ctx, &model.Category{Name: name}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	page, err := repo.GetAll(ctx, 1, 1)
	if err != nil {
		t.Fatalf("GetAll returned error: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("GetAll returned %d records; want 1", len(page))
	}
	if page[0].Name != "Trailers" {
		t.Errorf("GetAll page start = %q; want %q", page[0].Name, "Trailers")
	}
}

func TestUpdateSkipsOmittedFields(t *testing.T) {
	repo := New[model.User](testDB(t))
	ctx := context.Background()

	name := "Ivan"
	u := &model.User{Email: "ivan@example.com", PasswordHash: "x", Name: &name}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := repo.Update(ctx, u.UserID, map[string]any{"email": "ivan@example.org"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Update = nil; want the refreshed record")
	}
	if got.Email != "ivan@example.org" {
		t.Errorf("Update email = %q; want %q", got.Email, "ivan@example.org")
	}
	if got.Name == nil || *got.Name != "Ivan" {
		t.Errorf("Update touched an omitted field, name = %v", got.Name)
	}
}

func TestUpdateEmptyFieldsIsNoOp(t *testing.T) {
	repo := New[model.Category](testDB(t))
	ctx := context.Background()

	cat := &model.Category{Name: "Cranes"}
	if err := repo.Create(ctx, cat); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := repo.Update(ctx, cat.CategoryID, map[string]any{})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got == nil || got.Name != "Cranes" {
		t.Errorf("Update with no fields changed the record: %+v", got)
	}
}

func TestUpdateAbsent(t *testing.T) {
	repo := New[model.Category](testDB(t))

	got, err := repo.Update(context.Background(), 42, map[string]any{"name": "Ghost"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got != nil {
		t.Errorf("Update = %+v; want nil for a missing record", got)
	}
}

func TestDelete(t *testing.T) {
	repo := New[model.Category](testDB(t))
	ctx := context.Background()

	cat := &model.Category{Name: "Buses"}
	if err := repo.Create(ctx, cat); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	deleted, err := repo.Delete(ctx, cat.CategoryID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Error("Delete = false; want true for an existing record")
	}

	deleted, err = repo.Delete(ctx, cat.CategoryID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if deleted {
		t.Error("Delete = true; want false for a missing record")
	}
}

func TestExists(t *testing.T) {
	repo := New[model.Category](testDB(t))
	ctx := context.Background()

	cat := &model.Category{Name: "Vans"}
	if err := repo.Create(ctx, cat); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	ok, err := repo.Exists(ctx, cat.CategoryID)
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if !ok {
		t.Error("Exists = false; want true")
	}

	ok, err = repo.Exists(ctx, cat.CategoryID+1)
	if err != nil {
		t.Fatalf("Exists returned error: %v", err)
	}
	if ok {
		t.Error("Exists = true; want false")
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := New[model.User](testDB(t))
	ctx := context.Background()

	if err := repo.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	err := repo.Create(ctx, &model.User{Email: "dup@example.com", PasswordHash: "y"})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Create duplicate email error = %v; want ErrConflict", err)
	}
}

func TestOrderItemDuplicatePair(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := model.User{Email: "seller@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	vehicle := model.Vehicle{Title: "KamAZ 65115", Year: 2022, Color: "orange", UserID: user.UserID}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	req := model.Request{FullName: "Buyer", Email: "buyer@example.com", Phone: "+70000000000"}
	if err := db.Create(&req).Error; err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	repo := NewOrderItems(db)

	item := &model.OrderItem{RequestID: req.RequestID, VehicleID: vehicle.VehicleID, Quantity: 2}
	if err := repo.Create(ctx, item); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	err := repo.Create(ctx, &model.OrderItem{RequestID: req.RequestID, VehicleID: vehicle.VehicleID, Quantity: 1})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Create duplicate pair error = %v; want ErrConflict", err)
	}
}

func TestOrderItemLifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	user := model.User{Email: "seller2@example.com", PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	vehicle := model.Vehicle{Title: "GAZon Next", Year: 2023, Color: "white", UserID: user.UserID}
	if err := db.Create(&vehicle).Error; err != nil {
		t.Fatalf("Failed to create vehicle: %v", err)
	}

	req := model.Request{FullName: "Buyer", Email: "buyer2@example.com", Phone: "+70000000001"}
	if err := db.Create(&req).Error; err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	repo := NewOrderItems(db)

	if err := repo.Create(ctx, &model.OrderItem{RequestID: req.RequestID, VehicleID: vehicle.VehicleID, Quantity: 3}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := repo.Update(ctx, req.RequestID, vehicle.VehicleID, map[string]any{"quantity": 5})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if got == nil || got.Quantity != 5 {
		t.Fatalf("Update quantity = %+v; want 5", got)
	}

	items, err := repo.GetByRequest(ctx, req.RequestID)
	if err != nil {
		t.Fatalf("GetByRequest returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("GetByRequest returned %d items; want 1", len(items))
	}

	deleted, err := repo.Delete(ctx, req.RequestID, vehicle.VehicleID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Error("Delete = false; want true")
	}

	missing, err := repo.Get(ctx, req.RequestID, vehicle.VehicleID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("Get after delete = %+v; want nil", missing)
	}
}
