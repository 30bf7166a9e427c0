package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dujiao-next/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) *GormProductRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewProductRepository(db)
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Desk Lamp", Price: models.MustMoney("25.00"), Description: "Warm light", CreatedAt: "2024-01-05T10:00:00Z"},
		{ID: 2, Name: "Coffee Mug", Price: models.MustMoney("9.50"), Description: "Ceramic mug", CreatedAt: "2024-03-01T10:00:00Z"},
		{ID: 3, Name: "Notebook", Price: models.MustMoney("4.25"), Description: "Dotted pages", CreatedAt: "2024-02-10T10:00:00Z"},
	}
}

func TestProductRepositorySeedIfEmpty(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	ctx := context.Background()

	seeded, err := repo.SeedIfEmpty(ctx, seedProducts())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if seeded != 3 {
		t.Fatalf("seeded want 3 got %d", seeded)
	}
	seeded, err = repo.SeedIfEmpty(ctx, seedProducts())
	if err != nil {
		t.Fatalf("second seed failed: %v", err)
	}
	if seeded != 0 {
		t.Fatalf("second seed should be skipped, got %d", seeded)
	}
	total, err := repo.Count(ctx)
	if err != nil || total != 3 {
		t.Fatalf("count want 3 got %d err=%v", total, err)
	}
}

func TestProductRepositoryCreateAssignsNextID(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	ctx := context.Background()
	if _, err := repo.SeedIfEmpty(ctx, seedProducts()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	product := &models.Product{Name: "Pen", Price: models.MustMoney("1.99"), Description: "Blue ink"}
	if err := repo.Create(ctx, product); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.ID != 4 {
		t.Fatalf("id want 4 got %d", product.ID)
	}
	got, err := repo.GetByID(ctx, 4)
	if err != nil || got == nil {
		t.Fatalf("get created failed: %v", err)
	}
	if got.Price.String() != "1.99" {
		t.Fatalf("price want 1.99 got %s", got.Price.String())
	}
}

func TestProductRepositoryListFilterSortPaginate(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	ctx := context.Background()
	if _, err := repo.SeedIfEmpty(ctx, seedProducts()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	rows, total, err := repo.List(ctx, ProductListFilter{Sort: "createdAt", Order: "desc"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("want 3 rows got %d/%d", len(rows), total)
	}
	if rows[0].ID != 2 || rows[1].ID != 3 || rows[2].ID != 1 {
		t.Fatalf("unexpected order: %d %d %d", rows[0].ID, rows[1].ID, rows[2].ID)
	}

	rows, total, err = repo.List(ctx, ProductListFilter{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("paged list failed: %v", err)
	}
	if total != 3 || len(rows) != 1 || rows[0].ID != 3 {
		t.Fatalf("unexpected page 2: total=%d rows=%v", total, rows)
	}

	rows, total, err = repo.List(ctx, ProductListFilter{Search: "mug"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].ID != 2 {
		t.Fatalf("search want coffee mug, got total=%d rows=%v", total, rows)
	}
}

func TestProductRepositoryPatchAndDelete(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	ctx := context.Background()
	if _, err := repo.SeedIfEmpty(ctx, seedProducts()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	name := "Tall Desk Lamp"
	price := models.MustMoney("30.00")
	updated, err := repo.Patch(ctx, 1, models.ProductPatch{Name: &name, Price: &price})
	if err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if updated == nil || updated.Name != name || updated.Price.String() != "30.00" {
		t.Fatalf("unexpected patched product: %+v", updated)
	}
	if updated.Description != "Warm light" {
		t.Fatalf("patch should keep untouched fields, got %q", updated.Description)
	}

	missing, err := repo.Patch(ctx, 99, models.ProductPatch{Name: &name})
	if err != nil {
		t.Fatalf("patch missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("patch missing should return nil, got %+v", missing)
	}

	deleted, err := repo.Delete(ctx, 1)
	if err != nil || !deleted {
		t.Fatalf("delete want true got %v err=%v", deleted, err)
	}
	deleted, err = repo.Delete(ctx, 1)
	if err != nil || deleted {
		t.Fatalf("second delete want false got %v err=%v", deleted, err)
	}
	got, err := repo.GetByID(ctx, 1)
	if err != nil || got != nil {
		t.Fatalf("deleted product should be absent, got %+v err=%v", got, err)
	}
}

func TestProductRepositoryReplace(t *testing.T) {
	repo := setupProductRepositoryTest(t)
	ctx := context.Background()
	if _, err := repo.SeedIfEmpty(ctx, seedProducts()); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	ok, err := repo.Replace(ctx, &models.Product{ID: 3, Name: "Sketchbook", Price: models.MustMoney("7.00")})
	if err != nil || !ok {
		t.Fatalf("replace want true got %v err=%v", ok, err)
	}
	got, err := repo.GetByID(ctx, 3)
	if err != nil || got == nil {
		t.Fatalf("get replaced failed: %v", err)
	}
	if got.Name != "Sketchbook" || got.Description != "" || got.CreatedAt != "" {
		t.Fatalf("replace should overwrite every field, got %+v", got)
	}

	ok, err = repo.Replace(ctx, &models.Product{ID: 42, Name: "Ghost"})
	if err != nil || ok {
		t.Fatalf("replace missing want false got %v err=%v", ok, err)
	}
}
