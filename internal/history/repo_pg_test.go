package history

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateStoresNulls(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO recommendation_history").
		WithArgs("h1", "user-1", "Oxford Shirt", "Zara", nil, nil, nil, "M", 82, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Create(context.Background(), Item{
		ID: "h1", UserID: "user-1", ProductName: "Oxford Shirt", Brand: "Zara",
		RecommendedSize: "M", ConfidenceScore: 82, CreatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoListClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{"id", "user_id", "product_name", "brand", "product_url", "image_url", "price", "recommended_size", "confidence_score", "created_at"}
	mock.ExpectQuery("FROM recommendation_history").
		WithArgs("user-1", 100, 0).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("h1", "user-1", "Oxford Shirt", nil, "https://www.zara.com/p", nil, "799 TL", "M", 82, now))

	items, err := repo.ListByUser(context.Background(), "user-1", 500, -3)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(items) != 1 || items[0].Brand != "" || items[0].Price != "799 TL" {
		t.Fatalf("unexpected items %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
