package customer

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"customer_id", "created_at"}).AddRow(7, "2026-01-02T15:04:05Z")
	mock.ExpectQuery("INSERT INTO customers").
		WithArgs("jordan@example.com", "Jordan Fields", "+15555550123", sqlmock.AnyArg()).
		WillReturnRows(rows)

	c, err := repo.Upsert(Customer{Email: "jordan@example.com", Name: "Jordan Fields", Phone: "+15555550123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ID != 7 {
		t.Fatalf("expected id 7, got %d", c.ID)
	}
	// created_at reflects the first write, not the upsert
	if c.CreatedAt != "2026-01-02T15:04:05Z" {
		t.Fatalf("unexpected created_at %q", c.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT customer_id").
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"customer_id"}))

	if _, err := repo.GetByEmail("missing@example.com"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInMemoryUpsert_Idempotent(t *testing.T) {
	repo := NewInMemoryRepository()

	first, err := repo.Upsert(Customer{Email: "a@example.com", Name: "A"})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second, err := repo.Upsert(Customer{Email: "a@example.com", Name: "A. Person"})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	if repo.Count() != 1 {
		t.Fatalf("expected 1 customer, got %d", repo.Count())
	}
	if first.ID != second.ID {
		t.Fatalf("upsert must keep the same id, got %d then %d", first.ID, second.ID)
	}
	if second.Name != "A. Person" {
		t.Fatalf("expected refreshed name, got %q", second.Name)
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("Jordan", "jordan@example.com"); got != "Jordan" {
		t.Fatalf("expected explicit name, got %q", got)
	}
	if got := DisplayName("", "jordan@example.com"); got != "jordan" {
		t.Fatalf("expected email local part, got %q", got)
	}
	if got := DisplayName("", "noatsign"); got != "noatsign" {
		t.Fatalf("expected raw value fallback, got %q", got)
	}
}
