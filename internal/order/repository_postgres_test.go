package order

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostgresCreate_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// ON CONFLICT DO NOTHING reports zero affected rows on replay
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 0))

	_, err = repo.Create(Order{
		ID:            "cs_test_dup",
		CustomerEmail: "a@example.com",
		TotalAmount:   35998,
		Currency:      "USD",
		Status:        StatusPaid,
		CartItems:     []CartItem{{ProductID: "p1", ProductName: "Heater", Quantity: 2, Price: 179.99}},
	})
	if err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_Inserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(0, 1))

	o, err := repo.Create(Order{
		ID:            "cs_test_new",
		CustomerEmail: "a@example.com",
		TotalAmount:   17999,
		Currency:      "USD",
		Status:        StatusPaid,
		CartItems:     []CartItem{{ProductID: "p1", ProductName: "Heater", Quantity: 1, Price: 179.99}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be set on create")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetBySessionID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT checkout_session_id").
		WithArgs("cs_missing").
		WillReturnRows(sqlmock.NewRows([]string{"checkout_session_id"}))

	if _, err := repo.GetBySessionID("cs_missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresGetBySessionID_ScansOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"checkout_session_id", "customer_email", "customer_name", "customer_phone",
		"billing_address_line1", "billing_address_line2", "billing_address_city",
		"billing_address_state", "billing_address_postal_code", "billing_address_country",
		"total_amount", "currency", "cart_items", "status", "shipped_at", "tracking_number",
		"created_at", "updated_at",
	}).AddRow(
		"cs_test_row", "a@example.com", "Jordan", nil,
		"12 Garage Way", nil, "Duluth", "MN", "55802", "US",
		int64(35998), "USD", `[{"productId":"p1","productName":"Heater","quantity":2,"price":179.99}]`,
		"PAID", nil, nil, now, now,
	)
	mock.ExpectQuery("SELECT checkout_session_id").WithArgs("cs_test_row").WillReturnRows(rows)

	o, err := repo.GetBySessionID("cs_test_row")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.TotalAmount != 35998 || o.Status != StatusPaid {
		t.Fatalf("unexpected order %+v", o)
	}
	if len(o.CartItems) != 1 || o.CartItems[0].Quantity != 2 {
		t.Fatalf("unexpected cart items %+v", o.CartItems)
	}
	if o.ShippedAt != nil {
		t.Fatal("expected nil shipped_at for unshipped order")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresUpdateStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := repo.UpdateStatus("cs_missing", StatusShipped, "TRACK1", time.Now()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
