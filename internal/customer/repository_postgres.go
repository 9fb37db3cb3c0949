package customer

import (
	"database/sql"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	upsertCustomerQuery = `
		INSERT INTO customers (email, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at
		RETURNING customer_id, created_at
	`

	getCustomerByEmailQuery = `
		SELECT customer_id, email, name, phone, created_at, updated_at
		FROM customers
		WHERE email = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(c Customer) (Customer, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	var createdAt string
	err := r.db.QueryRow(upsertCustomerQuery, c.Email, c.Name, c.Phone, now).Scan(&c.ID, &createdAt)
	if err != nil {
		return Customer{}, err
	}
	c.CreatedAt = createdAt
	c.UpdatedAt = now
	return c, nil
}

func (r *PostgresRepository) GetByEmail(email string) (Customer, error) {
	var (
		c     Customer
		name  sql.NullString
		phone sql.NullString
	)
	err := r.db.QueryRow(getCustomerByEmailQuery, email).Scan(&c.ID, &c.Email, &name, &phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Customer{}, ErrNotFound
		}
		return Customer{}, err
	}
	c.Name = name.String
	c.Phone = phone.String
	return c, nil
}
