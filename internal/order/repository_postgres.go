package order

import (
	"database/sql"
	"encoding/json"
	"time"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	// ON CONFLICT DO NOTHING makes creation idempotent under at-least-once
	// webhook delivery: the uniqueness constraint on checkout_session_id is
	// the arbiter, not in-process state, so it holds across instances.
	insertOrderQuery = `
		INSERT INTO orders (
			checkout_session_id, customer_email, customer_name, customer_phone,
			billing_address_line1, billing_address_line2, billing_address_city,
			billing_address_state, billing_address_postal_code, billing_address_country,
			total_amount, currency, cart_items, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (checkout_session_id) DO NOTHING
	`

	getOrderQuery = `
		SELECT checkout_session_id, customer_email, customer_name, customer_phone,
			billing_address_line1, billing_address_line2, billing_address_city,
			billing_address_state, billing_address_postal_code, billing_address_country,
			total_amount, currency, cart_items, status, shipped_at, tracking_number,
			created_at, updated_at
		FROM orders
		WHERE checkout_session_id = $1
	`

	updateStatusQuery = `
		UPDATE orders
		SET status = $2,
			shipped_at = COALESCE($3, shipped_at),
			tracking_number = COALESCE($4, tracking_number),
			updated_at = $5
		WHERE checkout_session_id = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(o Order) (Order, error) {
	items, err := json.Marshal(o.CartItems)
	if err != nil {
		return Order{}, err
	}

	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now

	res, err := r.db.Exec(
		insertOrderQuery,
		o.ID,
		o.CustomerEmail,
		nullString(o.CustomerName),
		nullString(o.CustomerPhone),
		nullString(o.Line1),
		nullString(o.Line2),
		nullString(o.City),
		nullString(o.State),
		nullString(o.PostalCode),
		nullString(o.Country),
		o.TotalAmount,
		o.Currency,
		string(items),
		string(o.Status),
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrDuplicate
	}
	return o, nil
}

func (r *PostgresRepository) GetBySessionID(sessionID string) (Order, error) {
	o, err := scanOrder(r.db.QueryRow(getOrderQuery, sessionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) UpdateStatus(sessionID string, status Status, trackingNumber string, shippedAt time.Time) (Order, error) {
	var shippedArg any
	var trackingArg any
	if status == StatusShipped {
		shippedArg = shippedAt
		if trackingNumber != "" {
			trackingArg = trackingNumber
		}
	}

	res, err := r.db.Exec(updateStatusQuery, sessionID, string(status), shippedArg, trackingArg, time.Now().UTC())
	if err != nil {
		return Order{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if affected == 0 {
		return Order{}, ErrNotFound
	}

	return r.GetBySessionID(sessionID)
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		o         Order
		name      sql.NullString
		phone     sql.NullString
		line1     sql.NullString
		line2     sql.NullString
		city      sql.NullString
		state     sql.NullString
		postal    sql.NullString
		country   sql.NullString
		rawItems  string
		status    string
		shippedAt sql.NullTime
		tracking  sql.NullString
	)

	if err := row.Scan(
		&o.ID, &o.CustomerEmail, &name, &phone,
		&line1, &line2, &city, &state, &postal, &country,
		&o.TotalAmount, &o.Currency, &rawItems, &status, &shippedAt, &tracking,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return Order{}, err
	}

	o.CustomerName = name.String
	o.CustomerPhone = phone.String
	o.Line1 = line1.String
	o.Line2 = line2.String
	o.City = city.String
	o.State = state.String
	o.PostalCode = postal.String
	o.Country = country.String
	o.Status = Status(status)
	o.TrackingNumber = tracking.String
	if shippedAt.Valid {
		t := shippedAt.Time
		o.ShippedAt = &t
	}

	if rawItems != "" {
		if err := json.Unmarshal([]byte(rawItems), &o.CartItems); err != nil {
			return Order{}, err
		}
	}
	return o, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
