package product

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getProductBySlugQuery = `
		SELECT product_id, name, slug, tagline, description, price, original_price,
			currency, badge, in_stock, images, features, specifications,
			safety_features, certifications
		FROM products
		WHERE slug = $1
	`

	upsertProductQuery = `
		INSERT INTO products (
			name, slug, tagline, description, price, original_price, currency,
			badge, in_stock, images, features, specifications, safety_features, certifications
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name,
			tagline = EXCLUDED.tagline,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			original_price = EXCLUDED.original_price,
			currency = EXCLUDED.currency,
			badge = EXCLUDED.badge,
			in_stock = EXCLUDED.in_stock,
			images = EXCLUDED.images,
			features = EXCLUDED.features,
			specifications = EXCLUDED.specifications,
			safety_features = EXCLUDED.safety_features,
			certifications = EXCLUDED.certifications
		RETURNING product_id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetBySlug(slug string) (Product, error) {
	var (
		p             Product
		originalPrice sql.NullFloat64
		tagline       sql.NullString
		description   sql.NullString
		badge         sql.NullString
		rawImages     []byte
		rawFeatures   []byte
		rawSpecs      []byte
		rawSafety     []byte
		rawCerts      []byte
	)

	err := r.db.QueryRow(getProductBySlugQuery, slug).Scan(
		&p.ID, &p.Name, &p.Slug, &tagline, &description, &p.Price, &originalPrice,
		&p.Currency, &badge, &p.InStock, &rawImages, &rawFeatures, &rawSpecs,
		&rawSafety, &rawCerts,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}

	p.Tagline = tagline.String
	p.Description = description.String
	p.Badge = badge.String
	if originalPrice.Valid {
		v := originalPrice.Float64
		p.OriginalPrice = &v
	}

	for _, col := range []struct {
		raw []byte
		out any
	}{
		{rawImages, &p.Images},
		{rawFeatures, &p.Features},
		{rawSpecs, &p.Specifications},
		{rawSafety, &p.SafetyFeatures},
		{rawCerts, &p.Certifications},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.out); err != nil {
			return Product{}, err
		}
	}

	return p, nil
}

func (r *PostgresRepository) Upsert(p Product) (Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return Product{}, err
	}
	features, err := json.Marshal(p.Features)
	if err != nil {
		return Product{}, err
	}
	specs, err := json.Marshal(p.Specifications)
	if err != nil {
		return Product{}, err
	}
	safety, err := json.Marshal(p.SafetyFeatures)
	if err != nil {
		return Product{}, err
	}
	certs, err := json.Marshal(p.Certifications)
	if err != nil {
		return Product{}, err
	}

	var originalPrice any
	if p.OriginalPrice != nil {
		originalPrice = *p.OriginalPrice
	}

	err = r.db.QueryRow(
		upsertProductQuery,
		p.Name, p.Slug, p.Tagline, p.Description, p.Price, originalPrice, p.Currency,
		p.Badge, p.InStock, string(images), string(features), string(specs),
		string(safety), string(certs),
	).Scan(&p.ID)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}
