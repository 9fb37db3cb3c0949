package main

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/safeheat/shop-backend/internal/checkout"
	"github.com/safeheat/shop-backend/internal/config"
	"github.com/safeheat/shop-backend/internal/customer"
	"github.com/safeheat/shop-backend/internal/email"
	"github.com/safeheat/shop-backend/internal/events"
	"github.com/safeheat/shop-backend/internal/middleware"
	"github.com/safeheat/shop-backend/internal/order"
	"github.com/safeheat/shop-backend/internal/product"
	"github.com/safeheat/shop-backend/internal/webhook"
)

func main() {
	cfg := config.Load()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		log.Fatalf("schema setup failed: %v", err)
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(middleware.Prometheus())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// product catalog behind the per-instance TTL cache
	productService := product.NewService(product.NewPostgresRepository(db), cfg.ProductCacheTTL)
	if err := productService.EnsureSeeded(product.DefaultSeed); err != nil {
		log.Printf("warning: product seed failed: %v", err)
	}
	productHandler := product.NewHandler(productService)
	productHandler.RegisterPublicRoutes(app)

	// checkout session initiation against Stripe
	checkoutService := checkout.NewService(checkout.NewStripeClient(cfg.StripeSecretKey), cfg.AppBaseURL)
	checkout.NewHandler(checkoutService).RegisterPublicRoutes(app)

	// order lookup + reconciliation pipeline
	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo)
	orderHandler := order.NewHandler(orderService)
	orderHandler.RegisterPublicRoutes(app)

	var mailer email.Mailer
	if cfg.ResendAPIKey != "" {
		mailer = email.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		log.Printf("RESEND_API_KEY not set, confirmation emails disabled")
	}

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		rmq, err := events.NewRabbitMQ(cfg.AMQPURL, cfg.OrderExchange)
		if err != nil {
			// Events are best-effort; the store must keep taking orders
			// when the broker is down.
			log.Printf("warning: RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer rmq.Close()
			publisher = rmq
		}
	}

	reconciler := order.NewReconciler(orderRepo, customer.NewPostgresRepository(db), mailer, publisher, cfg.AppBaseURL)
	webhook.NewHandler(cfg.StripeWebhookSecret, reconciler, webhook.NewPostgresFailureStore(db)).RegisterPublicRoutes(app)

	// ops-only routes behind JWT
	app.Use(jwtware.New(jwtware.Config{SigningKey: []byte(cfg.JWTSecret)}))
	orderHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
	}))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("could not reach database: %v", err)
	}
	return db
}

// ensureSchema creates the tables on startup. The UNIQUE constraint on
// orders.checkout_session_id is what makes webhook replays idempotent, so it
// lives in the schema rather than in application logic.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT,
			phone TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			checkout_session_id TEXT PRIMARY KEY,
			customer_email TEXT NOT NULL,
			customer_name TEXT,
			customer_phone TEXT,
			billing_address_line1 TEXT,
			billing_address_line2 TEXT,
			billing_address_city TEXT,
			billing_address_state TEXT,
			billing_address_postal_code TEXT,
			billing_address_country TEXT,
			total_amount BIGINT NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'USD',
			cart_items JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'PENDING',
			shipped_at TIMESTAMPTZ,
			tracking_number TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			tagline TEXT,
			description TEXT,
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			original_price DOUBLE PRECISION,
			currency TEXT NOT NULL DEFAULT 'USD',
			badge TEXT,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			images JSONB NOT NULL DEFAULT '[]',
			features JSONB NOT NULL DEFAULT '[]',
			specifications JSONB NOT NULL DEFAULT '[]',
			safety_features JSONB NOT NULL DEFAULT '[]',
			certifications JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS webhook_failures (
			failure_id UUID PRIMARY KEY,
			session_id TEXT,
			event_type TEXT,
			payload TEXT,
			error TEXT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
