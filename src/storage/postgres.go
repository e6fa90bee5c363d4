package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"price-tracker/src/logger"
	"price-tracker/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	return &PostgresDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully")
	return nil
}

// -----------------------------------------------------------------------------

// createTables creates the catalog and event-log tables when missing. The
// ingestion pipeline owns the real schema; this only covers dev/seed setups,
// so no DROP and no destructive migration.
func (d *PostgresDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS products (
			id BIGINT PRIMARY KEY,
			model TEXT NOT NULL,
			brand TEXT,
			storage TEXT,
			color TEXT,
			supplier TEXT,
			current_price DOUBLE PRECISION,
			last_updated BIGINT
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create products: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS price_events (
			id BIGSERIAL PRIMARY KEY,
			model TEXT NOT NULL,
			supplier TEXT,
			new_price DOUBLE PRECISION,
			created_at BIGINT
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_events: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

// FindMatches returns every catalog record satisfying the query's criteria.
func (d *PostgresDB) FindMatches(ctx context.Context, q *models.MQuery) ([]models.MProduct, error) {
	where, args := buildMatchFilters(q, true)

	query := fmt.Sprintf(`
		SELECT id, model, brand, storage, color, supplier, current_price, last_updated
		FROM products
		WHERE %s
		ORDER BY last_updated DESC
	`, where)

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.MProduct
	for rows.Next() {
		var p models.MProduct
		var updated int64
		if err := rows.Scan(&p.ID, &p.Model, &p.Brand, &p.Storage, &p.Color, &p.Supplier, &p.CurrentPrice, &updated); err != nil {
			return nil, err
		}
		p.LastUpdated = time.Unix(updated, 0).UTC()
		records = append(records, p)
	}

	return records, rows.Err()
}

// -----------------------------------------------------------------------------

// FindPriceEvents returns events for a model+supplier pair, oldest first.
func (d *PostgresDB) FindPriceEvents(ctx context.Context, model, supplier string, limit int) ([]models.MPriceEvent, error) {
	query := `
		SELECT model, supplier, new_price, created_at
		FROM price_events
		WHERE LOWER(model) LIKE '%' || $1 || '%'
		  AND LOWER(supplier) LIKE '%' || $2 || '%'
		ORDER BY created_at ASC
		LIMIT $3
	`

	rows, err := d.DB.QueryContext(ctx, query, lower(model), lower(supplier), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.MPriceEvent
	for rows.Next() {
		var ev models.MPriceEvent
		var created int64
		if err := rows.Scan(&ev.Model, &ev.Supplier, &ev.NewPrice, &created); err != nil {
			return nil, err
		}
		ev.CreatedAt = time.Unix(created, 0).UTC()
		events = append(events, ev)
	}

	return events, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) InsertProduct(ctx context.Context, p *models.MProduct) error {
	query := `
		INSERT INTO products (id, model, brand, storage, color, supplier, current_price, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			model = EXCLUDED.model,
			brand = EXCLUDED.brand,
			storage = EXCLUDED.storage,
			color = EXCLUDED.color,
			supplier = EXCLUDED.supplier,
			current_price = EXCLUDED.current_price,
			last_updated = EXCLUDED.last_updated
	`
	_, err := d.DB.ExecContext(ctx, query,
		p.ID, p.Model, p.Brand, p.Storage, p.Color, p.Supplier, p.CurrentPrice, p.LastUpdated.Unix())
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) InsertPriceEvent(ctx context.Context, ev *models.MPriceEvent) error {
	query := `
		INSERT INTO price_events (model, supplier, new_price, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := d.DB.ExecContext(ctx, query, ev.Model, ev.Supplier, ev.NewPrice, ev.CreatedAt.Unix())
	return err
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
