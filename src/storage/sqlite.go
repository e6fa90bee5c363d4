package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"price-tracker/src/logger"
	"price-tracker/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*SQLiteDB, error) {
	return &SQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) createTables() error {
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY,
			model TEXT NOT NULL,
			brand TEXT,
			storage TEXT,
			color TEXT,
			supplier TEXT,
			current_price REAL,
			last_updated INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create products: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS price_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			model TEXT NOT NULL,
			supplier TEXT,
			new_price REAL,
			created_at INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create price_events: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

// FindMatches returns every catalog record satisfying the query's criteria.
func (d *SQLiteDB) FindMatches(ctx context.Context, q *models.MQuery) ([]models.MProduct, error) {
	where, args := buildMatchFilters(q, false)

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
func (d *SQLiteDB) FindPriceEvents(ctx context.Context, model, supplier string, limit int) ([]models.MPriceEvent, error) {
	query := `
		SELECT model, supplier, new_price, created_at
		FROM price_events
		WHERE LOWER(model) LIKE '%' || ? || '%'
		  AND LOWER(supplier) LIKE '%' || ? || '%'
		ORDER BY created_at ASC
		LIMIT ?
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

func (d *SQLiteDB) InsertProduct(ctx context.Context, p *models.MProduct) error {
	query := `
		INSERT INTO products (id, model, brand, storage, color, supplier, current_price, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			model = excluded.model,
			brand = excluded.brand,
			storage = excluded.storage,
			color = excluded.color,
			supplier = excluded.supplier,
			current_price = excluded.current_price,
			last_updated = excluded.last_updated
	`
	_, err := d.DB.ExecContext(ctx, query,
		p.ID, p.Model, p.Brand, p.Storage, p.Color, p.Supplier, p.CurrentPrice, p.LastUpdated.Unix())
	return err
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) InsertPriceEvent(ctx context.Context, ev *models.MPriceEvent) error {
	query := `
		INSERT INTO price_events (model, supplier, new_price, created_at)
		VALUES (?, ?, ?, ?)
	`
	_, err := d.DB.ExecContext(ctx, query, ev.Model, ev.Supplier, ev.NewPrice, ev.CreatedAt.Unix())
	return err
}

// -----------------------------------------------------------------------------

func (d *SQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
