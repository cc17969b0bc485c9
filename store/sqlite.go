package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"vuadocau-analyzer/internal/types"
)

const createProductsTable = `CREATE TABLE IF NOT EXISTS products (
	product_url       TEXT PRIMARY KEY,
	name              TEXT,
	size_raw          TEXT,
	price_raw         TEXT,
	color_group       TEXT,
	rating_score      REAL,
	review_count      INTEGER,
	sold_count        INTEGER,
	first_comment     TEXT,
	short_description TEXT,
	image_url         TEXT,
	product_type      TEXT
)`

// SaveSQLite replaces the products table at path with the given
// records. Absent numeric fields become NULL columns.
func SaveSQLite(path string, records []types.ProductRecord) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(`DROP TABLE IF EXISTS products`); err != nil {
		return fmt.Errorf("failed to reset products table: %w", err)
	}
	if _, err := db.Exec(createProductsTable); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO products (
		product_url, name, size_raw, price_raw, color_group,
		rating_score, review_count, sold_count,
		first_comment, short_description, image_url, product_type
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.Exec(
			rec.ProductURL, rec.Name, rec.SizeRaw, rec.PriceRaw, rec.ColorGroup,
			nullFloat(rec.RatingScore), nullInt(rec.ReviewCount), nullInt(rec.SoldCount),
			rec.FirstComment, rec.ShortDesc, rec.ImageURL, string(rec.ProductType),
		)
		if err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.ProductURL, err)
		}
	}

	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_products_type ON products(product_type)`); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return tx.Commit()
}

func nullFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}
