// Package database is the durable offer archive: one row per discovered
// offer, queryable by the export/API surface. The in-memory store stays the
// canonical collection; the archive mirrors it for filtered reads across
// restarts.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"aqarscan/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS offers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id TEXT NOT NULL UNIQUE,
	offer_type TEXT NOT NULL,
	property_type TEXT NOT NULL,
	location TEXT NOT NULL,
	area TEXT NOT NULL,
	price TEXT NOT NULL,
	rooms TEXT NOT NULL,
	bathrooms TEXT NOT NULL,
	phone TEXT NOT NULL,
	group_name TEXT NOT NULL,
	sender TEXT NOT NULL,
	posted_at TEXT NOT NULL,
	full_text TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_offers_offer_type ON offers(offer_type);
CREATE INDEX IF NOT EXISTS idx_offers_property_type ON offers(property_type);
`

type Database struct {
	db        *sql.DB
	encryptor *encryptor
}

// OfferFilter narrows archive queries. Zero values mean "no constraint".
// Prices are compared numerically and rows with the Unknown price sentinel
// never match a price bound.
type OfferFilter struct {
	OfferType    string
	PropertyType string
	Location     string
	MinPrice     *int64
	MaxPrice     *int64
	Limit        int
}

func New(dbPath string) (*Database, error) {
	if len(dbPath) == 0 || dbPath[0] == '\x00' {
		return nil, fmt.Errorf("invalid database path")
	}
	if strings.Contains(dbPath, "..") {
		return nil, fmt.Errorf("invalid database path: %s", dbPath)
	}

	file, err := os.OpenFile(dbPath, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create database file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close database file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to ping database: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize schema: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	encryptor, err := newEncryptor()
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			return nil, fmt.Errorf("failed to initialize encryptor: %w (close error: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to initialize encryptor: %w", err)
	}

	return &Database{db: db, encryptor: encryptor}, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

// SaveOffer inserts an offer row. Re-inserting the same message id is a
// no-op, mirroring the store's dedup semantics.
func (d *Database) SaveOffer(ctx context.Context, offer *models.Offer) error {
	encryptedPhone, err := d.encryptor.EncryptForLookupIfEnabled(offer.Phone)
	if err != nil {
		return fmt.Errorf("failed to encrypt phone: %w", err)
	}

	query := `
		INSERT OR IGNORE INTO offers (
			message_id, offer_type, property_type, location, area, price,
			rooms, bathrooms, phone, group_name, sender, posted_at, full_text
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = d.db.ExecContext(ctx, query,
		offer.MessageID,
		string(offer.OfferType),
		string(offer.PropertyType),
		offer.Location,
		offer.Area,
		offer.Price,
		offer.Rooms,
		offer.Bathrooms,
		encryptedPhone,
		offer.GroupName,
		offer.Sender,
		offer.Timestamp,
		offer.FullText,
	)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}

	return nil
}

// QueryOffers returns archived offers matching the filter, oldest first.
func (d *Database) QueryOffers(ctx context.Context, filter OfferFilter) ([]models.Offer, error) {
	query := `
		SELECT message_id, offer_type, property_type, location, area, price,
			   rooms, bathrooms, phone, group_name, sender, posted_at, full_text
		FROM offers
	`

	var conditions []string
	var args []interface{}

	if filter.OfferType != "" {
		conditions = append(conditions, "offer_type = ?")
		args = append(args, filter.OfferType)
	}
	if filter.PropertyType != "" {
		conditions = append(conditions, "property_type = ?")
		args = append(args, filter.PropertyType)
	}
	if filter.Location != "" {
		conditions = append(conditions, "location LIKE ?")
		args = append(args, "%"+filter.Location+"%")
	}
	if filter.MinPrice != nil {
		conditions = append(conditions, "price != ? AND CAST(price AS INTEGER) >= ?")
		args = append(args, models.ValueUnknown, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conditions = append(conditions, "price != ? AND CAST(price AS INTEGER) <= ?")
		args = append(args, models.ValueUnknown, *filter.MaxPrice)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var o models.Offer
		var offerType, propertyType, phone string
		if err := rows.Scan(
			&o.MessageID, &offerType, &propertyType, &o.Location, &o.Area,
			&o.Price, &o.Rooms, &o.Bathrooms, &phone, &o.GroupName,
			&o.Sender, &o.Timestamp, &o.FullText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		o.OfferType = models.OfferType(offerType)
		o.PropertyType = models.PropertyType(propertyType)

		decryptedPhone, err := d.encryptor.DecryptIfEnabled(phone)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt phone: %w", err)
		}
		o.Phone = decryptedPhone

		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate offers: %w", err)
	}

	return offers, nil
}

// CountOffers returns the number of archived offers.
func (d *Database) CountOffers(ctx context.Context) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM offers").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count offers: %w", err)
	}
	return count, nil
}
