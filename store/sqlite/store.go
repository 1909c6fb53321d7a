// Package sqlite persists the ledger in a SQLite database via gorm.
// The snapshot maps to four tables; Save replaces all of them inside one
// transaction so the persisted state is always a complete snapshot.
package sqlite

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brewbooks/ledger/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store implements store.Store on a SQLite file.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and migrates the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// New wraps an existing gorm database. The caller is responsible for
// running Migrate.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm database for direct access.
func (s *Store) DB() *gorm.DB { return s.db }

// Migrate creates the four snapshot tables.
func (s *Store) Migrate(ctx context.Context) error {
	err := s.db.WithContext(ctx).AutoMigrate(
		&customerRow{}, &itemRow{}, &invoiceRow{}, &paymentRow{},
	)
	if err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// Load reads all four tables into a snapshot. An untouched database
// yields (nil, nil): no snapshot has been saved yet.
func (s *Store) Load(ctx context.Context) (*store.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var custRows []customerRow
	if err := db.Find(&custRows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: load customers: %w", err)
	}
	var itemRows []itemRow
	if err := db.Find(&itemRows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: load inventory: %w", err)
	}
	var invRows []invoiceRow
	if err := db.Find(&invRows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: load invoices: %w", err)
	}
	var payRows []paymentRow
	if err := db.Find(&payRows).Error; err != nil {
		return nil, fmt.Errorf("sqlite: load payments: %w", err)
	}

	if len(custRows) == 0 && len(itemRows) == 0 && len(invRows) == 0 && len(payRows) == 0 {
		return nil, nil
	}

	snap := store.Empty()
	for _, r := range custRows {
		c, err := fromCustomerRow(r)
		if err != nil {
			return nil, err
		}
		snap.Customers = append(snap.Customers, c)
	}
	for _, r := range itemRows {
		it, err := fromItemRow(r)
		if err != nil {
			return nil, err
		}
		snap.Inventory = append(snap.Inventory, it)
	}
	for _, r := range invRows {
		inv, err := fromInvoiceRow(r)
		if err != nil {
			return nil, err
		}
		snap.Invoices = append(snap.Invoices, inv)
	}
	for _, r := range payRows {
		p, err := fromPaymentRow(r)
		if err != nil {
			return nil, err
		}
		snap.Payments = append(snap.Payments, p)
	}
	return snap, nil
}

// Save replaces the persisted snapshot. All four tables are cleared and
// rewritten in one transaction; a failure rolls everything back.
func (s *Store) Save(ctx context.Context, snap *store.Snapshot) error {
	custRows := make([]customerRow, 0, len(snap.Customers))
	for _, c := range snap.Customers {
		custRows = append(custRows, toCustomerRow(c))
	}
	itemRows := make([]itemRow, 0, len(snap.Inventory))
	for _, it := range snap.Inventory {
		itemRows = append(itemRows, toItemRow(it))
	}
	invRows := make([]invoiceRow, 0, len(snap.Invoices))
	for _, inv := range snap.Invoices {
		r, err := toInvoiceRow(inv)
		if err != nil {
			return err
		}
		invRows = append(invRows, r)
	}
	payRows := make([]paymentRow, 0, len(snap.Payments))
	for _, p := range snap.Payments {
		payRows = append(payRows, toPaymentRow(p))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&paymentRow{}, &invoiceRow{}, &itemRow{}, &customerRow{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(custRows) > 0 {
			if err := tx.Create(&custRows).Error; err != nil {
				return err
			}
		}
		if len(itemRows) > 0 {
			if err := tx.Create(&itemRows).Error; err != nil {
				return err
			}
		}
		if len(invRows) > 0 {
			if err := tx.Create(&invRows).Error; err != nil {
				return err
			}
		}
		if len(payRows) > 0 {
			if err := tx.Create(&payRows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sqlite: save snapshot: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("sqlite: close: %w", err)
	}
	return sqlDB.Close()
}
