package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"
	_ "github.com/lib/pq"

	"github.com/sevasanjeevani/store/internal/domain"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(cred *Credentials) (*Repository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if e2 := db.Ping(); e2 != nil {
		return nil, fmt.Errorf("failed to ping database: %w", e2)
	}

	db.SetMaxOpenConns(100)
	db.SetMaxIdleConns(10)
	log.Println("Connected to postgres!")
	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{
		MigrationsTable: "orders_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if e2 := m.Up(); e2 != nil && !errors.Is(e2, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", e2)
	}

	return nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (
	              id, user_id, address_id, payment_method, status, items,
	              subtotal, discount_amount, tax_amount, shipping_cost, total_amount,
	              created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())`

	_, insertErr := r.db.ExecContext(ctx, query,
		order.ID,
		order.UserID,
		order.AddressID,
		order.PaymentMethod,
		order.Status,
		itemsJSON,
		order.Subtotal,
		order.DiscountAmount,
		order.TaxAmount,
		order.ShippingCost,
		order.TotalAmount)

	if insertErr != nil {
		var pqErr *pq.Error
		if errors.As(insertErr, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

const orderColumns = `id, user_id, address_id, payment_method, status, items,
	subtotal, discount_amount, tax_amount, shipping_cost, total_amount,
	tracking_number, cancel_reason, return_reason,
	created_at, updated_at, paid_at, dispatched_at, delivered_at, cancelled_at, return_requested_at`

func (r *Repository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}
	return order, nil
}

func (r *Repository) ListOrdersByUserID(ctx context.Context, userID string) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query orders by user: %w", err)
	}
	defer rows.Close()

	var result []*domain.Order
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("scan order row: %w", scanErr)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return result, nil
}

// UpdateOrderStatus writes the status and every transition-owned field.
// Snapshotted items and totals are immutable after creation and are
// deliberately not part of this statement.
func (r *Repository) UpdateOrderStatus(ctx context.Context, order *domain.Order) error {
	query := `UPDATE orders SET
	              status = $2,
	              tracking_number = $3,
	              cancel_reason = $4,
	              return_reason = $5,
	              updated_at = NOW(),
	              paid_at = $6,
	              dispatched_at = $7,
	              delivered_at = $8,
	              cancelled_at = $9,
	              return_requested_at = $10
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query,
		order.ID,
		order.Status,
		nullString(order.TrackingNumber),
		nullString(order.CancelReason),
		nullString(order.ReturnReason),
		order.PaidAt,
		order.DispatchedAt,
		order.DeliveredAt,
		order.CancelledAt,
		order.ReturnRequestedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status rows affected: %w", err)
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var itemsJSON []byte
	var trackingNumber, cancelReason, returnReason sql.NullString

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.AddressID,
		&order.PaymentMethod,
		&order.Status,
		&itemsJSON,
		&order.Subtotal,
		&order.DiscountAmount,
		&order.TaxAmount,
		&order.ShippingCost,
		&order.TotalAmount,
		&trackingNumber,
		&cancelReason,
		&returnReason,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.PaidAt,
		&order.DispatchedAt,
		&order.DeliveredAt,
		&order.CancelledAt,
		&order.ReturnRequestedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	order.TrackingNumber = trackingNumber.String
	order.CancelReason = cancelReason.String
	order.ReturnReason = returnReason.String
	return &order, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
