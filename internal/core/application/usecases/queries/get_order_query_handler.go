package queries

import (
	"context"
	"database/sql"
	"errors"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order with its lines from the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get order: %v", err)
//	    return err
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when no order
// with the given identifier exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			owner_id,
			total_amount,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	resp, err := scanOrderRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderResponse{}, err
	}

	resp.Lines, err = fetchOrderLines(ctx, h.db, query.OrderID())
	if err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrderRow maps one orders row onto an OrderResponse (without lines).
func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var (
		id          uuid.UUID
		ownerID     uuid.UUID
		totalAmount decimal.Decimal
		status      int
		resp        OrderResponse
	)

	if err := row.Scan(&id, &ownerID, &totalAmount, &status, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
		return OrderResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.ID = orderID

	owner, err := kernel.UUIDFromBytes(ownerID[:])
	if err != nil {
		return OrderResponse{}, err
	}
	resp.OwnerID = owner

	total, err := kernel.NewMoney(totalAmount)
	if err != nil {
		return OrderResponse{}, err
	}
	resp.TotalAmount = total

	resp.Status = order.Status(status)
	if err = resp.Status.Validate(); err != nil {
		return OrderResponse{}, err
	}

	return resp, nil
}

// fetchOrderLines loads the embedded lines of one order in their original sequence.
func fetchOrderLines(ctx context.Context, db *gorm.DB, orderID kernel.UUID) ([]OrderLineResponse, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			product_name,
			unit_price,
			quantity,
			line_total
		FROM order_lines
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineResponse, 0)
	for rows.Next() {
		var (
			productID uuid.UUID
			unitPrice decimal.Decimal
			lineTotal decimal.Decimal
			line      OrderLineResponse
		)

		if err = rows.Scan(&productID, &line.ProductName, &unitPrice, &line.Quantity, &lineTotal); err != nil {
			return nil, err
		}

		line.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return nil, err
		}

		line.UnitPrice, err = kernel.NewMoney(unitPrice)
		if err != nil {
			return nil, err
		}

		line.LineTotal, err = kernel.NewMoney(lineTotal)
		if err != nil {
			return nil, err
		}

		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}
