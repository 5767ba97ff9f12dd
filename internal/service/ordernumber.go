package service

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/karsis/b2b-eshop/internal/repo"
)

// nextOrderNumber derives the sequential order number from the total order
// count observed through the active transaction, labelled with the current
// year, e.g. ORD-2025-00042.
//
// The count is read inside the same transaction that inserts the order,
// which bounds but does not eliminate the race window: two concurrent
// submissions can still compute the same sequence at common isolation
// levels. The unique index on order_number turns a lost race into a
// rolled-back insert instead of a duplicate number.
func nextOrderNumber(r *repo.GormRepo, tx *gorm.DB, now time.Time) (string, error) {
	count, err := r.CountOrders(tx)
	if err != nil {
		return "", fmt.Errorf("count orders: %w", err)
	}
	return fmt.Sprintf("ORD-%d-%05d", now.Year(), count+1), nil
}
