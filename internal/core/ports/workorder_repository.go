package ports

import (
	"context"

	"depot/internal/core/domain/model/workorder"
)

// WorkOrderRepository stores work orders by work order number.
type WorkOrderRepository interface {
	Exists(ctx context.Context, number string) (bool, error)
	Get(ctx context.Context, number string) (*workorder.WorkOrder, error)
	Add(ctx context.Context, aggregate *workorder.WorkOrder) error
	Update(ctx context.Context, aggregate *workorder.WorkOrder) error
}
