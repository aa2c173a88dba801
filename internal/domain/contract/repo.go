package contract

import (
	"context"
	"time"

	"github.com/diegoclair/reminder-bot/internal/domain/entity"
)

//go:generate mockgen -source=repo.go -destination=../../../mocks/repo_mock.go -package=mocks

// DataManager aggregates all repository interfaces
type DataManager interface {
	WithTransaction(ctx context.Context, fn func(dm DataManager) error) error
	Delivery() DeliveryRepo
}

// DeliveryRepo defines the contract for the delivery journal
type DeliveryRepo interface {
	Create(ctx context.Context, delivery *entity.Delivery) error
	ListSince(ctx context.Context, since time.Time) ([]*entity.Delivery, error)
	LastByReminder(ctx context.Context, reminderIndex int) (*entity.Delivery, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
