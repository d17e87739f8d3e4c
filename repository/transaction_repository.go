package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Jayden7895/afyabora-app/models"
)

// TransactionRepository stores mobile-money payment transactions. Only the
// status column is ever updated, and only through the compare-and-set
// Transition, so a transaction makes exactly one terminal move out of
// PENDING no matter how many writers race.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	FindByID(ctx context.Context, checkoutRequestID string) (*models.Transaction, error)
	Transition(ctx context.Context, checkoutRequestID string, from, to models.TransactionStatus) error
}

type GormTransactionRepository struct {
	db *gorm.DB
}

func NewGormTransactionRepository(db *gorm.DB) TransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *GormTransactionRepository) FindByID(ctx context.Context, checkoutRequestID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).
		Where("checkout_request_id = ?", checkoutRequestID).
		First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *GormTransactionRepository) Transition(ctx context.Context, checkoutRequestID string, from, to models.TransactionStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("checkout_request_id = ? AND status = ?", checkoutRequestID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}
