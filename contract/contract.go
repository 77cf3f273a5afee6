package contract

import "finbook/model"

type UserRepo interface {
	Create(user *model.User) (*model.User, error)
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
}

type CategoryRepo interface {
	Resolve(kind model.Kind, name string) (int, error)
	Find(kind model.Kind) ([]model.Category, error)
}

type TransactionRepo interface {
	Record(t *model.Transaction) (int64, error)
	HistoryByUser(userID int) ([]model.HistoryEntry, error)
}
