package repository

import (
	"buildcost/internal/app/ds"
	"context"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(ctx context.Context, id uint) (*ds.User, error) {
	var user ds.User
	err := r.conn(ctx).First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// CreateUser используется сидами и интеграционными тестами
func (r *Repository) CreateUser(ctx context.Context, user *ds.User) error {
	return r.conn(ctx).Create(user).Error
}
