package repository

import (
	"context"

	"github.com/tettoewai/restaurant-pos-sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	FindTableByQRToken(ctx context.Context, token string) (*model.DiningTable, error)
	FindTableByID(ctx context.Context, id uuid.UUID) (*model.DiningTable, error)
	FindLocationByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
}

type userRepo struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ? AND active = true", email).First(&u).Error
	return &u, err
}

func (r *userRepo) List(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]model.User, error) {
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID)
	if !includeInactive {
		q = q.Where("active = true")
	}
	var users []model.User
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, u *model.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *userRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("active", false).Error
}

func (r *userRepo) FindTableByQRToken(ctx context.Context, token string) (*model.DiningTable, error) {
	var t model.DiningTable
	err := r.db.WithContext(ctx).Where("qr_token = ?", token).First(&t).Error
	return &t, err
}

func (r *userRepo) FindTableByID(ctx context.Context, id uuid.UUID) (*model.DiningTable, error) {
	var t model.DiningTable
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *userRepo) FindLocationByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}
