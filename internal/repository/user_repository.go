package repository

import (
	"context"
	"movie_review/model"

	"gorm.io/gorm"
)

type IUserRepository interface {
	UsersTable(ctx context.Context) string
	HasRoleColumn(ctx context.Context, table string) bool
	GetUserIdByUsername(ctx context.Context, table string, username string) (int64, bool, error)
	UpdatePasswordHash(ctx context.Context, table string, id int64, hash string) error
	InsertUser(ctx context.Context, table string, user *model.User, withRole bool) (int64, error)
	DeleteUser(ctx context.Context, table string, username string) (int64, error)
	ListUsers(ctx context.Context, table string, limit int) ([]model.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

//------------------------------------------
//------------------------------------------

// UsersTable picks "users", falling back to "user" on setups that only have
// the singular table.
func (r *UserRepository) UsersTable(ctx context.Context) string {
	migrator := r.db.WithContext(ctx).Migrator()
	if !migrator.HasTable("users") && migrator.HasTable("user") {
		return "user"
	}
	return "users"
}

func (r *UserRepository) HasRoleColumn(ctx context.Context, table string) bool {
	return r.db.WithContext(ctx).Migrator().HasColumn(table, "role")
}

func (r *UserRepository) GetUserIdByUsername(ctx context.Context, table string, username string) (int64, bool, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where("username = ?", username).
		Limit(1).
		Pluck("id", &ids).
		Error
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, table string, id int64, hash string) error {
	return r.db.WithContext(ctx).
		Table(table).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).
		Error
}

func (r *UserRepository) InsertUser(ctx context.Context, table string, user *model.User, withRole bool) (int64, error) {
	omit := []string{"created_at"}
	if !withRole {
		omit = append(omit, "role")
	}

	err := r.db.WithContext(ctx).
		Table(table).
		Omit(omit...).
		Create(user).
		Error
	if err != nil {
		return 0, err
	}
	return user.Id, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, table string, username string) (int64, error) {
	res := r.db.WithContext(ctx).
		Table(table).
		Where("username = ?", username).
		Delete(&model.User{})
	return res.RowsAffected, res.Error
}

func (r *UserRepository) ListUsers(ctx context.Context, table string, limit int) ([]model.User, error) {
	result := make([]model.User, 0)
	err := r.db.WithContext(ctx).
		Table(table).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).
		Error
	return result, err
}
