package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-crud-console/internal/domain/user"
	"user-crud-console/pkg/logger"
)

// UserRepo implements the user Repository on top of GORM. The same
// statements run against MySQL, PostgreSQL and SQLite.
type UserRepo struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepo creates a new instance of UserRepo.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{db: db, log: log}
}

// UserSchema maps the pre-existing users table.
type UserSchema struct {
	ID      int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name    string `gorm:"column:name"`
	Email   string `gorm:"column:email"`
	Country string `gorm:"column:country"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func (m UserSchema) toDomain() user.User {
	return user.User{
		ID:      m.ID,
		Name:    m.Name,
		Email:   m.Email,
		Country: m.Country,
	}
}

// Create inserts a new user and stores the database-assigned ID in u.ID.
// It returns the number of rows inserted.
func (r *UserRepo) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		Name:    u.Name,
		Email:   u.Email,
		Country: u.Country,
	}

	res := r.db.WithContext(ctx).Create(&model)
	if res.Error != nil {
		r.logger(ctx).Error("failed to create user in db", zap.Error(res.Error), zap.String("email", u.Email))
		return 0, fmt.Errorf("failed to create user: %w", res.Error)
	}

	u.ID = model.ID
	r.logger(ctx).Info("user created in db", zap.Int64("id", model.ID), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// List streams every row of the table ordered by ID. Each call issues a
// fresh query; the result set is closed when iteration ends for any reason.
func (r *UserRepo) List(ctx context.Context) iter.Seq2[user.User, error] {
	return func(yield func(user.User, error) bool) {
		tx := r.db.WithContext(ctx)
		rows, err := tx.Model(&UserSchema{}).Order("id").Rows()
		if err != nil {
			r.logger(ctx).Error("failed to list users from db", zap.Error(err))
			yield(user.User{}, fmt.Errorf("failed to list users: %w", err))
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var model UserSchema
			if err := tx.ScanRows(rows, &model); err != nil {
				r.logger(ctx).Error("failed to scan user row", zap.Error(err))
				yield(user.User{}, fmt.Errorf("failed to scan user: %w", err))
				return
			}
			count++
			if !yield(model.toDomain(), nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			r.logger(ctx).Error("failed to iterate users", zap.Error(err))
			yield(user.User{}, fmt.Errorf("failed to list users: %w", err))
			return
		}

		r.logger(ctx).Debug("users listed from db", zap.Int("count", count))
	}
}

// UpdateEmail sets the email of the user with the given ID and returns the
// number of matched rows. Zero means no such user.
func (r *UserRepo) UpdateEmail(ctx context.Context, id int64, email string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", id).Update("email", email)
	if res.Error != nil {
		r.logger(ctx).Error("failed to update user in db", zap.Error(res.Error), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to update user: %w", res.Error)
	}

	r.logger(ctx).Info("user email updated in db", zap.Int64("id", id), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

// Delete removes the user with the given ID and returns the number of rows
// removed. Zero means no such user.
func (r *UserRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&UserSchema{})
	if res.Error != nil {
		r.logger(ctx).Error("failed to delete user in db", zap.Error(res.Error), zap.Int64("id", id))
		return 0, fmt.Errorf("failed to delete user: %w", res.Error)
	}

	r.logger(ctx).Info("user deleted in db", zap.Int64("id", id), zap.Int64("rows", res.RowsAffected))
	return res.RowsAffected, nil
}

func (r *UserRepo) logger(ctx context.Context) *zap.Logger {
	return logger.WithContext(ctx, r.log)
}
