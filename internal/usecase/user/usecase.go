package user

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "user-crud-console/internal/domain/user"
	apperrors "user-crud-console/pkg/errors"
	"user-crud-console/pkg/logger"
)

// Repository defines the data access operations behind the menu.
// Write methods return the number of affected rows.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)              // Insert a user, setting u.ID
	List(ctx context.Context) iter.Seq2[domain.User, error]                 // Stream all users
	UpdateEmail(ctx context.Context, id int64, email string) (int64, error) // Replace the email of one user
	Delete(ctx context.Context, id int64) (int64, error)                    // Delete one user
}

// Usecase implements the four menu operations on top of a Repository.
type Usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

func outcomeOf(rows int64, missing Outcome) Outcome {
	if rows > 0 {
		return OutcomeSucceeded
	}
	return missing
}

// CreateUser inserts a new user. The database assigns the ID.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("creating user", zap.String("name", in.Name), zap.String("email", in.Email), zap.String("country", in.Country))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u := &domain.User{
		Name:    in.Name,
		Email:   in.Email,
		Country: in.Country,
	}
	rows, err := uc.repo.Create(ctx, u)
	if err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to create user", err)
	}

	return &CreateUserResponse{ID: u.ID, Outcome: outcomeOf(rows, OutcomeNoChange)}, nil
}

// ListUsers streams every user. Each call re-issues the query; iteration
// stops after the first error.
func (uc *Usecase) ListUsers(ctx context.Context) iter.Seq2[User, error] {
	return func(yield func(User, error) bool) {
		logger.WithContext(ctx, uc.log).Info("listing users")

		for du, err := range uc.repo.List(ctx) {
			if err != nil {
				logger.WithContext(ctx, uc.log).Error("failed to list users", zap.Error(err))
				yield(User{}, apperrors.NewInternalError("failed to list users", err))
				return
			}
			if !yield(User{ID: du.ID, Name: du.Name, Email: du.Email, Country: du.Country}, nil) {
				return
			}
		}
	}
}

// UpdateUserEmail replaces the email of an existing user. Name and country
// cannot be changed.
func (uc *Usecase) UpdateUserEmail(ctx context.Context, in UpdateUserEmailRequest) (*UpdateUserEmailResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("updating user email", zap.Int64("id", in.ID), zap.String("email", in.Email))

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	rows, err := uc.repo.UpdateEmail(ctx, in.ID, in.Email)
	if err != nil {
		log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to update user", err)
	}

	outcome := outcomeOf(rows, OutcomeNotFound)
	if outcome == OutcomeNotFound {
		log.Warn("user not found", zap.Int64("id", in.ID))
	}

	return &UpdateUserEmailResponse{ID: in.ID, Outcome: outcome}, nil
}

// DeleteUser removes a user by ID.
func (uc *Usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)
	log.Info("deleting user", zap.Int64("id", in.ID))

	rows, err := uc.repo.Delete(ctx, in.ID)
	if err != nil {
		log.Error("failed to delete user", zap.Int64("id", in.ID), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to delete user", err)
	}

	outcome := outcomeOf(rows, OutcomeNotFound)
	if outcome == OutcomeNotFound {
		log.Warn("user not found", zap.Int64("id", in.ID))
	}

	return &DeleteUserResponse{ID: in.ID, Outcome: outcome}, nil
}
