package user

import (
	"context"
	"iter"
)

// Service defines the user operations offered by the menu.
type Service interface {
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	ListUsers(ctx context.Context) iter.Seq2[User, error]
	UpdateUserEmail(ctx context.Context, in UpdateUserEmailRequest) (*UpdateUserEmailResponse, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error)
}

var _ Service = (*Usecase)(nil)
