package console

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"user-crud-console/internal/usecase/user"
	apperrors "user-crud-console/pkg/errors"
	"user-crud-console/pkg/logger"
)

// Menu choices
const (
	ChoiceCreate = 1
	ChoiceList   = 2
	ChoiceUpdate = 3
	ChoiceDelete = 4
	ChoiceExit   = 5
)

const menu = `
Choose an operation:
1. Create (Insert)
2. Read (Select)
3. Update
4. Delete
5. Exit
`

// Operator-facing messages
const (
	msgConnected     = "Connected to the database!"
	msgInvalidChoice = "Invalid choice. Please try again."
	msgInvalidID     = "Invalid input: user ID must be a number."
	msgInputTooLong  = "Invalid input: value is too long."
	msgExiting       = "Exiting program."
	msgUserAdded     = "User added successfully!"
	msgUserUpdated   = "User updated successfully!"
	msgUserDeleted   = "User deleted successfully!"
	msgUserNotFound  = "User not found."
	listHeader       = "ID | Name | Email | Country"
	listSeparator    = "-----------------------------"
)

// Session runs the interactive menu loop against a user use case.
type Session struct {
	uc      user.Service
	console *Console
	log     *zap.Logger
}

// NewSession creates a new Session.
func NewSession(uc user.Service, console *Console, log *zap.Logger) *Session {
	return &Session{uc: uc, console: console, log: log}
}

// Run shows the menu until the operator exits or input ends. Failures of a
// single operation are reported and the loop continues; only console read
// errors end the session with an error.
func (s *Session) Run(ctx context.Context) error {
	s.console.Println(msgConnected)
	s.log.Info("session started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.console.Printf("%s", menu)
		choice, err := s.console.PromptInt("Enter your choice: ")
		if err != nil {
			if apperrors.IsInput(err) {
				s.console.Println(msgInvalidChoice)
				continue
			}
			return s.endOfInput(err)
		}

		if choice == ChoiceExit {
			s.console.Println(msgExiting)
			s.log.Info("session ended by operator")
			return nil
		}

		if err := s.dispatch(ctx, choice); err != nil {
			return s.endOfInput(err)
		}
	}
}

// dispatch runs one menu operation. It returns only console read errors.
func (s *Session) dispatch(ctx context.Context, choice int64) error {
	var (
		name string
		op   func(context.Context) error
	)

	switch choice {
	case ChoiceCreate:
		name, op = "create", s.createUser
	case ChoiceList:
		name, op = "list", s.listUsers
	case ChoiceUpdate:
		name, op = "update", s.updateUser
	case ChoiceDelete:
		name, op = "delete", s.deleteUser
	default:
		s.console.Println(msgInvalidChoice)
		return nil
	}

	ctx = logger.WithOperation(ctx, name)
	err := op(ctx)

	var inputErr *apperrors.InputError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &inputErr):
		logger.WithContext(ctx, s.log).Warn("invalid operator input",
			zap.String("token", inputErr.Token),
			zap.String("expected", inputErr.Expected),
		)
		if inputErr.Expected == expectNumber {
			s.console.Println(msgInvalidID)
		} else {
			s.console.Println(msgInputTooLong)
		}
		return nil
	case apperrors.IsValidation(err), apperrors.IsInternal(err):
		logger.WithContext(ctx, s.log).Error("operation failed", zap.Error(err))
		s.console.Printf("Error: %s\n", err.Error())
		return nil
	default:
		return err
	}
}

// endOfInput maps exhausted input to a normal end of session.
func (s *Session) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		s.log.Info("input closed, ending session")
		return nil
	}
	s.log.Error("failed to read operator input", zap.Error(err))
	return err
}

func (s *Session) createUser(ctx context.Context) error {
	name, err := s.console.Prompt("Enter name: ")
	if err != nil {
		return err
	}
	email, err := s.console.Prompt("Enter email: ")
	if err != nil {
		return err
	}
	country, err := s.console.Prompt("Enter country: ")
	if err != nil {
		return err
	}

	resp, err := s.uc.CreateUser(ctx, user.CreateUserRequest{
		Name:    name,
		Email:   email,
		Country: country,
	})
	if err != nil {
		return err
	}

	if resp.Outcome == user.OutcomeSucceeded {
		s.console.Println(msgUserAdded)
	}
	return nil
}

func (s *Session) listUsers(ctx context.Context) error {
	s.console.Println(listHeader)
	s.console.Println(listSeparator)

	for u, err := range s.uc.ListUsers(ctx) {
		if err != nil {
			return err
		}
		s.console.Printf("%d | %s | %s | %s\n", u.ID, u.Name, u.Email, u.Country)
	}
	return nil
}

func (s *Session) updateUser(ctx context.Context) error {
	id, err := s.console.PromptInt("Enter user ID to update: ")
	if err != nil {
		return err
	}
	email, err := s.console.Prompt("Enter new email: ")
	if err != nil {
		return err
	}

	resp, err := s.uc.UpdateUserEmail(ctx, user.UpdateUserEmailRequest{ID: id, Email: email})
	if err != nil {
		return err
	}

	s.reportOutcome(resp.Outcome, msgUserUpdated)
	return nil
}

func (s *Session) deleteUser(ctx context.Context) error {
	id, err := s.console.PromptInt("Enter user ID to delete: ")
	if err != nil {
		return err
	}

	resp, err := s.uc.DeleteUser(ctx, user.DeleteUserRequest{ID: id})
	if err != nil {
		return err
	}

	s.reportOutcome(resp.Outcome, msgUserDeleted)
	return nil
}

func (s *Session) reportOutcome(outcome user.Outcome, success string) {
	switch outcome {
	case user.OutcomeSucceeded:
		s.console.Println(success)
	case user.OutcomeNotFound:
		s.console.Println(msgUserNotFound)
	}
}
