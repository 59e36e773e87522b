package identity

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

type UserProfile struct {
	User *models.User
	Link *models.RoleLink
}

// Authenticate never tells whether the e-mail or the password was wrong.
func (r *Registry) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.repo.FindUserByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.InvalidCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.InvalidCredentials()
	}

	return user, nil
}

func (r *Registry) Profile(ctx context.Context, userID models.UserID) (*UserProfile, error) {
	user, err := r.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user")
	}

	link, err := r.repo.FindLinkByUserID(ctx, user.Role, user.ID)
	if err != nil {
		return nil, err
	}

	return &UserProfile{User: user, Link: link}, nil
}
