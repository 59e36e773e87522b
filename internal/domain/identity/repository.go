package identity

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Repository finders return (nil, nil) when the row does not exist.
type Repository interface {
	// -------- User --------
	CreateUserWithLink(
		ctx context.Context,
		u *models.User,
	) (*models.RoleLink, error)

	FindUserByID(ctx context.Context, id models.UserID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByCPF(ctx context.Context, cpf string) (*models.User, error)

	ListUsers(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id models.UserID) error

	// -------- Role links --------
	CreateLink(
		ctx context.Context,
		role models.Role,
		userID models.UserID,
	) (*models.RoleLink, error)

	FindLinkByID(
		ctx context.Context,
		role models.Role,
		id models.LinkID,
	) (*models.RoleLink, error)

	FindLinkByUserID(
		ctx context.Context,
		role models.Role,
		userID models.UserID,
	) (*models.RoleLink, error)

	ListMembers(
		ctx context.Context,
		role models.Role,
		offset int,
		limit int,
	) ([]models.RoleMember, int64, error)

	// HasConsultations reports whether any consultation references a
	// link owned by the user.
	HasConsultations(ctx context.Context, userID models.UserID) (bool, error)
}
