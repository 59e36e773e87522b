package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	identitydomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// linkRow maps any of the clients / professionals / administrators
// tables.
type linkRow struct {
	ID     models.LinkID
	UserID models.UserID
}

func linkTable(role models.Role) (string, error) {
	switch role {
	case models.RoleClient:
		return "clients", nil
	case models.RoleProfessional:
		return "professionals", nil
	case models.RoleAdmin:
		return "administrators", nil
	}
	return "", domain.InvalidInput("Perfil de usuário inválido.")
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *UserGormRepository) CreateUserWithLink(
	ctx context.Context,
	u *models.User,
) (*models.RoleLink, error) {

	table, err := linkTable(u.Role)
	if err != nil {
		return nil, err
	}

	link := linkRow{ID: models.NewLinkID()}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return translate(err, domain.DuplicateIdentity(), nil)
		}
		link.UserID = u.ID
		return tx.Table(table).Create(&link).Error
	})
	if err != nil {
		return nil, err
	}

	return &models.RoleLink{ID: link.ID, UserID: link.UserID, Role: u.Role}, nil
}

func (r *UserGormRepository) FindUserByID(ctx context.Context, id models.UserID) (*models.User, error) {
	return r.findUser(ctx, "id = ?", id)
}

func (r *UserGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, "email = ?", email)
}

func (r *UserGormRepository) FindUserByCPF(ctx context.Context, cpf string) (*models.User, error) {
	return r.findUser(ctx, "cpf = ?", cpf)
}

func (r *UserGormRepository) findUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where(query, arg).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) ListUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}

	users := make([]models.User, 0)
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser never writes role, cpf or password.
func (r *UserGormRepository) UpdateUser(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).
		Model(u).
		Select("name", "email", "phone", "updated_at").
		Updates(u)
	if res.Error != nil {
		return translate(res.Error, domain.DuplicateIdentity(), nil)
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("user")
	}
	return nil
}

// DeleteUser cascades to the role links; a link still referenced by a
// consultation makes postgres refuse.
func (r *UserGormRepository) DeleteUser(ctx context.Context, id models.UserID) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error, nil, domain.HasDependents("user"))
	}
	if res.RowsAffected == 0 {
		return domain.NotFound("user")
	}
	return nil
}

// --------------------------------------------------
// Role links
// --------------------------------------------------

func (r *UserGormRepository) CreateLink(
	ctx context.Context,
	role models.Role,
	userID models.UserID,
) (*models.RoleLink, error) {

	table, err := linkTable(role)
	if err != nil {
		return nil, err
	}

	link := linkRow{ID: models.NewLinkID(), UserID: userID}
	if err := r.db.WithContext(ctx).
		Table(table).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error; err != nil {
		return nil, translate(err, nil, domain.NotFound("user"))
	}

	// lost a race against a concurrent create: return the winner
	return r.FindLinkByUserID(ctx, role, userID)
}

func (r *UserGormRepository) FindLinkByID(
	ctx context.Context,
	role models.Role,
	id models.LinkID,
) (*models.RoleLink, error) {
	return r.findLink(ctx, role, "id = ?", id)
}

func (r *UserGormRepository) FindLinkByUserID(
	ctx context.Context,
	role models.Role,
	userID models.UserID,
) (*models.RoleLink, error) {
	return r.findLink(ctx, role, "user_id = ?", userID)
}

func (r *UserGormRepository) findLink(
	ctx context.Context,
	role models.Role,
	query string,
	arg any,
) (*models.RoleLink, error) {

	table, err := linkTable(role)
	if err != nil {
		return nil, err
	}

	var row linkRow
	err = r.db.WithContext(ctx).Table(table).Where(query, arg).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.RoleLink{ID: row.ID, UserID: row.UserID, Role: role}, nil
}

func (r *UserGormRepository) ListMembers(
	ctx context.Context,
	role models.Role,
	offset int,
	limit int,
) ([]models.RoleMember, int64, error) {

	table, err := linkTable(role)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Table(table).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	members := make([]models.RoleMember, 0)
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*, l.id AS link_id").
		Joins("JOIN "+table+" l ON l.user_id = users.id").
		Order("users.name ASC").
		Offset(offset).
		Limit(limit).
		Scan(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *UserGormRepository) HasConsultations(ctx context.Context, userID models.UserID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where(
			"client_id IN (SELECT id FROM clients WHERE user_id = ?) OR professional_id IN (SELECT id FROM professionals WHERE user_id = ?)",
			userID, userID,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ identitydomain.Repository = (*UserGormRepository)(nil)
