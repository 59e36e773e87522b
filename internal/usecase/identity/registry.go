package identity

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain"
	identitydomain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type Profile struct {
	Name     string
	Email    string
	CPF      string
	Password string
	Phone    *string
	Role     models.Role
}

// WelcomeSender is satisfied by *notification.Dispatcher.
type WelcomeSender interface {
	Welcome(ctx context.Context, to, name string) error
}

// ======================================================
// REGISTRY
// ======================================================

type Registry struct {
	repo    identitydomain.Repository
	audit   *audit.Dispatcher
	welcome WelcomeSender
	log     *zap.Logger

	passwordCost      int
	checkEmailDomain  bool
	emailDomainLookup func(string) bool
}

type Option func(*Registry)

func WithWelcome(w WelcomeSender) Option {
	return func(r *Registry) { r.welcome = w }
}

func WithPasswordCost(cost int) Option {
	return func(r *Registry) { r.passwordCost = cost }
}

func WithEmailDomainCheck(enabled bool) Option {
	return func(r *Registry) { r.checkEmailDomain = enabled }
}

func NewRegistry(
	repo identitydomain.Repository,
	audit *audit.Dispatcher,
	log *zap.Logger,
	opts ...Option,
) *Registry {
	r := &Registry{
		repo:              repo,
		audit:             audit,
		log:               log,
		passwordCost:      bcrypt.DefaultCost,
		emailDomainLookup: validators.IsEmailDomainValid,
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ======================================================
// CREATE
// ======================================================

// CreateUser validates the profile, rejects duplicate e-mail or CPF and
// stores the user together with its role link.
func (r *Registry) CreateUser(
	ctx context.Context,
	in Profile,
) (*models.User, *models.RoleLink, error) {

	in.Name = strings.TrimSpace(in.Name)
	in.Email = validators.NormalizeEmail(in.Email)
	in.CPF = validators.NormalizeCPF(in.CPF)

	if err := r.validateProfile(in); err != nil {
		return nil, nil, err
	}

	// --------------------------------------------------
	// Unicidade (e-mail / CPF)
	// --------------------------------------------------
	byEmail, err := r.repo.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, nil, err
	}
	if byEmail != nil {
		return nil, nil, domain.DuplicateIdentity()
	}

	byCPF, err := r.repo.FindUserByCPF(ctx, in.CPF)
	if err != nil {
		return nil, nil, err
	}
	if byCPF != nil {
		return nil, nil, domain.DuplicateIdentity()
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), r.passwordCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		CPF:          in.CPF,
		PasswordHash: string(hashed),
		Phone:        in.Phone,
		Role:         in.Role,
	}

	link, err := r.repo.CreateUserWithLink(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	r.audit.Dispatch(audit.Event{
		UserID: &user.ID,
		Action: "user_registered",
		Entity: "user",
		Metadata: map[string]any{
			"role": user.Role,
		},
	})

	if r.welcome != nil {
		if err := r.welcome.Welcome(ctx, user.Email, user.Name); err != nil {
			r.log.Warn("welcome mail failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}

	return user, link, nil
}

func (r *Registry) validateProfile(in Profile) error {
	if in.Name == "" {
		return domain.InvalidInput("O nome é obrigatório.")
	}
	if !validators.IsEmail(in.Email) {
		return domain.InvalidInput("E-mail inválido.")
	}
	if r.checkEmailDomain && !r.emailDomainLookup(in.Email) {
		return domain.InvalidInput("O domínio do e-mail informado não parece ser válido.")
	}
	if !validators.IsCPF(in.CPF) {
		return domain.InvalidInput("O CPF deve conter exatamente 11 dígitos.")
	}
	if problems := validators.PasswordProblems(in.Password); len(problems) > 0 {
		return domain.InvalidInput(strings.Join(problems, " "))
	}
	if !in.Role.Valid() {
		return domain.InvalidInput("Perfil de usuário inválido.")
	}
	return nil
}

// ------------------------------------------------------
// Role links for existing users
// ------------------------------------------------------

func (r *Registry) CreateClientLink(ctx context.Context, userID models.UserID) (*models.RoleLink, error) {
	return r.createLink(ctx, models.RoleClient, userID)
}

func (r *Registry) CreateProfessionalLink(ctx context.Context, userID models.UserID) (*models.RoleLink, error) {
	return r.createLink(ctx, models.RoleProfessional, userID)
}

func (r *Registry) CreateAdminLink(ctx context.Context, userID models.UserID) (*models.RoleLink, error) {
	return r.createLink(ctx, models.RoleAdmin, userID)
}

func (r *Registry) createLink(ctx context.Context, role models.Role, userID models.UserID) (*models.RoleLink, error) {
	user, err := r.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound("user")
	}
	// role is immutable, so the only valid link is the one matching it
	if user.Role != role {
		return nil, domain.InvalidInput("O perfil do usuário não corresponde ao vínculo solicitado.")
	}

	existing, err := r.repo.FindLinkByUserID(ctx, role, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	return r.repo.CreateLink(ctx, role, userID)
}

// ======================================================
// LOOKUPS
// ======================================================
// All return (nil, nil) when absent.

func (r *Registry) FindUserByID(ctx context.Context, id models.UserID) (*models.User, error) {
	return r.repo.FindUserByID(ctx, id)
}

func (r *Registry) FindLinkByID(ctx context.Context, role models.Role, id models.LinkID) (*models.RoleLink, error) {
	return r.repo.FindLinkByID(ctx, role, id)
}

func (r *Registry) FindLinkByUserID(ctx context.Context, role models.Role, userID models.UserID) (*models.RoleLink, error) {
	return r.repo.FindLinkByUserID(ctx, role, userID)
}
