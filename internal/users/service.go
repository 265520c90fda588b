package users

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/mallkv/pkg/config"
	"github.com/angelmondragon/mallkv/pkg/enums"
	pkgerrors "github.com/angelmondragon/mallkv/pkg/errors"
	"github.com/angelmondragon/mallkv/pkg/kv"
	"github.com/angelmondragon/mallkv/pkg/logger"
	"github.com/angelmondragon/mallkv/pkg/security"
	"github.com/angelmondragon/mallkv/pkg/shard"
	"github.com/angelmondragon/mallkv/pkg/validate"
	"github.com/google/uuid"
)

// AdminID is the id of the account created by Seed.
const AdminID = "admin_1"

const invalidCredentialsMessage = "invalid credentials"

type secretHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, encoded string) (bool, error)
}

type orderCounter interface {
	CountFor(ctx context.Context, owner shard.Owner) int
}

// ServiceParams packages the directory dependencies.
type ServiceParams struct {
	Store  kv.Store
	Hasher secretHasher
	Seed   config.SeedConfig
	// Orders answers OrderCountFor; nil reports zero for everyone.
	Orders orderCounter
	Logger *logger.Logger
	Now    func() time.Time
}

// Service owns the user directory stored under "registered_users".
// Email uniqueness is exact-match: "A@x.com" and "a@x.com" are two accounts.
type Service struct {
	directory *kv.Collection[User]
	hasher    secretHasher
	seed      config.SeedConfig
	orders    orderCounter
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds the directory service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("secret hasher required")
	}
	logg := logger.OrNop(params.Logger)
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		directory: kv.NewCollection[User](params.Store, shard.UsersKey, logg),
		hasher:    params.Hasher,
		seed:      params.Seed,
		orders:    params.Orders,
		logg:      logg,
		now:       now,
	}, nil
}

// Seed creates the bootstrap admin account when no directory exists yet.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	if s.directory.Exists(ctx) {
		return false, nil
	}
	hash, err := s.hasher.Hash(s.seed.AdminSecret)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash admin secret")
	}
	admin := User{
		ID:           AdminID,
		Email:        s.seed.AdminEmail,
		Name:         s.seed.AdminName,
		Secret:       hash,
		Role:         enums.UserRoleAdmin,
		RegisterDate: s.now().UTC(),
		IsActive:     true,
	}
	if err := s.directory.Save(ctx, []User{admin}); err != nil {
		return false, err
	}
	s.logg.Info(s.logg.WithField(ctx, "email", admin.Email), "admin account seeded")
	return true, nil
}

// Register adds a new active account with the user role.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	input.Email = strings.TrimSpace(input.Email)
	input.Name = validate.Sanitize(input.Name, 0)
	if err := validate.Struct(input); err != nil {
		return User{}, err
	}

	directory, err := s.directory.LoadForUpdate(ctx)
	if err != nil {
		return User{}, err
	}
	if slices.ContainsFunc(directory, func(u User) bool { return u.Email == input.Email }) {
		return User{}, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}

	hash, err := s.hasher.Hash(input.Secret)
	if err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash secret")
	}
	now := s.now()
	user := User{
		ID:           newUserID(now),
		Email:        input.Email,
		Name:         input.Name,
		Secret:       hash,
		Role:         enums.UserRoleUser,
		RegisterDate: now.UTC(),
		IsActive:     true,
	}
	if err := s.directory.Save(ctx, append(directory, user)); err != nil {
		return User{}, err
	}

	s.logg.Info(s.logg.WithOwner(ctx, user.ID), "user registered")
	return user.Public(), nil
}

// Authenticate checks email and secret against an active account.
func (s *Service) Authenticate(ctx context.Context, email, secret string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || secret == "" {
		return User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	directory := s.directory.LoadOrEmpty(ctx)
	idx := slices.IndexFunc(directory, func(u User) bool { return u.Email == email })
	if idx < 0 {
		return User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user := directory[idx]

	valid, legacy := s.verify(secret, user.Secret)
	if !valid || !user.IsActive {
		return User{}, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if legacy {
		s.upgradeSecret(ctx, user.ID, secret)
	}
	return user.Public(), nil
}

// ValidateCredentials is Authenticate reduced to found / not found.
func (s *Service) ValidateCredentials(ctx context.Context, email, secret string) (User, bool) {
	user, err := s.Authenticate(ctx, email, secret)
	if err != nil {
		return User{}, false
	}
	return user, true
}

// SetRole changes the role of userID.
func (s *Service) SetRole(ctx context.Context, userID string, role enums.UserRole) error {
	if !role.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid role").
			WithDetails(map[string]string{"role": role.String()})
	}
	_, err := s.mutate(ctx, userID, func(u *User) { u.Role = role })
	return err
}

// ToggleActive flips the active flag of userID and returns the new value.
func (s *Service) ToggleActive(ctx context.Context, userID string) (bool, error) {
	user, err := s.mutate(ctx, userID, func(u *User) { u.IsActive = !u.IsActive })
	if err != nil {
		return false, err
	}
	return user.IsActive, nil
}

// OrderCountFor returns the number of orders in userID's shard.
func (s *Service) OrderCountFor(ctx context.Context, userID string) int {
	if s.orders == nil {
		return 0
	}
	return s.orders.CountFor(ctx, shard.OwnerOf(userID))
}

// List returns every account without credentials.
func (s *Service) List(ctx context.Context) []User {
	directory := s.directory.LoadOrEmpty(ctx)
	out := make([]User, 0, len(directory))
	for _, u := range directory {
		out = append(out, u.Public())
	}
	return out
}

// FindByID returns the account with id, without its credential.
func (s *Service) FindByID(ctx context.Context, id string) (User, bool) {
	for _, u := range s.directory.LoadOrEmpty(ctx) {
		if u.ID == id {
			return u.Public(), true
		}
	}
	return User{}, false
}

// Count returns the number of accounts.
func (s *Service) Count(ctx context.Context) int {
	return len(s.directory.LoadOrEmpty(ctx))
}

func (s *Service) mutate(ctx context.Context, userID string, fn func(*User)) (User, error) {
	directory, err := s.directory.LoadForUpdate(ctx)
	if err != nil {
		return User{}, err
	}
	idx := slices.IndexFunc(directory, func(u User) bool { return u.ID == userID })
	if idx < 0 {
		return User{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found").
			WithDetails(map[string]string{"user_id": userID})
	}
	fn(&directory[idx])
	if err := s.directory.Save(ctx, directory); err != nil {
		return User{}, err
	}
	return directory[idx].Public(), nil
}

// verify reports whether secret matches stored, and whether stored is a
// plain value that should be rehashed.
func (s *Service) verify(secret, stored string) (valid, legacy bool) {
	if !security.IsHash(stored) {
		return subtle.ConstantTimeCompare([]byte(secret), []byte(stored)) == 1, true
	}
	ok, err := s.hasher.Verify(secret, stored)
	return err == nil && ok, false
}

func (s *Service) upgradeSecret(ctx context.Context, userID, secret string) {
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		s.logg.WarnErr(s.logg.WithOwner(ctx, userID), "rehash secret failed", err)
		return
	}
	if _, err := s.mutate(ctx, userID, func(u *User) { u.Secret = hash }); err != nil {
		s.logg.WarnErr(s.logg.WithOwner(ctx, userID), "store rehashed secret failed", err)
	}
}

func newUserID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("user_%d_%s", now.UnixMilli(), suffix)
}
