// credentials.go
//
// A nutrition tracking data service with a shared food catalog
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of foodtrack.
// foodtrack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// foodtrack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with foodtrack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/foodtrack/internal/models"
	"github.com/localnerve/foodtrack/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence the credential service needs
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByEmailKey(ctx context.Context, key string) (*models.User, error)
	UpdateUser(ctx context.Context, username string, fields map[string]interface{}) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
	AddSavedMeal(ctx context.Context, username, ref string) (*models.User, error)
	RemoveSavedMeal(ctx context.Context, username, ref string) (*models.User, error)
}

// RegisterInput is a new account request
type RegisterInput struct {
	Username      string             `json:"username" validate:"required,min=5,max=15,alphanum"`
	Password      string             `json:"password" validate:"required"`
	Email         string             `json:"email" validate:"required,email,max=320"`
	Sex           *string            `json:"sex" validate:"omitnil,max=32"`
	Birthdate     *string            `json:"birthdate" validate:"omitnil,max=32"`
	Height        *types.FlexFloat64 `json:"height" validate:"omitnil,finite,gte=0"`
	CurrentWeight *types.FlexFloat64 `json:"currentWeight" validate:"omitnil,finite,gte=0"`
	GoalWeight    *types.FlexFloat64 `json:"goalWeight" validate:"omitnil,finite,gte=0"`
}

// ProfilePatch carries the profile fields to overwrite. Nil fields are left alone.
type ProfilePatch struct {
	Username      *string            `json:"username" validate:"omitnil,min=5,max=15,alphanum"`
	Password      *string            `json:"password" validate:"omitnil,min=1"`
	Email         *string            `json:"email" validate:"omitnil,email,max=320"`
	Sex           *string            `json:"sex" validate:"omitnil,max=32"`
	Birthdate     *string            `json:"birthdate" validate:"omitnil,max=32"`
	Height        *types.FlexFloat64 `json:"height" validate:"omitnil,finite,gte=0"`
	CurrentWeight *types.FlexFloat64 `json:"currentWeight" validate:"omitnil,finite,gte=0"`
	GoalWeight    *types.FlexFloat64 `json:"goalWeight" validate:"omitnil,finite,gte=0"`
}

// CredentialService registers users and checks their passwords
type CredentialService struct {
	store       UserStore
	cost        int
	emailUnique bool
	dummyHash   []byte
}

// NewCredentialService creates a credential service hashing at the given bcrypt cost.
// When emailUnique is false, several accounts may share one email address.
func NewCredentialService(store UserStore, cost int, emailUnique bool) *CredentialService {
	// Compared against when the user does not exist so both failures cost the same
	dummyHash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		logger.Error().Err(err).Int("cost", cost).Msg("Failed to prepare dummy password hash")
	}

	return &CredentialService{
		store:       store,
		cost:        cost,
		emailUnique: emailUnique,
		dummyHash:   dummyHash,
	}
}

// Register creates a user with a hashed password
func (s *CredentialService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hash, err := s.hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:            uuid.NewString(),
		Username:      input.Username,
		Email:         strings.TrimSpace(input.Email),
		PasswordHash:  hash,
		Sex:           input.Sex,
		Birthdate:     input.Birthdate,
		Height:        input.Height.Ptr(),
		CurrentWeight: input.CurrentWeight.Ptr(),
		GoalWeight:    input.GoalWeight.Ptr(),
	}
	user.EmailKey = s.emailKey(user.Email, user.ID)

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("user", user.ID).Str("username", user.Username).Msg("Registered user")
	return user, nil
}

// Verify returns the user identified by username, or by email when emails are
// unique, if rawPassword matches. Unknown users and wrong passwords are both
// Auth errors distinguished only by Reason.
func (s *CredentialService) Verify(ctx context.Context, identifier, rawPassword string) (*models.User, error) {
	user, err := s.lookup(ctx, identifier)
	if types.IsKind(err, types.KindNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(rawPassword))
		logger.Info().Str("identifier", identifier).Str("reason", string(types.ReasonUnknownUser)).Msg("Login rejected")
		return nil, types.Auth(types.ReasonUnknownUser, "invalid username or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(rawPassword)); err != nil {
		logger.Info().Str("user", user.ID).Str("reason", string(types.ReasonWrongPassword)).Msg("Login rejected")
		return nil, types.Auth(types.ReasonWrongPassword, "invalid username or password")
	}

	return user, nil
}

// Get returns the user named username
func (s *CredentialService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.store.FindUserByUsername(ctx, username)
}

// UpdateProfile overwrites the supplied profile fields of the user named username
func (s *CredentialService) UpdateProfile(ctx context.Context, username string, patch ProfilePatch) (*models.User, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		fields["email"] = email
		if s.emailUnique {
			fields["email_key"] = normalizeEmail(email)
		}
	}
	if patch.Password != nil {
		hash, err := s.hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = hash
	}
	if patch.Sex != nil {
		fields["sex"] = *patch.Sex
	}
	if patch.Birthdate != nil {
		fields["birthdate"] = *patch.Birthdate
	}
	if patch.Height != nil {
		fields["height"] = patch.Height.Float64()
	}
	if patch.CurrentWeight != nil {
		fields["current_weight"] = patch.CurrentWeight.Float64()
	}
	if patch.GoalWeight != nil {
		fields["goal_weight"] = patch.GoalWeight.Float64()
	}

	user, err := s.store.UpdateUser(ctx, username, fields)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("user", user.ID).Int("fields", len(fields)).Msg("Updated profile")
	return user, nil
}

// Deregister removes the user with their diary and saved meals
func (s *CredentialService) Deregister(ctx context.Context, username string) error {
	if err := s.store.DeleteUser(ctx, username); err != nil {
		return err
	}
	logger.Info().Str("username", username).Msg("Deregistered user")
	return nil
}

// SaveMeal adds ref to the user's saved meals. Saving twice keeps one copy.
func (s *CredentialService) SaveMeal(ctx context.Context, username, ref string) (*models.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, types.Validation("meal reference is required")
	}
	return s.store.AddSavedMeal(ctx, username, ref)
}

// UnsaveMeal removes ref from the user's saved meals
func (s *CredentialService) UnsaveMeal(ctx context.Context, username, ref string) (*models.User, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, types.Validation("meal reference is required")
	}
	return s.store.RemoveSavedMeal(ctx, username, ref)
}

func (s *CredentialService) lookup(ctx context.Context, identifier string) (*models.User, error) {
	user, err := s.store.FindUserByUsername(ctx, identifier)
	if err == nil || !types.IsKind(err, types.KindNotFound) || !s.emailUnique {
		return user, err
	}
	return s.store.FindUserByEmailKey(ctx, normalizeEmail(identifier))
}

func (s *CredentialService) hash(password string) (string, error) {
	if password == "" {
		return "", types.Validation("password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", types.Validation("password cannot be hashed: %v", err)
	}
	return string(hash), nil
}

// emailKey is the value behind the unique email index. Without email
// uniqueness every user gets a key of their own.
func (s *CredentialService) emailKey(email, id string) string {
	if s.emailUnique {
		return normalizeEmail(email)
	}
	return id
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
