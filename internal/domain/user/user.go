package user

import (
	"fmt"
	"strings"
	"time"

	"centrex/internal/shared/authorization"
	"centrex/internal/shared/biztime"
)

// User is an operator account. MerchantNumber is the numeric tenant
// identifier used as the dial-code prefix for every extension the
// operator provisions.
type User struct {
	id             uint
	email          string
	name           string
	passwordHash   string
	role           authorization.UserRole
	merchantNumber string
	active         bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewUser(email, name, passwordHash string, role authorization.UserRole, merchantNumber string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	if merchantNumber == "" {
		return nil, fmt.Errorf("merchant number is required")
	}
	for _, r := range merchantNumber {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("merchant number must be numeric")
		}
	}

	now := biztime.NowUTC()
	return &User{
		email:          email,
		name:           name,
		passwordHash:   passwordHash,
		role:           role,
		merchantNumber: merchantNumber,
		active:         true,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructUser(
	id uint,
	email string,
	name string,
	passwordHash string,
	role authorization.UserRole,
	merchantNumber string,
	active bool,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	return &User{
		id:             id,
		email:          email,
		name:           name,
		passwordHash:   passwordHash,
		role:           role,
		merchantNumber: merchantNumber,
		active:         active,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (u *User) ID() uint                          { return u.id }
func (u *User) Email() string                     { return u.email }
func (u *User) Name() string                      { return u.name }
func (u *User) PasswordHash() string              { return u.passwordHash }
func (u *User) Role() authorization.UserRole      { return u.role }
func (u *User) MerchantNumber() string            { return u.merchantNumber }
func (u *User) IsActive() bool                    { return u.active }
func (u *User) CreatedAt() time.Time              { return u.createdAt }
func (u *User) UpdatedAt() time.Time              { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) Deactivate() {
	u.active = false
	u.updatedAt = biztime.NowUTC()
}
