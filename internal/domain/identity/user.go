package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Lmt310104/BookNow-BE-sub000/internal/domain/shared"
)

// Role represents the access level of a user
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusLocked   UserStatus = "locked"   // locked after repeated failed logins
	UserStatusDisabled UserStatus = "disabled" // soft-disabled by an admin
)

const (
	bcryptCost     = 12
	maxEmailLen    = 200
	minPasswordLen = 8
	maxPasswordLen = 128
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	letterInPass = regexp.MustCompile(`[a-zA-Z]`)
	digitInPass  = regexp.MustCompile(`[0-9]`)
)

// User represents an account in the store. Customers register
// themselves; admins are provisioned through migrations or other
// admins.
type User struct {
	shared.BaseEntity
	Email          string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash   string     `gorm:"type:varchar(100);not null"`
	FullName       string     `gorm:"type:varchar(255);not null"`
	Phone          string     `gorm:"type:varchar(20)"`
	AvatarURL      string     `gorm:"type:varchar(512)"`
	Role           Role       `gorm:"type:varchar(20);not null;default:'customer'"`
	Status         UserStatus `gorm:"type:varchar(20);not null;default:'active'"`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time
	LastLoginAt    *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active customer account
func NewUser(email, password, fullName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         RoleCustomer,
		Status:       UserStatusActive,
	}, nil
}

// UpdateProfile updates the user's profile fields
func (u *User) UpdateProfile(fullName, phone string) error {
	if fullName == "" {
		return shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if phone != "" && len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}

	u.FullName = fullName
	u.Phone = strings.TrimSpace(phone)
	u.UpdatedAt = time.Now()

	return nil
}

// SetAvatar sets the user's avatar URL
func (u *User) SetAvatar(url string) error {
	if len(url) > 512 {
		return shared.NewDomainError("INVALID_AVATAR", "Avatar URL cannot exceed 512 characters")
	}
	u.AvatarURL = url
	u.UpdatedAt = time.Now()
	return nil
}

// ChangePassword changes the password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password without checking the old one
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Disable soft-disables the account
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("ALREADY_DISABLED", "User is already disabled")
	}
	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	return nil
}

// Enable re-activates a disabled or locked account
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLoginSuccess resets the failure counter after a login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.UpdatedAt = now
}

// RecordLoginFailure increments the failure counter and locks the
// account once maxAttempts is reached. Returns true if the account
// was locked by this failure.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	now := time.Now()
	u.FailedAttempts++
	u.UpdatedAt = now

	if u.FailedAttempts < maxAttempts {
		return false
	}
	until := now.Add(lockDuration)
	u.Status = UserStatusLocked
	u.LockedUntil = &until
	return true
}

// IsLocked returns true while the lock has not expired. A locked
// account with no expiry stays locked until an admin re-enables it.
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	return u.LockedUntil == nil || !time.Now().After(*u.LockedUntil)
}

// CanLogin returns true if the account may authenticate
func (u *User) CanLogin() bool {
	return u.Status != UserStatusDisabled && !u.IsLocked()
}

func validateEmail(email string) error {
	switch {
	case email == "":
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	case len(email) > maxEmailLen:
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	case !emailPattern.MatchString(email):
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	switch {
	case password == "":
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	case len(password) < minPasswordLen:
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	case len(password) > maxPasswordLen:
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	case !letterInPass.MatchString(password) || !digitInPass.MatchString(password):
		return shared.NewDomainError("INVALID_PASSWORD", "Password must contain at least one letter and one number")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}
