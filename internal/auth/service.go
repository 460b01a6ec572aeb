package auth

import (
	"errors"
	"regexp"
	"strings"

	"versekeeper/internal/database/dberr"
	"versekeeper/internal/database/users"
	"versekeeper/internal/entities"
)

// Validation patterns. Phone numbers are normalized before matching, so the
// pattern only has to accept digits with an optional leading plus.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrPhoneTaken    = errors.New("phone number is already registered")
	ErrNameRequired  = errors.New("name is required")
	ErrPhoneRequired = errors.New("phone number is required")
	ErrNameInvalid   = errors.New("name must be 1-100 characters")
	ErrPhoneInvalid  = errors.New("phone number must be 7-15 digits, optionally prefixed with +")
	ErrAccountLocked = errors.New("too many login attempts, try again later")
)

// UserStore is the narrow slice of the database the auth service needs.
type UserStore interface {
	CreateUser(params users.CreateParams) (*entities.User, error)
	GetUserByPhone(phone string) (*entities.User, error)
	GetUserByID(id string) (*entities.User, error)
}

// Service handles registration and phone-based login. There are no
// passwords: possession of the phone number is the credential, matching the
// mobile client this server fronts.
type Service struct {
	store UserStore
}

// NewService creates a new authentication service.
func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// RegisterParams carries the signup form fields.
type RegisterParams struct {
	Name                 string
	Phone                string
	Denomination         string
	PreferredTranslation string
}

// Register validates the signup fields and creates the account. The phone
// number acts as the unique login identifier.
func (s *Service) Register(params RegisterParams) (*entities.User, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if len(name) > 100 {
		return nil, ErrNameInvalid
	}

	phone, err := NormalizePhone(params.Phone)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(users.CreateParams{
		Name:                 name,
		Phone:                phone,
		Denomination:         strings.TrimSpace(params.Denomination),
		PreferredTranslation: strings.TrimSpace(params.PreferredTranslation),
	})
	if err != nil {
		if errors.Is(err, dberr.ErrConstraintViolation) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}

	return user, nil
}

// Login looks the account up by phone number. This is the sole login
// mechanism; rate limiting at the handler slows enumeration attempts.
func (s *Service) Login(phone string) (*entities.User, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByPhone(normalized)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID resolves a session's user id back to the account.
func (s *Service) GetUserByID(id string) (*entities.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// NormalizePhone strips spaces, dashes and parentheses and validates the
// result, so "+1 (555) 000-1111" and "+15550001111" hit the same account.
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	if cleaned == "" {
		return "", ErrPhoneRequired
	}
	if !phonePattern.MatchString(cleaned) {
		return "", ErrPhoneInvalid
	}
	return cleaned, nil
}
