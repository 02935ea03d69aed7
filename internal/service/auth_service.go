package service

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/postboard/postboard/internal/apperr"
	"github.com/postboard/postboard/internal/models"
	"github.com/postboard/postboard/internal/repository"
	"github.com/postboard/postboard/internal/utils"
	"github.com/postboard/postboard/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	environment   string
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, environment string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		environment:   environment,
	}
}

// IsProduction returns true if running in production environment
func (s *AuthService) IsProduction() bool {
	return s.environment == "production"
}

// RegisterInput carries the signup fields. FirstName and LastName are optional.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a new user account. Emails are normalized to lowercase
// before the duplicate checks and the insert; usernames are case-sensitive.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	start := time.Now()
	email := strings.ToLower(strings.TrimSpace(input.Email))

	logger.Log.Debug("Processing user registration",
		zap.String("username", input.Username),
		zap.String("email", email),
	)

	if err := s.validateRegisterInput(input.Username, email, input.Password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", input.Username),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, apperr.Internal("failed to check email", err)
	}
	if existingUser != nil {
		logger.Log.Warn("Email already exists",
			zap.String("email", email),
		)
		return nil, apperr.Duplicate("the email is already registered")
	}

	existingUser, err = s.userRepo.GetUserByUsername(input.Username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", input.Username),
			zap.Error(err),
		)
		return nil, apperr.Internal("failed to check username", err)
	}
	if existingUser != nil {
		logger.Log.Warn("Username already exists",
			zap.String("username", input.Username),
		)
		return nil, apperr.Duplicate("the username is already taken")
	}

	hashStart := time.Now()
	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		logger.Log.Error("Failed to hash password",
			zap.Error(err),
		)
		return nil, apperr.Internal("failed to hash password", err)
	}
	hashDuration := time.Since(hashStart)

	user := &models.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		// Two concurrent signups can both pass the pre-checks; the unique
		// indexes on email and username decide the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("the email or username is already taken")
		}
		logger.Log.Error("Failed to create user in database",
			zap.String("username", input.Username),
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, apperr.Internal("failed to create user", err)
	}

	logger.Log.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", input.Username),
		zap.Duration("hash_duration", hashDuration),
		zap.Duration("total_duration", time.Since(start)),
	)

	return user, nil
}

// Login verifies the credentials and issues a signed, time-limited token.
func (s *AuthService) Login(email, password string) (string, error) {
	start := time.Now()
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to get user by email",
			zap.String("email", email),
			zap.Error(err),
		)
		return "", apperr.Internal("failed to look up user", err)
	}
	if user == nil {
		logger.Log.Warn("Login failed: user not found",
			zap.String("email", email),
		)
		return "", apperr.Invalid("incorrect credentials")
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("email", email),
			zap.Error(err),
		)
		return "", apperr.Internal("failed to verify password", err)
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("email", email),
			zap.String("user_id", user.ID.String()),
		)
		return "", apperr.Invalid("incorrect credentials")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate JWT token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return "", apperr.Internal("failed to generate token", err)
	}

	logger.Log.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.Duration("total_duration", time.Since(start)),
	)

	return token, nil
}

// GetProfile returns the user's own profile.
func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, apperr.Internal("failed to get user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// ProfileUpdate carries the mutable profile fields; nil means "leave as is".
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// UpdateProfile changes email and/or name. Password and role are immutable
// through this path.
func (s *AuthService) UpdateProfile(userID uuid.UUID, update ProfileUpdate) (*models.User, error) {
	updates := map[string]interface{}{}

	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		if !emailRegex.MatchString(email) {
			return nil, apperr.Invalid("invalid email format")
		}
		existing, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, apperr.Internal("failed to check email", err)
		}
		if existing != nil && existing.ID != userID {
			return nil, apperr.Duplicate("the email is already registered")
		}
		updates["email"] = email
	}
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}

	if len(updates) == 0 {
		return nil, apperr.Invalid("at least one field must be provided for update")
	}

	user, err := s.userRepo.UpdateProfile(userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("the email is already registered")
		}
		logger.Log.Error("Failed to update profile",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, apperr.Internal("failed to update profile", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	logger.Log.Info("Profile updated",
		zap.String("user_id", userID.String()),
	)

	return user, nil
}

// DeleteAccount removes the user. Posts and likes go with it through the
// foreign-key cascades.
func (s *AuthService) DeleteAccount(userID uuid.UUID) error {
	deleted, err := s.userRepo.DeleteUser(userID)
	if err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return apperr.Internal("failed to delete account", err)
	}
	if !deleted {
		return apperr.NotFound("user not found")
	}

	logger.Log.Info("User account deleted",
		zap.String("user_id", userID.String()),
	)

	return nil
}

func (s *AuthService) validateRegisterInput(username, email, password string) error {
	if len(username) < 3 {
		return apperr.Invalid("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return apperr.Invalid("username must be at most 50 characters")
	}

	if !emailRegex.MatchString(email) {
		return apperr.Invalid("invalid email format")
	}
	if len(email) > 100 {
		return apperr.Invalid("email too long")
	}

	if len(password) < 8 {
		return apperr.Invalid("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return apperr.Invalid("password too long")
	}

	return nil
}
