package user

import (
	"context"
	"time"

	salonRepo "trimly/database/repository/salon"
	userRepo "trimly/database/repository/user"
	"trimly/models"
	"trimly/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// RegisterInput carries a signup request. Role defaults to customer when
// empty; a stylist signup must name the salon it belongs to.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	SalonID     string `json:"salonId"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// UserService handles account lifecycle and authentication.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Authenticate(ctx context.Context, username, password string) (*AuthResult, error)
	GetByUsername(ctx context.Context, username string) (*models.PublicUser, error)
}

type DefaultUserService struct {
	Users  userRepo.UserRepository
	Salons salonRepo.SalonRepository
}

func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, utils.InvalidArgumentError{Msg: "username, email and password are required"}
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return nil, utils.InvalidArgumentError{Msg: err.Error()}
	}

	taken, err := s.Users.ExistsByIdentity(input.Username, input.Email, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, utils.InvalidArgumentError{Msg: "username, email or phone number already in use"}
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Username:    input.Username,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Role:        role,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if role == models.RoleStylist {
		if input.SalonID == "" {
			return nil, utils.InvalidArgumentError{Msg: "stylist registration requires a salonId"}
		}
		salon, err := s.Salons.GetByID(input.SalonID)
		if err != nil {
			return nil, err
		}
		if salon == nil {
			return nil, utils.NotFoundError{Resource: "salon", ID: input.SalonID}
		}
		user.SalonID = input.SalonID
		user.StylistStatus = models.StylistPending
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.Users.Create(user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Authenticate verifies credentials and returns a signed token. Unknown
// usernames and bad passwords produce the same error.
func (s *DefaultUserService) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ForbiddenError{Msg: "invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, utils.ForbiddenError{Msg: "invalid credentials"}
	}
	return s.issueToken(user)
}

func (s *DefaultUserService) GetByUsername(ctx context.Context, username string) (*models.PublicUser, error) {
	user, err := s.Users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFoundError{Resource: "user", ID: username}
	}
	public := user.Public()
	return &public, nil
}

func (s *DefaultUserService) issueToken(user *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(models.Principal{ID: user.ID, Role: user.Role}, user.Username, tokenDuration)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
