package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sohinisarkar2002/EduAssist/internal/config"
	"github.com/sohinisarkar2002/EduAssist/internal/model"
	"github.com/sohinisarkar2002/EduAssist/internal/repository"
	"github.com/sohinisarkar2002/EduAssist/internal/util"
	"github.com/sohinisarkar2002/EduAssist/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	userRepo *repository.UserRepository
	email    EmailSender
	config   *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, email EmailSender, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, email: email, config: cfg}
}

type RegisterInput struct {
	Email    string         `json:"email" binding:"required,email"`
	Username string         `json:"username" binding:"required,min=3,max=50"`
	Password string         `json:"password" binding:"required,min=8"`
	FullName string         `json:"fullName"`
	Role     model.UserRole `json:"role"`
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, util.ErrUsernameRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 管理员账号不开放注册
	role := input.Role
	if role != model.Teacher {
		role = model.Student
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    input.Email,
		Username: input.Username,
		Password: string(hash),
		FullName: input.FullName,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, util.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.config.JWT.Secret, s.config.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("last login update failed", zap.Uint("userID", user.ID), zap.Error(err))
	}

	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) Profile(userID uint) (*model.User, error) {
	return s.userRepo.FindByID(userID)
}

// ListUsers 管理端分页查看用户
func (s *AuthService) ListUsers(page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.userRepo.List((page-1)*limit, limit)
}

// RequestPasswordReset 不泄露邮箱是否存在, 找不到用户也返回成功
func (s *AuthService) RequestPasswordReset(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	user.PasswordResetToken = token
	user.PasswordResetExpiry = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if err := s.email.SendPasswordReset(user.Email, user.FullName, token); err != nil {
		logger.Log.Error("reset email send failed", zap.Uint("userID", user.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrResetTokenInvalid
		}
		return err
	}
	if user.PasswordResetToken == "" || user.PasswordResetExpiry == nil || time.Now().After(*user.PasswordResetExpiry) {
		return util.ErrResetTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.PasswordResetToken = ""
	user.PasswordResetExpiry = nil
	return s.userRepo.Update(user)
}
