package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/qs3c/uikit_server/config"
	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/jwt"
	"github.com/qs3c/uikit_server/internal/pkg/oauth"
	"github.com/qs3c/uikit_server/internal/pkg/queue"
	"github.com/qs3c/uikit_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrPasswordLogin      = errors.New("该账号使用第三方登录，不支持密码操作")
)

type AuthService struct {
	userRepo    *repository.UserRepository
	cfg         *config.Config
	googleOAuth *oauth.GoogleOAuth
	emailQueue  *queue.Queue
}

func NewAuthService(userRepo *repository.UserRepository, emailQueue *queue.Queue, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		googleOAuth: oauth.NewGoogleOAuth(
			cfg.OAuth.Google.ClientID,
			cfg.OAuth.Google.ClientSecret,
			cfg.OAuth.Google.RedirectURI,
		),
		emailQueue: emailQueue,
	}
}

// Register 用户注册
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	// 检查邮箱是否存在
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 加密密码
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	passwordStr := string(hashedPassword)
	user := &model.User{
		Email:        req.Email,
		PasswordHash: &passwordStr,
		Name:         req.Name,
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	// 欢迎邮件交给队列异步发送，失败不影响注册
	s.enqueueWelcome(ctx, user)

	return s.issueToken(user)
}

// Login 用户登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// 验证密码
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetGoogleAuthURL 获取 Google 授权 URL
func (s *AuthService) GetGoogleAuthURL(state string) string {
	return s.googleOAuth.GetAuthURL(state)
}

// GoogleCallback 处理 Google OAuth 回调
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	// 用 code 换取 token
	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	// 获取 Google 用户信息
	googleUser, err := s.googleOAuth.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get google user: %w", err)
	}

	// 检查用户是否已存在
	user, err := s.userRepo.GetByGoogleID(googleUser.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil {
		// 同一邮箱的密码账号直接关联 Google ID
		existing, err := s.userRepo.GetByEmail(googleUser.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil {
			existing.GoogleID = &googleUser.ID
			if existing.AvatarURL == "" {
				existing.AvatarURL = googleUser.Picture
			}
			if err := s.userRepo.Update(existing); err != nil {
				return nil, err
			}
			return s.issueToken(existing)
		}

		// 创建新用户
		user = &model.User{
			Email:     googleUser.Email,
			GoogleID:  &googleUser.ID,
			Name:      googleUser.Name,
			Role:      model.RoleUser,
			AvatarURL: googleUser.Picture,
		}
		if user.Name == "" {
			user.Name = googleUser.Email
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}

		s.enqueueWelcome(ctx, user)
		return s.issueToken(user)
	}

	// 已有用户：同步 Google 侧的资料变更
	changed := false
	if googleUser.Name != "" && user.Name != googleUser.Name {
		user.Name = googleUser.Name
		changed = true
	}
	if googleUser.Picture != "" && user.AvatarURL != googleUser.Picture {
		user.AvatarURL = googleUser.Picture
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*dto.LoginResponse, error) {
	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserInfo(user),
	}, nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, user *model.User) {
	if s.emailQueue == nil {
		return
	}
	_ = s.emailQueue.Push(ctx, &queue.EmailMessage{
		Type: queue.EmailWelcome,
		To:   user.Email,
		Name: user.Name,
	})
}

func buildUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		HasGoogle: user.GoogleID != nil,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
