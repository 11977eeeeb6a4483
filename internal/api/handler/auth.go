package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/uikit_server/config"
	"github.com/qs3c/uikit_server/internal/api/middleware"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/oauth"
	"github.com/qs3c/uikit_server/internal/pkg/response"
	"github.com/qs3c/uikit_server/internal/service"
)

// UserInfoCookieName 暴露给前端读取的用户信息 Cookie（非 HTTP-only）
const UserInfoCookieName = "user_info"

type AuthHandler struct {
	authService *service.AuthService
	stateStore  *oauth.StateStore
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, stateStore *oauth.StateStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		stateStore:  stateStore,
		cfg:         cfg,
	}
}

// Register 用户注册
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	h.setAuthCookies(c, resp)
	response.SuccessWithMessage(c, "注册成功", resp)
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.AuthError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	h.setAuthCookies(c, resp)
	response.SuccessWithMessage(c, "登录成功", resp)
}

// Logout 退出登录
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearAuthCookies(c)
	response.SuccessWithMessage(c, "已退出登录", nil)
}

// Session 返回当前登录用户，未登录时 user 为 null
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Success(c, gin.H{"user": nil})
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		// Token 有效但用户已被删除，当作未登录
		h.clearAuthCookies(c)
		response.Success(c, gin.H{"user": nil})
		return
	}

	response.Success(c, gin.H{"user": &dto.UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		AvatarURL: user.AvatarURL,
		HasGoogle: user.GoogleID != nil,
	}})
}

// GoogleAuth 跳转到 Google 授权页
// GET /api/v1/auth/google
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")

	state, err := h.stateStore.GenerateState(c.Request.Context(), redirectURI)
	if err != nil {
		response.ServerError(c, "生成授权状态失败")
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.authService.GetGoogleAuthURL(state))
}

// GoogleCallback 处理 Google OAuth 回调，完成后 302 回前端
// GET /api/v1/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.ParamError(c, "缺少授权码")
		return
	}

	state := c.Query("state")
	redirectURI, err := h.stateStore.ValidateState(c.Request.Context(), state)
	if err != nil {
		response.AuthError(c, "授权状态无效或已过期")
		return
	}

	resp, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		response.ServerError(c, "Google 登录失败")
		return
	}

	h.setAuthCookies(c, resp)

	target := h.cfg.Frontend.BaseURL
	if redirectURI != "" {
		target = redirectURI
	}
	c.Redirect(http.StatusFound, target)
}

// setAuthCookies 写入两个 Cookie：HTTP-only 的 JWT 和前端可读的用户信息
func (h *AuthHandler) setAuthCookies(c *gin.Context, resp *dto.LoginResponse) {
	maxAge := h.cfg.JWT.ExpireHours * 3600

	c.SetCookie(middleware.AuthCookieName, resp.Token, maxAge, "/",
		h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)

	if data, err := json.Marshal(resp.User); err == nil {
		c.SetCookie(UserInfoCookieName, url.QueryEscape(string(data)), maxAge, "/",
			h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, false)
	}
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AuthCookieName, "", -1, "/",
		h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, true)
	c.SetCookie(UserInfoCookieName, "", -1, "/",
		h.cfg.Cookie.Domain, h.cfg.Cookie.Secure, false)
}
