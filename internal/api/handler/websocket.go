package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/qs3c/uikit_server/internal/api/middleware"
	"github.com/qs3c/uikit_server/internal/model"
	"github.com/qs3c/uikit_server/internal/pkg/jwt"
	"github.com/qs3c/uikit_server/internal/pkg/ws"
	"github.com/qs3c/uikit_server/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: 生产环境需要验证 Origin
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WebSocketHandler struct {
	hub         *ws.Hub
	authService *service.AuthService
	jwtSecret   string
}

func NewWebSocketHandler(hub *ws.Hub, authService *service.AuthService, jwtSecret string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		jwtSecret:   jwtSecret,
	}
}

// Handle 管理后台仪表盘的 WebSocket 连接，仅限管理员
// GET /api/v1/ws?token=xxx（也接受 Cookie 里的 token）
func (h *WebSocketHandler) Handle(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		if cookie, err := c.Cookie(middleware.AuthCookieName); err == nil {
			tokenString = cookie
		}
	}
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	claims, err := jwt.ParseToken(tokenString, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	user, err := h.authService.GetUserByID(claims.UserID)
	if err != nil || user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin only"})
		return
	}

	// 升级连接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &ws.Client{
		UserID: claims.UserID,
		Conn:   conn,
	}

	h.hub.Register(client)

	// 保持连接，读取消息（主要用于检测断开）
	go func() {
		defer h.hub.Unregister(client)
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				break
			}
		}
	}()
}
