package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"venuebook/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	session, err := h.Admin.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.log.Info("admin login failed", slog.String("username", req.Username), slog.String("client_ip", c.ClientIP()))
		h.writeError(c, "admin login", err)
		return
	}
	h.log.Info("admin logged in", slog.String("username", session.Admin.Username))
	c.JSON(http.StatusOK, gin.H{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	})
}

func adminName(c *gin.Context) string {
	v, ok := c.Get(adminClaimsKey)
	if !ok {
		return ""
	}
	claims, ok := v.(auth.Claims)
	if !ok {
		return ""
	}
	return claims.Username
}
