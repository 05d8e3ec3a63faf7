package apihandlers

import (
	"log/slog"
	"net/http"
	"time"

	mw "github.com/the-deep/qber-backend/pkg/apihelpers/middlewares"
	jwthandling "github.com/the-deep/qber-backend/pkg/jwt-handling"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddEditorAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signin-with-idp", mw.RequirePayload(), h.signInWithIdP)
	auth.GET("/renew-token", mw.GetAndValidateEditorUserJWT(h.tokenSignKey), h.renewToken)
}

// SignInRequest is the request body for the signin-with-idp endpoint
type SignInRequest struct {
	Sub        string   `json:"sub"`
	Roles      []string `json:"roles"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	InstanceID string   `json:"instanceId"`
}

// signInWithIdP exchanges an identity asserted by the upstream identity
// provider for an editor token of this service.
func (h *HttpEndpoints) signInWithIdP(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.isInstanceAllowed(req.InstanceID) {
		slog.Warn("signInWithIdP: instance not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusForbidden, gin.H{"error": "instance not allowed"})
		return
	}

	if req.Sub == "" {
		slog.Warn("signInWithIdP: no sub")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing sub"})
		return
	}

	isAdmin := false
	for _, role := range req.Roles {
		if role == "admin" {
			isAdmin = true
			break
		}
	}

	token, err := jwthandling.GenerateNewEditorUserToken(
		h.tokenExpiresIn,
		req.Sub,
		req.InstanceID,
		isAdmin,
		map[string]string{},
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("signInWithIdP: failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	slog.Info("editor signed in", slog.String("instanceID", req.InstanceID), slog.String("sub", req.Sub))
	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresAt":   time.Now().Add(h.tokenExpiresIn).Unix(),
		"isAdmin":     isAdmin,
	})
}

// renewToken issues a fresh token for a still valid one.
func (h *HttpEndpoints) renewToken(c *gin.Context) {
	claims := tokenClaims(c)

	token, err := jwthandling.GenerateNewEditorUserToken(
		h.tokenExpiresIn,
		claims.Subject,
		claims.InstanceID,
		claims.IsAdmin,
		claims.Payload,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("renewToken: failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresAt":   time.Now().Add(h.tokenExpiresIn).Unix(),
	})
}
