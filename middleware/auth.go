package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"
	"time"

	"docman/helper"
	"docman/models"
	"docman/services"

	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

var errAccountGone = models.TokenInvalidError("account no longer exists")

// UserLookup loads the account a token was issued to.
type UserLookup interface {
	GetUserByID(id uint) (*models.User, error)
}

// AuthMiddleware rejects requests without a live access token and stores the
// Caller in the context. The role comes from the account as it is now, not
// from the claims, and a token whose account was deleted is refused.
func AuthMiddleware(tokens services.TokenService, blacklist services.BlacklistService, users UserLookup, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			h.SendError(c, models.ErrNoToken)
			c.Abort()
			return
		}

		revoked, err := blacklist.IsRevoked(c.Request.Context(), tokenString)
		if err != nil {
			h.SendError(c, err)
			c.Abort()
			return
		}
		if revoked {
			h.SendError(c, models.ErrTokenRevoked)
			c.Abort()
			return
		}

		claims, err := tokens.ParseToken(tokenString)
		if err != nil {
			h.SendError(c, err)
			c.Abort()
			return
		}

		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			if _, ok := err.(models.ErrorNotFound); ok {
				err = errAccountGone
			}
			h.SendError(c, err)
			c.Abort()
			return
		}
		// ids can be reused once the newest account is deleted
		if claims.IssuedAt != nil && claims.IssuedAt.Time.Before(user.CreatedAt.Truncate(time.Second)) {
			h.SendError(c, errAccountGone)
			c.Abort()
			return
		}

		caller := claims.Caller()
		caller.RoleID = user.RoleID
		caller.Username = user.Username
		c.Set(callerKey, caller)
		c.Next()
	}
}

// RequireAdmin lets only callers holding the admin role through. It must run
// after AuthMiddleware.
func RequireAdmin(access helper.AccessControl, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := CallerFrom(c)
		if !ok {
			h.SendError(c, models.ErrNoToken)
			c.Abort()
			return
		}

		if !access.IsAdmin(caller.RoleID) {
			h.SendError(c, models.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerFrom returns the Caller stored by AuthMiddleware.
func CallerFrom(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}

// ExtractToken looks for the access token in the access-token header, a
// bearer Authorization header, a "token" body field and the "token" query
// parameter, in that order.
func ExtractToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader("access-token")); token != "" {
		return token
	}

	if auth := c.GetHeader("Authorization"); len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		if token := strings.TrimSpace(auth[7:]); token != "" {
			return token
		}
	}

	if token := bodyToken(c); token != "" {
		return token
	}

	return c.Query("token")
}

// bodyToken reads the token field of a JSON or form body and puts the body
// back for the handler.
func bodyToken(c *gin.Context) string {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}

	contentType := c.ContentType()
	if contentType != gin.MIMEJSON && contentType != gin.MIMEPOSTForm {
		return ""
	}

	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}

	if contentType == gin.MIMEPOSTForm {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return ""
		}
		return values.Get("token")
	}

	var payload models.LogoutRequest
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Token
}
