package middleware

import (
	"net/http"
	"strings"

	userRepo "lexaid/database/repository/user"
	"lexaid/models"
	"lexaid/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// CurrentUserKey is the context key holding the authenticated account.
const CurrentUserKey = "currentUser"

// AuthMiddleware validates the bearer token and loads the account into the
// request context. Token hashes are checked against the Redis auth cache
// first, falling back to the stored hash on a miss, so sign-out and
// deactivation take effect even with a valid signature.
func AuthMiddleware(users userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		ctx := c.Request.Context()

		cache := utils.GetAuthCacheClient()
		cacheKey := utils.AuthCachePrefix + userID
		cachedHash, cacheErr := cache.Get(ctx, cacheKey).Result()
		if cacheErr == nil && cachedHash == computedHash {
			acct, err := users.GetByID(ctx, userID)
			if err != nil || acct.UserStatus != models.UserActive {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found or deactivated"})
				return
			}
			c.Set(CurrentUserKey, *acct)
			c.Next()
			return
		}

		// Cache miss or mismatch: check the stored hash.
		acct, err := users.GetByIDWithProjection(ctx, userID, bson.M{})
		if err != nil || acct == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
			return
		}
		if acct.TokenHash == "" || acct.TokenHash != computedHash {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token revoked"})
			return
		}
		if acct.UserStatus != models.UserActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account deactivated"})
			return
		}

		// Re-prime the cache for subsequent requests.
		_ = cache.Set(ctx, cacheKey, computedHash, utils.AuthCacheTTL).Err()

		acct.PasswordHash = ""
		acct.TokenHash = ""
		c.Set(CurrentUserKey, *acct)
		c.Next()
	}
}

// CurrentUser pulls the authenticated account out of the request context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, ok := c.Get(CurrentUserKey)
	if !ok {
		return models.User{}, false
	}
	acct, ok := val.(models.User)
	return acct, ok
}
