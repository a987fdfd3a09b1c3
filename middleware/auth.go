package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

const (
	// ContextAdminIDKey stores the authenticated admin ID in Gin context.
	ContextAdminIDKey = "admin_id"
	// ContextAdminRoleKey stores the admin role.
	ContextAdminRoleKey = "admin_role"
	// ContextCustomerIDKey stores the authenticated customer identity string.
	ContextCustomerIDKey = "customer_id"
	// ContextTokenKey stores the raw bearer token for logout blacklisting.
	ContextTokenKey = "bearer_token"
)

// AdminRequired ensures the request carries a valid admin JWT.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := parseBearer(ctx)
		if !ok {
			return
		}
		if claims.Principal != utils.PrincipalAdmin || claims.AdminID == 0 {
			utils.Error(ctx, http.StatusForbidden, 40301, utils.KindValidation, "admin access required")
			ctx.Abort()
			return
		}
		ctx.Set(ContextAdminIDKey, claims.AdminID)
		ctx.Set(ContextAdminRoleKey, claims.Role)
		ctx.Next()
	}
}

// SuperAdminRequired ensures the authenticated admin holds the super_admin
// role. It must run after AdminRequired.
func SuperAdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		role, _ := ctx.Get(ContextAdminRoleKey)
		if role != models.RoleSuperAdmin {
			utils.Error(ctx, http.StatusForbidden, 40302, utils.KindValidation, "super admin access required")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// CustomerRequired ensures the request carries a valid customer JWT.
func CustomerRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims, ok := parseBearer(ctx)
		if !ok {
			return
		}
		if claims.Principal != utils.PrincipalCustomer || claims.CustomerID == "" {
			utils.Error(ctx, http.StatusForbidden, 40303, utils.KindValidation, "customer access required")
			ctx.Abort()
			return
		}
		ctx.Set(ContextCustomerIDKey, claims.CustomerID)
		ctx.Next()
	}
}

func parseBearer(ctx *gin.Context) (*utils.Claims, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40101, utils.KindValidation, "authorization header missing")
		ctx.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		utils.Error(ctx, http.StatusUnauthorized, 40102, utils.KindValidation, "invalid authorization header format")
		ctx.Abort()
		return nil, false
	}

	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40103, utils.KindValidation, "empty bearer token")
		ctx.Abort()
		return nil, false
	}

	if utils.IsTokenBlacklisted(tokenString) {
		utils.Error(ctx, http.StatusUnauthorized, 40104, utils.KindValidation, "token revoked")
		ctx.Abort()
		return nil, false
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, utils.KindValidation, "invalid token")
		ctx.Abort()
		return nil, false
	}

	ctx.Set(ContextTokenKey, tokenString)
	return claims, true
}
