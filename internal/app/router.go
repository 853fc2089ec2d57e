// internal/app/router.go
package app

import (
	"net/http"

	"insurance-service/internal/domain/user"
	activityHandler "insurance-service/internal/handlers/activity"
	authHandler "insurance-service/internal/handlers/auth"
	claimHandler "insurance-service/internal/handlers/claim"
	customerHandler "insurance-service/internal/handlers/customer"
	dashboardHandler "insurance-service/internal/handlers/dashboard"
	policyHandler "insurance-service/internal/handlers/policy"
	"insurance-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth      *authHandler.AuthHandler
	Customer  *customerHandler.CustomerHandler
	Policy    *policyHandler.PolicyHandler
	Claim     *claimHandler.ClaimHandler
	Activity  *activityHandler.ActivityHandler
	Dashboard *dashboardHandler.DashboardHandler
}

// SetupRouter builds the gin engine with the full route tree. Role checks are
// applied per group so a reader can see exactly who reaches what.
func SetupRouter(h *Handlers, authMW *middleware.AuthMiddleware, allowedOrigins []string, logger *zap.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RecoveryMiddleware(logger))
	engine.Use(middleware.LoggingMiddleware(logger))
	engine.Use(middleware.CORSMiddleware(allowedOrigins))

	api := engine.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public authentication endpoints.
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
	}

	// Authenticated endpoints shared by both roles.
	authed := api.Group("/auth")
	authed.Use(authMW.Auth())
	{
		authed.POST("/logout", h.Auth.Logout)
		authed.PUT("/change-password", h.Auth.ChangePassword)
		authed.GET("/me", h.Auth.Me)
	}

	// Administrator surface.
	admin := api.Group("/admin")
	admin.Use(authMW.Auth(), authMW.RequireRole(user.RoleAdmin))
	{
		admin.POST("/customers", h.Customer.CreateCustomer)
		admin.GET("/customers", h.Customer.GetAllCustomers)
		admin.GET("/customers/:id", h.Customer.GetCustomerByID)

		admin.POST("/policies", h.Policy.CreatePolicy)
		admin.GET("/policies", h.Policy.GetAllPolicies)
		admin.GET("/policies/:id", h.Policy.GetPolicyByID)
		admin.POST("/policies/customers/:customerId/assign", h.Policy.AssignPolicy)

		admin.GET("/claims", h.Claim.GetAllClaims)
		admin.PUT("/claims/:id/status", h.Claim.UpdateClaimStatus)

		admin.GET("/activity", h.Activity.GetActivityLogs)
		admin.GET("/dashboard/stats", h.Dashboard.GetAdminStats)
	}

	// Customer surface.
	cust := api.Group("/customer")
	cust.Use(authMW.Auth(), authMW.RequireRole(user.RoleCustomer))
	{
		cust.GET("/policies", h.Policy.GetMyPolicies)
		cust.POST("/claims", h.Claim.FileClaim)
		cust.GET("/claims", h.Claim.GetMyClaims)
		cust.GET("/dashboard", h.Dashboard.GetCustomerStats)
	}

	return engine
}
