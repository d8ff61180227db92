package router

import (
	"time"

	"github.com/NomadCrew/splitly-backend/config"
	"github.com/NomadCrew/splitly-backend/handlers"
	"github.com/NomadCrew/splitly-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config         *config.Config
	Redis          redis.Cmdable // nil disables write rate limiting
	GroupHandler   *handlers.GroupHandler
	ExpenseHandler *handlers.ExpenseHandler
	PersonHandler  *handlers.PersonHandler
	MemberHandler  *handlers.MemberHandler
	DebtorHandler  *handlers.DebtorHandler
	UserHandler    *handlers.UserHandler
	HealthHandler  *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	// Global Middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ErrorHandler())

	// Health and Metrics Routes (no auth)
	r.GET("/health", deps.HealthHandler.DetailedHealth)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/health/readiness", deps.HealthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/v1")
	v1.Use(middleware.AuthMiddleware(&deps.Config.Server))
	if deps.Redis != nil {
		window := time.Duration(deps.Config.RateLimit.WindowSeconds) * time.Second
		v1.Use(middleware.WriteRateLimiter(deps.Redis, deps.Config.RateLimit.WriteRequestsPerMinute, window))
	}
	{
		groupRoutes := v1.Group("/groups")
		{
			groupRoutes.GET("", deps.GroupHandler.ListGroupsHandler)
			groupRoutes.POST("", deps.GroupHandler.CreateGroupHandler)
			groupRoutes.GET("/:id", deps.GroupHandler.GetGroupHandler)
			groupRoutes.PUT("/:id", deps.GroupHandler.UpdateGroupHandler)
			groupRoutes.DELETE("/:id", deps.GroupHandler.DeleteGroupHandler)
			groupRoutes.GET("/:id/expenses", deps.GroupHandler.GroupExpensesHandler)
			groupRoutes.GET("/:id/persons", deps.GroupHandler.GroupPersonsHandler)
			groupRoutes.GET("/:id/debtors", deps.GroupHandler.GroupDebtorsHandler)
			groupRoutes.GET("/:id/members", deps.GroupHandler.GroupMembersHandler)
			groupRoutes.GET("/:id/balances", deps.GroupHandler.GroupBalancesHandler)
		}

		expenseRoutes := v1.Group("/expenses")
		{
			expenseRoutes.GET("", deps.ExpenseHandler.ListExpensesHandler)
			expenseRoutes.POST("", deps.ExpenseHandler.CreateExpenseHandler)
			expenseRoutes.GET("/:id", deps.ExpenseHandler.GetExpenseHandler)
			expenseRoutes.PUT("/:id", deps.ExpenseHandler.UpdateExpenseHandler)
			expenseRoutes.DELETE("/:id", deps.ExpenseHandler.DeleteExpenseHandler)
		}

		personRoutes := v1.Group("/persons")
		{
			personRoutes.GET("", deps.PersonHandler.ListPersonsHandler)
			personRoutes.POST("", deps.PersonHandler.CreatePersonHandler)
			personRoutes.GET("/:id", deps.PersonHandler.GetPersonHandler)
			personRoutes.PUT("/:id", deps.PersonHandler.UpdatePersonHandler)
			personRoutes.DELETE("/:id", deps.PersonHandler.DeletePersonHandler)
		}

		memberRoutes := v1.Group("/members")
		{
			memberRoutes.GET("", deps.MemberHandler.ListMembersHandler)
			memberRoutes.POST("", deps.MemberHandler.AddMemberHandler)
			memberRoutes.GET("/:id", deps.MemberHandler.GetMemberHandler)
			memberRoutes.PUT("/:id", deps.MemberHandler.UpdateMemberHandler)
			memberRoutes.DELETE("/:id", deps.MemberHandler.RemoveMemberHandler)
		}

		debtorRoutes := v1.Group("/debtors")
		{
			debtorRoutes.GET("", deps.DebtorHandler.ListDebtorsHandler)
			debtorRoutes.POST("", deps.DebtorHandler.CreateDebtorHandler)
			debtorRoutes.GET("/:id", deps.DebtorHandler.GetDebtorHandler)
			debtorRoutes.PUT("/:id", deps.DebtorHandler.UpdateDebtorHandler)
			debtorRoutes.DELETE("/:id", deps.DebtorHandler.DeleteDebtorHandler)
		}

		// /users/me/groups resolves to the caller.
		userRoutes := v1.Group("/users")
		{
			userRoutes.GET("/me/groups", deps.UserHandler.MyGroupsHandler)
			userRoutes.GET("/:id/groups", deps.UserHandler.UserGroupsHandler)
		}
	}

	return r
}
