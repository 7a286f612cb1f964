package webserver

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/siiddhantt/ai-chat-assistant/src/api/ai"
	"github.com/siiddhantt/ai-chat-assistant/src/api/config"
	"gorm.io/gorm"
)

// New builds the engine. llm drives the tenant-scoped pipeline and carries
// the tool registry; plainLLM serves the internal endpoints without tools.
func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, llm, plainLLM *ai.Service) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, db, rdb, llm, plainLLM)
	return g
}

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, llm, plainLLM *ai.Service) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)
	authH := NewAuth(db, secret)
	chatH := NewChat(db, plainLLM)
	publicH := NewPublicChat(db, rdb, llm)
	visitorH := NewVisitor(db)
	ownerH := NewOwner(db)

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)

	api := r.Group("/api")
	{
		api.GET("/health", health)

		api.POST("/auth/owner/register", authH.OwnerRegister)
		api.POST("/auth/owner/login", authH.OwnerLogin)
		api.POST("/auth/customer/register", authH.CustomerRegister)
		api.POST("/auth/customer/login", authH.CustomerLogin)
		api.GET("/auth/me", JWTMiddleware(secret), authH.Me)

		public := api.Group("/chat/:slug")
		{
			public.GET("/info", publicH.Info)
			public.POST("/message", publicH.Message)
			public.GET("/conversations", publicH.Conversations)
			public.GET("/conversations/:conversationId", publicH.History)
		}

		api.POST("/internal/chat/message", chatH.Message)
		api.GET("/internal/chat/history/:conversationId", chatH.History)
		api.GET("/internal/chat/conversations", chatH.Conversations)
		api.DELETE("/internal/chat/conversations/:conversationId", chatH.Delete)

		api.GET("/visitor/conversations", visitorH.Conversations)
		api.DELETE("/visitor/conversations/:conversationId", visitorH.DeleteConversation)

		owner := api.Group("/owner")
		owner.Use(JWTMiddleware(secret))
		{
			owner.GET("/conversations", ownerH.Conversations)
			owner.GET("/conversations/:conversationId", ownerH.ConversationDetails)
			owner.PATCH("/conversations/:conversationId/status", ownerH.UpdateStatus)
			owner.POST("/conversations/:conversationId/convert", ownerH.ConvertLead)
			owner.GET("/leads", ownerH.Leads)
			owner.GET("/dashboard/stats", ownerH.DashboardStats)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "code": "NOT_FOUND"})
	})
}
