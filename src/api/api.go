package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/siiddhantt/ai-chat-assistant/src/api/ai"
	"github.com/siiddhantt/ai-chat-assistant/src/api/config"
	"github.com/siiddhantt/ai-chat-assistant/src/api/data"
	"github.com/siiddhantt/ai-chat-assistant/src/api/tools"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
	"github.com/siiddhantt/ai-chat-assistant/src/api/webserver"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&types.User{}, &types.Tenant{}, &types.Customer{},
	&types.Conversation{}, &types.Message{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

// seedDemoTenant creates the demo business the widget examples point at.
func seedDemoTenant(db *gorm.DB) {
	email := "demo@techhub.store"
	var owner types.User
	if err := db.FirstOrCreate(&owner, types.User{
		Email:        &email,
		Name:         "Demo Owner",
		Role:         types.RoleOwner,
		AuthProvider: "system",
	}).Error; err != nil {
		log.Printf("seed owner: %v", err)
		return
	}

	var tenant types.Tenant
	if err := db.FirstOrCreate(&tenant, types.Tenant{
		Slug:     "demo",
		Name:     "TechHub Store",
		OwnerID:  owner.ID,
		Settings: `{"welcomeMessage":"Welcome to TechHub Store! How can we help you today?"}`,
	}).Error; err != nil {
		log.Printf("seed tenant: %v", err)
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	seedDemoTenant(db)

	rdb := data.MustRedis(cfg.RedisURL)

	registry := tools.NewRegistry()
	registry.Register(tools.NewScheduleAppointment())

	provider := ai.NewProvider(ai.FactoryConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		Registry: registry,
	})
	llm := ai.NewService(provider, registry, cfg.MaxToolIterations)

	// Internal chat answers without tools; its provider never advertises any.
	plainProvider := ai.NewProvider(ai.FactoryConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
	})
	plainLLM := ai.NewService(plainProvider, tools.NewRegistry(), cfg.MaxToolIterations)

	router := webserver.New(cfg, db, rdb, llm, plainLLM)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("chat API listening on %s (provider=%s)", cfg.Port, cfg.LLMProvider)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
