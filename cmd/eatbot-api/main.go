// README: Entry point; loads config, wires services, starts the webhook server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"eatbot/internal/ai"
	"eatbot/internal/bot"
	"eatbot/internal/config"
	httptransport "eatbot/internal/http"
	"eatbot/internal/http/handlers"
	"eatbot/internal/infra"
	"eatbot/internal/maps"
	"eatbot/internal/modules/conversation"
	"eatbot/internal/modules/profile"
	"eatbot/internal/modules/recommend"
	"eatbot/internal/reply"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	redisClient := infra.NewRedis(cfg.Redis.Addr)

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	placesSvc, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}
	distanceSvc, err := maps.NewDistanceService(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("maps init: %v", err)
	}

	botClient, err := bot.New(cfg.Line.ChannelSecret, cfg.Line.ChannelToken)
	if err != nil {
		log.Fatalf("line init: %v", err)
	}

	historyStore := profile.NewHistoryStore(dbPool)
	if err := historyStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("history schema: %v", err)
	}
	profileSvc := profile.NewService(profile.NewStore(redisClient), historyStore)

	selector := recommend.NewSelector(placesSvc, distanceSvc, provider, cfg.Search.RadiusMeters)
	composer := reply.NewComposer(placesSvc.PhotoURL)
	convSvc := conversation.NewService(
		profileSvc,
		conversation.NewResolver(provider),
		selector,
		provider,
		composer,
		botClient,
	)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Webhook: handlers.NewWebhookHandler(botClient, convSvc),
		Debug:   handlers.NewDebugHandler(placesSvc, provider),
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("eatbot listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
