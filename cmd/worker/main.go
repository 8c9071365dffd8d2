package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/creatorloop/creatorloop-api/adapters/event"
	"github.com/creatorloop/creatorloop-api/adapters/marketplace"
	"github.com/creatorloop/creatorloop-api/adapters/persistence"
	storefrontUC "github.com/creatorloop/creatorloop-api/internal/application/usecase/storefront"
	"github.com/creatorloop/creatorloop-api/internal/config"
	"github.com/creatorloop/creatorloop-api/internal/domain/section"
	"github.com/creatorloop/creatorloop-api/internal/domain/user"
	"github.com/creatorloop/creatorloop-api/pkg/logger"
)

type snapshotRefresher interface {
	RefreshSnapshots(ctx context.Context, ownerID uuid.UUID) error
}

type profileInvalidator interface {
	Invalidate(ctx context.Context, username string)
}

// sectionEventProcessor applies one section event to derived state. A
// returned error means the offset must stay uncommitted so the consumer
// group redelivers the message.
type sectionEventProcessor struct {
	userRepo   user.Repository
	cache      profileInvalidator
	storefront snapshotRefresher
}

func (p *sectionEventProcessor) process(ctx context.Context, payload event.SectionEventPayload) error {
	// Any section change invalidates the owner's cached public profile.
	username := payload.Username
	if username == "" {
		if u, err := p.userRepo.FindByID(ctx, payload.OwnerID); err == nil {
			username = u.Username
		}
	}
	if username != "" {
		p.cache.Invalidate(ctx, username)
	}

	if payload.SectionType == string(section.TypeStorefront) {
		if err := p.storefront.RefreshSnapshots(ctx, payload.OwnerID); err != nil {
			return fmt.Errorf("refresh storefront snapshots for owner %s: %w", payload.OwnerID, err)
		}
	}
	return nil
}

// The worker keeps derived state fresh after section changes: it drops the
// cached public profile and re-reads marketplace snapshots for storefront
// sections.
func main() {
	fmt.Println("Starting CreatorLoop Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Repositories and clients
	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	sectionRepo := persistence.NewPostgresSectionRepo(dbPool, appLogger)
	cache := persistence.NewRedisCache(redisClient, appLogger)
	marketClient := marketplace.NewHTTPClient(cfg)

	storefrontUseCase := storefrontUC.NewStorefrontUseCase(sectionRepo, marketClient, appLogger)

	processor := &sectionEventProcessor{
		userRepo:   userRepo,
		cache:      cache,
		storefront: storefrontUseCase,
	}

	// Kafka Consumer
	sectionConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicSectionEvents,
		GroupID:  "section-processor-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer sectionConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicSectionEvents)

	ctx := context.Background()
	for {
		msg, err := sectionConsumer.FetchMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to fetch message from Kafka: %v", err)
			continue
		}

		var payload event.SectionEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			// Malformed messages can never succeed; commit and move on.
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(sectionConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for SectionID: %s", payload.EventType, payload.SectionID)

		if err := processor.process(ctx, payload); err != nil {
			// Offset stays uncommitted; the group redelivers the message.
			log.Printf("ERROR: %v. Will retry.", err)
			continue
		}

		commitMessage(sectionConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
