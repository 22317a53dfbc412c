// FILE: internal/service/polling_service.go
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"velocity-ai-be/internal/dto"

	gocache "github.com/patrickmn/go-cache"
)

// IPollingService watches the connected integrations for new activity
// and hands anything unseen to the consumer via the in-process bus.
type IPollingService interface {
	Start(ctx context.Context)
}

type pollingService struct {
	dashboard        IDashboardService
	publisherService IPublisherService
	interval         time.Duration
	seen             *gocache.Cache
}

func NewPollingService(
	dashboard IDashboardService,
	publisherService IPublisherService,
	interval time.Duration,
) IPollingService {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &pollingService{
		dashboard:        dashboard,
		publisherService: publisherService,
		interval:         interval,
		// Seen ids age out after a day so the cache cannot grow forever.
		seen: gocache.New(24*time.Hour, 1*time.Hour),
	}
}

func (ps *pollingService) Start(ctx context.Context) {
	log.Printf("[INFO] Background polling started. Checking for new activity every %s", ps.interval)

	ticker := time.NewTicker(ps.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Printf("[INFO] Background polling stopped")
				return
			case <-ticker.C:
				ps.poll(ctx)
			}
		}
	}()
}

func (ps *pollingService) poll(ctx context.Context) {
	updates := ps.dashboard.GetUpdates()

	newUpdates := make([]dto.IntegrationUpdateItem, 0)
	for _, u := range updates {
		if _, found := ps.seen.Get(u.Id); found {
			continue
		}
		newUpdates = append(newUpdates, dto.IntegrationUpdateItem{
			Id:        u.Id,
			Message:   u.Message,
			Source:    u.Source,
			Timestamp: u.Timestamp,
			Project:   u.Project,
		})
	}
	if len(newUpdates) == 0 {
		return
	}

	log.Printf("[INFO] Found %d new updates. Sending to AI for analysis...", len(newUpdates))

	payload, err := json.Marshal(dto.IntegrationUpdatesMessage{Updates: newUpdates})
	if err != nil {
		log.Printf("[ERROR] Failed to marshal updates message: %v", err)
		return
	}
	if err := ps.publisherService.Publish(ctx, payload); err != nil {
		log.Printf("[ERROR] Failed to publish updates message: %v", err)
		return
	}

	// Mark as seen only after a successful publish, so a failed cycle
	// retries the same updates next tick.
	for _, u := range newUpdates {
		ps.seen.Set(u.Id, struct{}{}, gocache.DefaultExpiration)
	}
}
