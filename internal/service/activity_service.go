// FILE: internal/service/activity_service.go
package service

import (
	"context"
	"log"
	"time"

	"velocity-ai-be/internal/dto"
	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/specification"
	"velocity-ai-be/internal/repository/unitofwork"
	"velocity-ai-be/pkg/events"
	pktNats "velocity-ai-be/pkg/nats"

	"github.com/google/uuid"
)

// maxActivityEntries caps the feed; older entries are trimmed so the
// table behaves like a fixed-size ring.
const maxActivityEntries = 200

type IActivityService interface {
	// Append records one entry and trims the feed. It never returns an
	// error to callers: activity logging must not fail the operation
	// that produced it.
	Append(ctx context.Context, entry *entity.ActivityEntry)
	GetFeed(ctx context.Context, mode string, limit int) (*dto.ActivityFeedResponse, error)
}

type activityService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
}

func NewActivityService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher) IActivityService {
	return &activityService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (as *activityService) Append(ctx context.Context, entry *entity.ActivityEntry) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	if entry.Id == uuid.Nil {
		entry.Id = uuid.New()
	}
	if entry.Source == "" {
		entry.Source = "system"
	}
	if entry.Mode == "" {
		entry.Mode = "workspace"
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := uow.ActivityRepository().Create(ctx, entry); err != nil {
		log.Printf("[WARN] Failed to record activity entry: %v", err)
		return
	}
	if err := uow.ActivityRepository().TrimOldest(ctx, maxActivityEntries); err != nil {
		log.Printf("[WARN] Failed to trim activity feed: %v", err)
	}

	if as.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "AGENT_ACTIVITY",
			Data: map[string]interface{}{
				"summary": entry.Action,
				"source":  entry.Source,
				"details": entry.Details,
				"mode":    entry.Mode,
			},
			OccurredAt: time.Now(),
		}
		if err := as.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish AGENT_ACTIVITY event: %v", err)
		}
	}
}

func (as *activityService) GetFeed(ctx context.Context, mode string, limit int) (*dto.ActivityFeedResponse, error) {
	uow := as.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 || limit > maxActivityEntries {
		limit = maxActivityEntries
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: 0},
	}
	countSpecs := []specification.Specification{}
	if mode != "" {
		specs = append(specs, specification.ByMode{Mode: mode})
		countSpecs = append(countSpecs, specification.ByMode{Mode: mode})
	}

	entries, err := uow.ActivityRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	total, err := uow.ActivityRepository().Count(ctx, countSpecs...)
	if err != nil {
		return nil, err
	}

	resp := &dto.ActivityFeedResponse{
		Entries: make([]dto.ActivityEntryResponse, 0, len(entries)),
		Total:   total,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.ActivityEntryResponse{
			Id:        e.Id,
			Action:    e.Action,
			Source:    e.Source,
			Mode:      e.Mode,
			Project:   e.Project,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	return resp, nil
}
