package unitofwork

import (
	"context"

	"velocity-ai-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ConversationRepository() contract.ConversationRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ActivityRepository() contract.ActivityRepository
	PipelineRunRepository() contract.PipelineRunRepository
	GraphNodeRepository() contract.GraphNodeRepository
	IntegrationRepository() contract.IntegrationRepository
}
