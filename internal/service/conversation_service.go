// FILE: internal/service/conversation_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"velocity-ai-be/internal/dto"
	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/repository/specification"
	"velocity-ai-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IConversationService interface {
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	Rename(ctx context.Context, userId uuid.UUID, id uuid.UUID, title string) (*dto.GetAllConversationsResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type conversationService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationService(uowFactory unitofwork.RepositoryFactory) IConversationService {
	return &conversationService{uowFactory: uowFactory}
}

func (cs *conversationService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllConversationsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversations, err := uow.ConversationRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllConversationsResponse, 0, len(conversations))
	for _, c := range conversations {
		result = append(result, &dto.GetAllConversationsResponse{
			Id:        c.Id,
			Title:     c.Title,
			Mode:      c.Mode,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	return result, nil
}

func (cs *conversationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	title := req.Title
	if title == "" {
		title = "New Chat"
	}
	mode := req.Mode
	if mode == "" {
		mode = "personal"
	}

	conversation := entity.Conversation{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     title,
		Mode:      mode,
		CreatedAt: time.Now(),
	}
	if err := uow.ConversationRepository().Create(ctx, &conversation); err != nil {
		return nil, err
	}

	return &dto.CreateConversationResponse{Id: conversation.Id}, nil
}

func (cs *conversationService) Rename(ctx context.Context, userId uuid.UUID, id uuid.UUID, title string) (*dto.GetAllConversationsResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, fmt.Errorf("conversation not found")
	}

	now := time.Now()
	conversation.Title = title
	conversation.UpdatedAt = &now
	if err := uow.ConversationRepository().Update(ctx, conversation); err != nil {
		return nil, err
	}

	return &dto.GetAllConversationsResponse{
		Id:        conversation.Id,
		Title:     conversation.Title,
		Mode:      conversation.Mode,
		CreatedAt: conversation.CreatedAt,
		UpdatedAt: conversation.UpdatedAt,
	}, nil
}

func (cs *conversationService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	conversation, err := uow.ConversationRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if conversation == nil {
		return fmt.Errorf("conversation not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteByConversationId(ctx, id); err != nil {
		return err
	}
	if err := uow.ConversationRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}
