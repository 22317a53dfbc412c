package mapper

import (
	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/model"
)

type ActivityMapper struct{}

func NewActivityMapper() *ActivityMapper {
	return &ActivityMapper{}
}

func (m *ActivityMapper) ToEntity(a *model.ActivityEntry) *entity.ActivityEntry {
	if a == nil {
		return nil
	}
	return &entity.ActivityEntry{
		Id:        a.Id,
		UserId:    a.UserId,
		Action:    a.Action,
		Source:    a.Source,
		Mode:      a.Mode,
		Project:   a.Project,
		Details:   a.Details,
		CreatedAt: a.CreatedAt,
	}
}

func (m *ActivityMapper) ToModel(a *entity.ActivityEntry) *model.ActivityEntry {
	if a == nil {
		return nil
	}
	return &model.ActivityEntry{
		Id:        a.Id,
		UserId:    a.UserId,
		Action:    a.Action,
		Source:    a.Source,
		Mode:      a.Mode,
		Project:   a.Project,
		Details:   a.Details,
		CreatedAt: a.CreatedAt,
	}
}

func (m *ActivityMapper) ToEntities(entries []*model.ActivityEntry) []*entity.ActivityEntry {
	entities := make([]*entity.ActivityEntry, len(entries))
	for i, a := range entries {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
