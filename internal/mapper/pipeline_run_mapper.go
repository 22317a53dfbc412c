package mapper

import (
	"encoding/json"
	"time"

	"velocity-ai-be/internal/entity"
	"velocity-ai-be/internal/model"

	"gorm.io/datatypes"
)

type PipelineRunMapper struct{}

func NewPipelineRunMapper() *PipelineRunMapper {
	return &PipelineRunMapper{}
}

func (m *PipelineRunMapper) ToEntity(r *model.PipelineRun) *entity.PipelineRun {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	var sources []string
	if len(r.Sources) > 0 {
		_ = json.Unmarshal(r.Sources, &sources)
	}

	return &entity.PipelineRun{
		Id:                r.Id,
		RunKey:            r.RunKey,
		UserId:            r.UserId,
		Mode:              r.Mode,
		UserInput:         r.UserInput,
		Summary:           r.Summary,
		RequiresApproval:  r.RequiresApproval,
		ApprovalStatus:    r.ApprovalStatus,
		ActionType:        r.ActionType,
		ActionDescription: r.ActionDescription,
		ActionStatus:      r.ActionStatus,
		Sources:           sources,
		Status:            entity.PipelineRunStatus(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *PipelineRunMapper) ToModel(r *entity.PipelineRun) *model.PipelineRun {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	var sources datatypes.JSON
	if len(r.Sources) > 0 {
		raw, err := json.Marshal(r.Sources)
		if err == nil {
			sources = datatypes.JSON(raw)
		}
	}

	return &model.PipelineRun{
		Id:                r.Id,
		RunKey:            r.RunKey,
		UserId:            r.UserId,
		Mode:              r.Mode,
		UserInput:         r.UserInput,
		Summary:           r.Summary,
		RequiresApproval:  r.RequiresApproval,
		ApprovalStatus:    r.ApprovalStatus,
		ActionType:        r.ActionType,
		ActionDescription: r.ActionDescription,
		ActionStatus:      r.ActionStatus,
		Sources:           sources,
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *PipelineRunMapper) ToEntities(runs []*model.PipelineRun) []*entity.PipelineRun {
	entities := make([]*entity.PipelineRun, len(runs))
	for i, r := range runs {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
