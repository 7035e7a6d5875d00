package service

import (
	"context"

	"ai-videobrain-be/internal/dto"
	"ai-videobrain-be/internal/repository/specification"
	"ai-videobrain-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ISceneService interface {
	List(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) ([]*dto.SceneResponse, error)
}

type sceneService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewSceneService(uowFactory unitofwork.RepositoryFactory) ISceneService {
	return &sceneService{uowFactory: uowFactory}
}

func (s *sceneService) List(ctx context.Context, userId uuid.UUID, projectId uuid.UUID) ([]*dto.SceneResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scenes, err := uow.SceneRepository().FindAll(ctx,
		specification.ByProject{ProjectID: projectId},
		specification.ByUser{UserID: userId},
		specification.SceneOrder{},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SceneResponse, len(scenes))
	for i, sc := range scenes {
		responses[i] = &dto.SceneResponse{
			Id:             sc.Id,
			Name:           sc.Name,
			Content:        sc.Content,
			Ordinal:        sc.Ordinal,
			DurationFrames: sc.DurationFrames,
			CreatedAt:      sc.CreatedAt,
			UpdatedAt:      sc.UpdatedAt,
		}
	}
	return responses, nil
}
