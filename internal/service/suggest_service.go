package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"workpanel-api/internal/client"
	"workpanel-api/internal/dto"
	"workpanel-api/internal/response"
)

// SuggestService defines the interface for tag suggestion business logic
type SuggestService interface {
	SuggestTags(ctx context.Context, boardID, userID uuid.UUID, req *dto.SuggestTagsRequest) (*dto.SuggestTagsResponse, error)
}

// suggestServiceImpl is the implementation of SuggestService
type suggestServiceImpl struct {
	suggestClient client.SuggestClient
	roleService   RoleService
	logger        *zap.Logger
}

// NewSuggestService creates a new instance of SuggestService
func NewSuggestService(
	suggestClient client.SuggestClient,
	roleService RoleService,
	logger *zap.Logger,
) SuggestService {
	return &suggestServiceImpl{
		suggestClient: suggestClient,
		roleService:   roleService,
		logger:        logger,
	}
}

// SuggestTags asks the suggestion service for tags for a draft task
func (s *suggestServiceImpl) SuggestTags(ctx context.Context, boardID, userID uuid.UUID, req *dto.SuggestTagsRequest) (*dto.SuggestTagsResponse, error) {
	if err := s.roleService.RequireBoardEdit(ctx, boardID, userID); err != nil {
		return nil, err
	}

	tags, err := s.suggestClient.SuggestTags(ctx, req.Title, req.Description)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeUpstream, "Tag suggestion service unavailable", err.Error())
	}
	if tags == nil {
		tags = []string{}
	}
	return &dto.SuggestTagsResponse{SuggestedTags: tags}, nil
}
