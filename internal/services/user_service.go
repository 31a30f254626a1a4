package services

import (
	"context"

	"github.com/ReFOiL/fitboddy-admin/internal/models"
	"github.com/ReFOiL/fitboddy-admin/internal/repository"
)

type userStore interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	ListAnswers(ctx context.Context, userID int64) ([]models.UserAnswerGroup, error)
}

// UserService is a read-only projection of the bot's users for the admin panel.
type UserService struct {
	userRepo userStore
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUserDetail(ctx context.Context, id int64) (*models.UserDetail, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	answers, err := s.userRepo.ListAnswers(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserDetail{User: *user, Answers: answers}, nil
}
