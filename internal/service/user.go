package service

import (
	"github.com/strideapp/stride/internal/model"
	"github.com/strideapp/stride/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

// ByID returns the identity projection of an account (no password hash).
func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}
