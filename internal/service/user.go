package service

import (
	"github.com/guardline/guardline/internal/model"
	"github.com/guardline/guardline/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

func (s *UserService) ByEmail(email string) (*model.User, error) {
	return s.userRepository.ByEmail(email)
}
