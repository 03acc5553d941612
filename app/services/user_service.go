package services

import (
	"errors"
	"strings"

	"github.com/km-arc/go-ioc/app/models"
	"github.com/km-arc/go-ioc/app/repository"
	"github.com/km-arc/go-ioc/framework/ioc"
)

// ErrNameRequired is returned by CreateUser for a blank name.
var ErrNameRequired = errors.New("user name is required")

// UserService holds the user use cases. The repository is injected by name.
type UserService struct {
	userRepository *repository.UserRepository `inject:""`
}

func init() {
	ioc.Component[UserService]()
}

// CreateUser stores a new user and returns it with its id.
func (s *UserService) CreateUser(name, email string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrNameRequired
	}
	return s.userRepository.Save(models.User{Name: name, Email: email}), nil
}

// GetUserByID returns the user stored under id.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	return s.userRepository.FindByID(id)
}

// UpdateUser renames the user stored under id and replaces its email.
func (s *UserService) UpdateUser(id int64, name, email string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, ErrNameRequired
	}
	u := models.User{ID: id, Name: name, Email: email}
	if err := s.userRepository.Update(u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// DeleteUser removes the user stored under id.
func (s *UserService) DeleteUser(id int64) error {
	return s.userRepository.Delete(id)
}

// Users returns every stored user.
func (s *UserService) Users() []models.User {
	return s.userRepository.All()
}
