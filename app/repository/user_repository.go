package repository

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-ioc/app/models"
	"github.com/km-arc/go-ioc/framework/ioc"
)

// ErrUserNotFound is returned by FindByID for an unknown id.
var ErrUserNotFound = errors.New("user not found")

// UserRepository keeps users in memory. It is registered as the
// "userRepository" bean and receives the application logger.
type UserRepository struct {
	logger *zap.Logger `inject:""`

	mu     sync.RWMutex
	nextID int64
	users  map[int64]models.User
}

func init() {
	ioc.Component[UserRepository]()
}

// Initialize prepares the store once the logger is injected.
func (r *UserRepository) Initialize() error {
	r.users = make(map[int64]models.User)
	r.logger = r.logger.Named("userRepository")
	return nil
}

// Save assigns an id to u and stores it.
func (r *UserRepository) Save(u models.User) models.User {
	r.mu.Lock()
	r.nextID++
	u.ID = r.nextID
	r.users[u.ID] = u
	r.mu.Unlock()

	r.logger.Info("saving user", zap.Int64("id", u.ID), zap.String("name", u.Name))
	return u
}

// FindByID returns the user stored under id.
func (r *UserRepository) FindByID(id int64) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

// Update replaces the user stored under u.ID.
func (r *UserRepository) Update(u models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	r.users[u.ID] = u
	return nil
}

// Delete removes the user stored under id.
func (r *UserRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// All returns every stored user ordered by id.
func (r *UserRepository) All() []models.User {
	r.mu.RLock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	r.mu.RUnlock()

	slices.SortFunc(users, func(a, b models.User) int { return cmp.Compare(a.ID, b.ID) })
	return users
}
