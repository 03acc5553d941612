package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-ioc/app/repository"
	"github.com/km-arc/go-ioc/app/services"
	"github.com/km-arc/go-ioc/framework/config"
	"github.com/km-arc/go-ioc/framework/ioc"
)

func newContainer(t *testing.T) *ioc.Container {
	t.Helper()
	c := ioc.New()
	c.Instance("logger", zap.NewNop())
	require.NoError(t, c.Scan(config.DefaultScanPackage))
	return c
}

func TestUserService_WiredByName(t *testing.T) {
	c := newContainer(t)

	svc := ioc.MustResolve[*services.UserService](c, "userService")
	repo := ioc.MustResolve[*repository.UserRepository](c, "userRepository")

	alice, err := svc.CreateUser("Alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.ID)

	stored, err := repo.FindByID(alice.ID)
	require.NoError(t, err, "the service must share the userRepository singleton")
	assert.Equal(t, alice, stored)

	again := ioc.MustResolve[*services.UserService](c, "userService")
	assert.Same(t, svc, again)
}

func TestUserService_CreateUser_BlankName(t *testing.T) {
	svc := ioc.MustResolve[*services.UserService](newContainer(t), "userService")

	_, err := svc.CreateUser("   ", "")
	assert.ErrorIs(t, err, services.ErrNameRequired)
	assert.Empty(t, svc.Users())
}

func TestUserService_GetUserByID(t *testing.T) {
	svc := ioc.MustResolve[*services.UserService](newContainer(t), "userService")

	bob, err := svc.CreateUser("Bob", "")
	require.NoError(t, err)

	got, err := svc.GetUserByID(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", got.Name)

	_, err = svc.GetUserByID(99)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserService_UpdateAndDelete(t *testing.T) {
	svc := ioc.MustResolve[*services.UserService](newContainer(t), "userService")

	ann, err := svc.CreateUser("Ann", "")
	require.NoError(t, err)

	renamed, err := svc.UpdateUser(ann.ID, "Anna", "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, renamed.ID)

	got, err := svc.GetUserByID(ann.ID)
	require.NoError(t, err)
	assert.Equal(t, renamed, got)

	_, err = svc.UpdateUser(ann.ID, " ", "")
	assert.ErrorIs(t, err, services.ErrNameRequired)

	require.NoError(t, svc.DeleteUser(ann.ID))
	assert.ErrorIs(t, svc.DeleteUser(ann.ID), repository.ErrUserNotFound)
	_, err = svc.UpdateUser(ann.ID, "Anna", "")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserService_Users_OrderedByID(t *testing.T) {
	svc := ioc.MustResolve[*services.UserService](newContainer(t), "userService")

	for _, name := range []string{"Ann", "Ben", "Cid"} {
		_, err := svc.CreateUser(name, "")
		require.NoError(t, err)
	}

	users := svc.Users()
	require.Len(t, users, 3)
	for i, u := range users {
		assert.Equal(t, int64(i+1), u.ID)
	}
}

func TestUserService_MissingLogger(t *testing.T) {
	c := ioc.New()
	require.NoError(t, c.Scan(config.DefaultScanPackage))

	_, err := c.GetBean("userService")
	assert.ErrorIs(t, err, ioc.ErrNotFound)
	assert.Contains(t, err.Error(), "userRepository")
	assert.False(t, c.Resolved("userRepository"))
}
