package ioc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeanName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		declared, typeName, want string
	}{
		{"", "UserService", "userService"},
		{"", "userService", "userService"},
		{"", "URLParser", "uRLParser"},
		{"", "Étage", "étage"},
		{"", "A", "a"},
		{"", "", ""},
		{"svc", "UserService", "svc"},
		{"Svc", "", "Svc"},
	}

	for _, tt := range tests {
		t.Run(tt.declared+"/"+tt.typeName, func(t *testing.T) {
			assert.Equal(t, tt.want, BeanName(tt.declared, tt.typeName))
		})
	}
}

func TestNormalizePackage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com/app", normalizePackage(" example.com/app/ "))
	assert.Equal(t, "example.com/app", normalizePackage("example.com/app/..."))
	assert.Equal(t, "", normalizePackage("  "))
}

func TestUnderPackage(t *testing.T) {
	t.Parallel()

	assert.True(t, underPackage("example.com/app", "example.com/app"))
	assert.True(t, underPackage("example.com/app/services", "example.com/app"))
	assert.False(t, underPackage("example.com/apps", "example.com/app"))
	assert.False(t, underPackage("example.com", "example.com/app"))
	assert.False(t, underPackage("example.com/app", ""))
}
