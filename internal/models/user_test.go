package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"full name preferred", User{FullName: "Alice Carter", FirstName: "A", Email: "a@b.c"}, "Alice Carter"},
		{"first and last", User{FirstName: "Alice", LastName: "Carter", Email: "a@b.c"}, "Alice Carter"},
		{"first only", User{FirstName: "Alice", Email: "a@b.c"}, "Alice"},
		{"last only", User{LastName: "Carter", Email: "a@b.c"}, "Carter"},
		{"email local part", User{Email: "alice@example.com"}, "alice"},
		{"degenerate email", User{Email: "@example.com"}, "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleReader))
	assert.True(t, ValidRole(RoleWriter))
	assert.True(t, ValidRole(RoleAdmin))
	assert.False(t, ValidRole("superuser"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Admin"))
}
