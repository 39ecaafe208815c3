package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredential_HashPassword(t *testing.T) {
	c := &Credential{Email: "a@b.com", Password: "samplepassword"}
	require.NoError(t, c.HashPassword())

	// 明文被替换为哈希
	assert.NotEqual(t, "samplepassword", c.Password)
	assert.True(t, c.ComparePassword("samplepassword"))
	assert.False(t, c.ComparePassword("wrongpassword"))
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
