package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, hash.Matches("secret1"))
	assert.False(t, hash.Matches("secret2"))
	assert.False(t, hash.Matches(""))
	assert.NotContains(t, hash.String(), "secret1")
}

func TestHashPassword_LongPasswords(t *testing.T) {
	long := strings.Repeat("a", 80)
	hash, err := HashPassword(long)
	require.NoError(t, err)

	assert.True(t, hash.Matches(long))
	// Passwords sharing the first 72 bytes stay distinct
	assert.False(t, hash.Matches(strings.Repeat("a", 72)))
	assert.False(t, hash.Matches(long+"b"))
}

func TestPasswordHash_ZeroNeverMatches(t *testing.T) {
	var hash PasswordHash
	assert.True(t, hash.IsZero())
	assert.False(t, hash.Matches(""))
}

func TestPasswordHash_ScanValue(t *testing.T) {
	hash, err := HashPassword("test123")
	require.NoError(t, err)

	v, err := hash.Value()
	require.NoError(t, err)

	var loaded PasswordHash
	require.NoError(t, loaded.Scan(v))
	assert.True(t, loaded.Matches("test123"))

	var fromBytes PasswordHash
	require.NoError(t, fromBytes.Scan([]byte(v.(string))))
	assert.True(t, fromBytes.Matches("test123"))

	assert.Error(t, loaded.Scan(42))
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("manager")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, r)

	r, ok = ParseRole("employee")
	assert.True(t, ok)
	assert.Equal(t, RoleEmployee, r)

	for _, bad := range []string{"", "admin", "Manager"} {
		_, ok := ParseRole(bad)
		assert.False(t, ok, bad)
	}
}

func TestRole_Dashboards(t *testing.T) {
	path, ok := RoleManager.DashboardPath()
	assert.True(t, ok)
	assert.Equal(t, "/manager_dashboard", path)

	path, ok = RoleEmployee.DashboardPath()
	assert.True(t, ok)
	assert.Equal(t, "/employee_dashboard", path)

	path, ok = Role("admin").DashboardPath()
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestUser_Classify(t *testing.T) {
	u := &User{Role: RoleManager}
	assert.Equal(t, RoleManager, u.Classify())
	assert.True(t, u.Classify().IsManager())

	u.Role = RoleEmployee
	assert.Equal(t, RoleEmployee, u.Classify())
	assert.False(t, u.Classify().IsManager())
}
