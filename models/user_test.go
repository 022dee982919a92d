package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasAdmin(t *testing.T) {
	require.False(t, HasAdmin(nil))
	require.False(t, HasAdmin([]Role{RoleUser}))
	require.True(t, HasAdmin([]Role{RoleUser, RoleAdmin}))

	u := &User{PersonalInfo: PersonalInfo{Roles: []Role{RoleAdmin}}}
	require.True(t, u.IsAdmin())
}

func TestDefaultAvatar(t *testing.T) {
	for i := 0; i < 50; i++ {
		url := DefaultAvatar()
		require.True(t, strings.HasPrefix(url, "https://api.dicebear.com/6.x/"), url)

		rest := strings.TrimPrefix(url, "https://api.dicebear.com/6.x/")
		parts := strings.SplitN(rest, "/svg?seed=", 2)
		require.Len(t, parts, 2, url)
		require.Contains(t, avatarCollections[:], parts[0])
		require.Contains(t, avatarSeeds[:], parts[1])
	}
}
