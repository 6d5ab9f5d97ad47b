package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/foodspot/internal/foodspot/domain"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := domain.ParseRole("Business")
	require.NoError(t, err)
	require.Equal(t, domain.RoleBusiness, r)

	r, err = domain.ParseRole("user")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, r)

	_, err = domain.ParseRole("admin")
	require.Error(t, err)
}

func TestIdentityJSON(t *testing.T) {
	id := domain.Identity{ID: "1", Name: "Bao", Email: "b@x.com", Role: domain.RoleBusiness}

	raw, err := json.Marshal(id)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"1","name":"Bao","email":"b@x.com","role":"business"}`, string(raw))

	var back domain.Identity
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, id, back)
}

func TestInvalidRoleDoesNotMarshal(t *testing.T) {
	_, err := json.Marshal(domain.Identity{})
	require.Error(t, err)
}

func TestAccountIdentityOmitsCredentials(t *testing.T) {
	u := domain.UserAccount{ID: "u1", Name: "Ana", Email: "ana@x.com", PasswordHash: "$argon2id$secret", Image: "/uploads/a.png"}
	b := domain.BusinessAccount{ID: "b1", Name: "Pho Co", Email: "pho@x.com", PasswordHash: "$2a$secret", Address: "Sydney"}

	uid := u.Identity()
	require.Equal(t, domain.Identity{ID: "u1", Name: "Ana", Email: "ana@x.com", Image: "/uploads/a.png", Role: domain.RoleUser}, uid)

	bid := b.Identity()
	require.Equal(t, domain.RoleBusiness, bid.Role)

	raw, err := json.Marshal(bid)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret")
	require.NotContains(t, string(raw), "Sydney")
}
