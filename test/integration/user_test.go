package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserLifecycle walks a user through create, lookup, update, login and
// delete against a running instance.
func TestUserLifecycle(t *testing.T) {
	RequireServer(t)

	email := GenerateTestEmail("lifecycle")
	var userID uint
	var token string

	t.Run("create", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users", map[string]string{
			"email":    email,
			"name":     "Lifecycle User",
			"password": TestPassword,
		}, "")
		require.Equal(t, http.StatusCreated, resp.Status)

		var user UserData
		require.NoError(t, json.Unmarshal(resp.Data, &user))
		assert.Equal(t, email, user.Email)
		assert.Equal(t, "ordinary", user.Role, "role defaults to ordinary")
		assert.NotZero(t, user.ID)
		userID = user.ID
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users", map[string]string{
			"email":    email,
			"name":     "Someone Else",
			"password": TestPassword,
		}, "")
		assert.Equal(t, http.StatusConflict, resp.Status)
		assert.Contains(t, resp.Message, email, "conflict names the offending email")
	})

	t.Run("get by id", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, userID), "")
		require.Equal(t, http.StatusOK, resp.Status)

		var user UserData
		require.NoError(t, json.Unmarshal(resp.Data, &user))
		assert.Equal(t, email, user.Email)
	})

	t.Run("get by email", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/email?email="+url.QueryEscape(email), "")
		require.Equal(t, http.StatusOK, resp.Status)

		var user UserData
		require.NoError(t, json.Unmarshal(resp.Data, &user))
		assert.Equal(t, userID, user.ID)
	})

	t.Run("list contains user", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users", "")
		require.Equal(t, http.StatusOK, resp.Status)

		var users []UserData
		require.NoError(t, json.Unmarshal(resp.Data, &users))

		found := false
		for _, u := range users {
			if u.ID == userID {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("login", func(t *testing.T) {
		token = LoginTestUser(t, email)
		assert.NotEmpty(t, token)
	})

	t.Run("update own name", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, userID), map[string]string{
			"name": "Renamed User",
		}, token)
		require.Equal(t, http.StatusOK, resp.Status, "update failed: %s", resp.Message)

		var user UserData
		require.NoError(t, json.Unmarshal(resp.Data, &user))
		assert.Equal(t, "Renamed User", user.Name)
		assert.Equal(t, email, user.Email, "email untouched by name-only update")
	})

	t.Run("update cannot escalate role", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, userID), map[string]string{
			"role": "administrator",
		}, token)
		require.Equal(t, http.StatusOK, resp.Status)

		var user UserData
		require.NoError(t, json.Unmarshal(resp.Data, &user))
		assert.Equal(t, "ordinary", user.Role, "role in the payload is ignored")
	})

	t.Run("delete own account", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/users/email?email="+url.QueryEscape(email), token)
		assert.Equal(t, http.StatusNoContent, resp.Status)
	})

	t.Run("deleted user is gone", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, userID), "")
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})
}

func TestCreateUserValidation(t *testing.T) {
	RequireServer(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"missing email", map[string]string{
			"name": "No Email", "password": TestPassword,
		}},
		{"malformed email", map[string]string{
			"email": "not-an-email", "name": "Bad Email", "password": TestPassword,
		}},
		{"missing name", map[string]string{
			"email": GenerateTestEmail("noname"), "password": TestPassword,
		}},
		{"short password", map[string]string{
			"email": GenerateTestEmail("shortpw"), "name": "Short", "password": "Ab1!",
		}},
		{"password without special character", map[string]string{
			"email": GenerateTestEmail("nospecial"), "name": "NoSpecial", "password": "Abcdefg1",
		}},
		{"password with whitespace", map[string]string{
			"email": GenerateTestEmail("spacepw"), "name": "Space", "password": "Abcd efg1!",
		}},
		{"unknown role", map[string]string{
			"email": GenerateTestEmail("badrole"), "name": "Bad Role",
			"password": TestPassword, "role": "superuser",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := PostJSON(t, BaseURL+"/users", tc.payload, "")
			assert.Equal(t, http.StatusBadRequest, resp.Status)
		})
	}
}

func TestLookupFailures(t *testing.T) {
	RequireServer(t)

	t.Run("unknown id", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/99999999", "")
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/users/email?email=missing@test.com", "")
		assert.Equal(t, http.StatusNotFound, resp.Status)
	})
}

func TestAuthorization(t *testing.T) {
	RequireServer(t)

	victim := CreateTestUser(t, "victim")
	attacker := CreateTestUser(t, "attacker")
	attackerToken := LoginTestUser(t, attacker.Email)

	t.Run("delete requires token", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/users/email?email="+url.QueryEscape(victim.Email), "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})

	t.Run("cannot delete another user", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/users/email?email="+url.QueryEscape(victim.Email), attackerToken)
		assert.Equal(t, http.StatusForbidden, resp.Status)
	})

	t.Run("cannot update another user", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, victim.ID), map[string]string{
			"name": "Hijacked",
		}, attackerToken)
		assert.Equal(t, http.StatusForbidden, resp.Status)
	})

	t.Run("update requires token", func(t *testing.T) {
		resp := PutJSON(t, fmt.Sprintf("%s/users/%d", BaseURL, victim.ID), map[string]string{
			"name": "Hijacked",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})

	// Owners can still remove their own accounts; clean up through the API.
	t.Run("owner cleanup", func(t *testing.T) {
		victimToken := LoginTestUser(t, victim.Email)
		resp := DeleteJSON(t, BaseURL+"/users/email?email="+url.QueryEscape(victim.Email), victimToken)
		assert.Equal(t, http.StatusNoContent, resp.Status)

		resp = DeleteJSON(t, BaseURL+"/users/email?email="+url.QueryEscape(attacker.Email), attackerToken)
		assert.Equal(t, http.StatusNoContent, resp.Status)
	})
}

func TestLoginFailures(t *testing.T) {
	RequireServer(t)

	user := CreateTestUser(t, "loginfail")

	t.Run("wrong password", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    user.Email,
			"password": "Wrong1234!",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})

	t.Run("unknown email", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"email":    "ghost@test.com",
			"password": TestPassword,
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Status,
			"unknown email and wrong password are indistinguishable")
	})

	t.Run("logout revokes token", func(t *testing.T) {
		token := LoginTestUser(t, user.Email)

		resp := PostJSON(t, BaseURL+"/users/logout", nil, token)
		require.Equal(t, http.StatusNoContent, resp.Status)

		resp = PostJSON(t, BaseURL+"/users/logout", nil, token)
		assert.Equal(t, http.StatusUnauthorized, resp.Status, "revoked token is refused")
	})

	// Cleanup.
	token := LoginTestUser(t, user.Email)
	DeleteJSON(t, BaseURL+"/users/email?email="+url.QueryEscape(user.Email), token)
}
