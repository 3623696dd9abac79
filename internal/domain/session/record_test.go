package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Role(t *testing.T) {
	assert.Equal(t, RoleGuest, Record{}.Role())
	assert.Equal(t, RoleCandidate, Record{UserID: "u1", LoggedIn: true}.Role())
	assert.Equal(t, RoleEmployer, Record{Token: "t", EmployerID: "e1"}.Role())
}

func TestRecord_IsLoggedIn(t *testing.T) {
	assert.False(t, Record{}.IsLoggedIn())
	// Flag without an identity does not count.
	assert.False(t, Record{LoggedIn: true}.IsLoggedIn())
	// Identity without the flag does not count either.
	assert.False(t, Record{UserID: "u1"}.IsLoggedIn())
	assert.True(t, Record{UserID: "u1", LoggedIn: true}.IsLoggedIn())
}

func TestRecord_ClearEmployer(t *testing.T) {
	rec := Record{
		Token:          "tok",
		EmployerID:     "e1",
		CompanyProfile: json.RawMessage(`{"name":"Acme"}`),
		SignedUp:       true,
		Email:          "a@example.com",
	}
	rec.ClearEmployer()
	assert.Empty(t, rec.Token)
	assert.Empty(t, rec.EmployerID)
	assert.Nil(t, rec.CompanyProfile)
	// Candidate flow state survives.
	assert.True(t, rec.SignedUp)
	assert.Equal(t, "a@example.com", rec.Email)
}

func TestRecord_ClearCandidate(t *testing.T) {
	rec := Record{
		Token:    "tok",
		UserID:   "u1",
		SignedUp: true,
		LoggedIn: true,
		Email:    "a@example.com",
	}
	rec.ClearCandidate()
	assert.Empty(t, rec.UserID)
	assert.False(t, rec.SignedUp)
	assert.False(t, rec.LoggedIn)
	assert.Empty(t, rec.Email)
	assert.Equal(t, "tok", rec.Token)
}

func TestRecord_IsEmpty(t *testing.T) {
	assert.True(t, Record{}.IsEmpty())
	assert.False(t, Record{Token: "t"}.IsEmpty())
	assert.False(t, Record{SignedUp: true}.IsEmpty())
	assert.False(t, Record{CompanyProfile: json.RawMessage(`{}`)}.IsEmpty())
}

func TestRecord_JSONFieldNames(t *testing.T) {
	rec := Record{
		Token:          "tok",
		UserID:         "u1",
		EmployerID:     "e1",
		CompanyProfile: json.RawMessage(`{"name":"Acme"}`),
		SignedUp:       true,
		LoggedIn:       true,
		Email:          "a@example.com",
	}
	raw, err := json.Marshal(rec)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"token", "userId", "employerId", "companyProfile", "signedUp", "loggedIn", "email"} {
		assert.Contains(t, fields, key)
	}
}
