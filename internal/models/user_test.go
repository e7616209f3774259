package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUser_PhoneNumber(t *testing.T) {
	user := User{MobileNo: "9876543210", CountryCode: "91"}
	assert.Equal(t, "+919876543210", user.PhoneNumber())
}

func TestUser_PasswordNotSerialized(t *testing.T) {
	user := User{
		ID:           primitive.NewObjectID(),
		MobileNo:     "9876543210",
		PasswordHash: "$2a$10$secret",
	}

	data, err := json.Marshal(user)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleDriver))
	assert.True(t, IsValidRole(RoleSalePerson))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("manager"))
	assert.False(t, IsValidRole(""))
}
