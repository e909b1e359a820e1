package database_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/example/luxe/internal/database/dbtest"
	"github.com/example/luxe/internal/models"
)

func TestMigrate_EmailIsUnique(t *testing.T) {
	db := dbtest.New(t)

	first := models.User{Email: "a@x.com", PasswordHash: "h", Name: "Ann", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&first).Error)
	require.NotEqual(t, uuid.Nil, first.ID)

	dup := models.User{Email: "a@x.com", PasswordHash: "h", Name: "Other", Role: models.RoleCustomer}
	err := db.Create(&dup).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	caseVariant := models.User{Email: "A@x.com", PasswordHash: "h", Name: "Ann", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&caseVariant).Error)
}

func TestMigrate_CartLineKeyIsUnique(t *testing.T) {
	db := dbtest.New(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&models.CartLine{UserID: userID, ProductID: "p1", Size: "M", Quantity: 1}).Error)
	require.NoError(t, db.Create(&models.CartLine{UserID: userID, ProductID: "p1", Size: "L", Quantity: 1}).Error)

	err := db.Create(&models.CartLine{UserID: userID, ProductID: "p1", Size: "M", Quantity: 2}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
