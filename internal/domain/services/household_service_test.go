package services

import (
	"context"
	"testing"
	"time"

	"census-otp-service/internal/domain/models"
	"census-otp-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHead(members ...models.HouseholdMember) *models.HouseholdHead {
	return &models.HouseholdHead{
		Name:        "Asha Devi",
		DateOfBirth: time.Date(1985, 2, 17, 0, 0, 0, 0, time.UTC),
		Region:      "Awadh",
		District:    "Lucknow",
		Town:        "Malihabad",
		Members:     members,
	}
}

func TestHousehold_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewHouseholdService(db)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	dob := time.Date(2012, 4, 9, 0, 0, 0, 0, time.UTC)
	head := newHead(
		models.HouseholdMember{Name: "Ravi", DateOfBirth: &dob, RelationToHead: "Son"},
		models.HouseholdMember{Name: "Meena", RelationToHead: "Daughter"},
	)
	require.NoError(t, svc.CreateHousehold(ctx, head))
	require.NotZero(t, head.ID)

	got, err := svc.GetHousehold(ctx, head.ID)
	require.NoError(t, err)
	require.Len(t, got.Members, 2)
	assert.Equal(t, "Ravi", got.Members[0].Name)
	require.NotNil(t, got.Members[0].Age)
	assert.Equal(t, 12, *got.Members[0].Age)
	assert.Nil(t, got.Members[1].Age)
	assert.Equal(t, head.ID, got.Members[1].HeadID)
}

func TestHousehold_GetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewHouseholdService(db)

	_, err := svc.GetHousehold(context.Background(), 99)
	assert.ErrorIs(t, err, ErrHouseholdNotFound)
}

func TestHousehold_DeleteCascadesMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewHouseholdService(db)
	ctx := context.Background()

	head := newHead(models.HouseholdMember{Name: "Ravi"}, models.HouseholdMember{Name: "Meena"})
	require.NoError(t, svc.CreateHousehold(ctx, head))

	other := newHead(models.HouseholdMember{Name: "Kiran"})
	require.NoError(t, svc.CreateHousehold(ctx, other))

	require.NoError(t, svc.DeleteHousehold(ctx, head.ID))

	var count int64
	db.Model(&models.HouseholdMember{}).Where("head_id = ?", head.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.HouseholdMember{}).Where("head_id = ?", other.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, svc.DeleteHousehold(ctx, head.ID), ErrHouseholdNotFound)
}

func TestHousehold_AddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewHouseholdService(db)
	ctx := context.Background()

	head := newHead()
	require.NoError(t, svc.CreateHousehold(ctx, head))

	age := 40
	member := &models.HouseholdMember{Name: "Suresh", Age: &age, RelationToHead: "Husband"}
	require.NoError(t, svc.AddMember(ctx, head.ID, member))
	assert.Equal(t, head.ID, member.HeadID)

	members, err := svc.GetMembers(ctx, head.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, 40, *members[0].Age)

	err = svc.AddMember(ctx, head.ID+100, &models.HouseholdMember{Name: "Nobody"})
	assert.ErrorIs(t, err, ErrHouseholdNotFound)

	_, err = svc.GetMembers(ctx, head.ID+100)
	assert.ErrorIs(t, err, ErrHouseholdNotFound)
}
