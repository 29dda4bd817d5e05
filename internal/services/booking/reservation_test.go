package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"campusgear/internal/models"
)

func TestCreateReservation(t *testing.T) {
	t.Run("requires at least one item", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db)
		_, err := CreateReservation(db, user.ID, nil, day1(9), day1(11))
		assert.ErrorIs(t, err, ErrNoItems)
	})

	t.Run("rejects inverted and zero-length windows", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db)
		eq := createTestEquipment(t, db, "Camera 1", 1)

		_, err := CreateReservation(db, user.ID, []int64{eq.ID}, day1(11), day1(9))
		assert.ErrorIs(t, err, ErrBadWindow)

		_, err = CreateReservation(db, user.ID, []int64{eq.ID}, day1(9), day1(9))
		assert.ErrorIs(t, err, ErrBadWindow)
	})

	t.Run("persists reservation with all items", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db)
		cam := createTestEquipment(t, db, "Camera 1", 1)
		lens := createTestEquipment(t, db, "Lens 1", 1)

		res, err := CreateReservation(db, user.ID, []int64{cam.ID, lens.ID}, day1(9), day1(11))
		require.NoError(t, err)
		assert.Equal(t, models.ReservationPending, res.Status)

		var items []models.ReservationItem
		require.NoError(t, db.Where("reservation_id = ?", res.ID).Find(&items).Error)
		assert.Len(t, items, 2)
	})

	t.Run("all-or-nothing when one item is unavailable", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db)
		cam := createTestEquipment(t, db, "Camera 1", 1)
		lens := createTestEquipment(t, db, "Lens 1", 1)

		_, err := CreateReservation(db, user.ID, []int64{cam.ID}, day1(9), day1(11))
		require.NoError(t, err)

		_, err = CreateReservation(db, user.ID, []int64{cam.ID, lens.ID}, day1(10), day1(12))
		var unavailable *UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, []string{"Camera 1"}, unavailable.Names)

		// the free item must not have been booked either
		var count int64
		require.NoError(t, db.Model(&models.ReservationItem{}).
			Where("equipment_id = ?", lens.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown equipment id fails the whole request", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db)
		cam := createTestEquipment(t, db, "Camera 1", 1)

		_, err := CreateReservation(db, user.ID, []int64{cam.ID, 9999}, day1(9), day1(11))
		var unavailable *UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, []string{"ID 9999"}, unavailable.Names)
	})

	// Equipment with daily_limit 1: A holds 09:00-11:00 approved, B wants
	// 10:00-12:00 and is rejected, C wants 11:00-13:00 and is accepted.
	t.Run("overlap scenario with back-to-back boundary", func(t *testing.T) {
		db := setupTestDB(t)
		user := createTestUser(t, db)
		eq := createTestEquipment(t, db, "Camera 1", 1)

		a, err := CreateReservation(db, user.ID, []int64{eq.ID}, day1(9), day1(11))
		require.NoError(t, err)
		_, err = SetStatus(db, a.ID, models.ReservationApproved)
		require.NoError(t, err)

		_, err = CreateReservation(db, user.ID, []int64{eq.ID}, day1(10), day1(12))
		var unavailable *UnavailableError
		assert.ErrorAs(t, err, &unavailable)

		c, err := CreateReservation(db, user.ID, []int64{eq.ID}, day1(11), day1(13))
		assert.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestSetStatus(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db)
	eq := createTestEquipment(t, db, "Camera 1", 1)

	t.Run("rejects unknown status", func(t *testing.T) {
		res, err := CreateReservation(db, user.ID, []int64{eq.ID}, day1(9), day1(10))
		require.NoError(t, err)
		_, err = SetStatus(db, res.ID, "Cancelled")
		assert.ErrorIs(t, err, ErrBadStatus)
	})

	t.Run("unknown reservation is not found", func(t *testing.T) {
		_, err := SetStatus(db, 9999, models.ReservationApproved)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("pending may be approved", func(t *testing.T) {
		res, err := CreateReservation(db, user.ID, []int64{eq.ID}, day1(11), day1(12))
		require.NoError(t, err)
		updated, err := SetStatus(db, res.ID, models.ReservationApproved)
		require.NoError(t, err)
		assert.Equal(t, models.ReservationApproved, updated.Status)
	})

	t.Run("denied is terminal", func(t *testing.T) {
		res, err := CreateReservation(db, user.ID, []int64{eq.ID}, day1(13), day1(14))
		require.NoError(t, err)
		_, err = SetStatus(db, res.ID, models.ReservationDenied)
		require.NoError(t, err)

		_, err = SetStatus(db, res.ID, models.ReservationPending)
		assert.ErrorIs(t, err, ErrFinalStatus)
		_, err = SetStatus(db, res.ID, models.ReservationApproved)
		assert.ErrorIs(t, err, ErrFinalStatus)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		res, err := CreateReservation(db, user.ID, []int64{eq.ID}, day1(15), day1(16))
		require.NoError(t, err)
		_, err = SetStatus(db, res.ID, models.ReservationDenied)
		require.NoError(t, err)
		updated, err := SetStatus(db, res.ID, models.ReservationDenied)
		assert.NoError(t, err)
		assert.Equal(t, models.ReservationDenied, updated.Status)
	})
}

func TestListAndGetScoping(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	other := createTestUser(t, db)
	eq := createTestEquipment(t, db, "Camera 1", 5)

	res, err := CreateReservation(db, owner.ID, []int64{eq.ID}, day1(9), day1(11))
	require.NoError(t, err)

	t.Run("non-staff see only their own reservations", func(t *testing.T) {
		mine, err := List(db, owner.ID, false)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		theirs, err := List(db, other.ID, false)
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})

	t.Run("staff see everything", func(t *testing.T) {
		all, err := List(db, other.ID, true)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("detail is owner or staff only", func(t *testing.T) {
		_, err := Get(db, res.ID, owner.ID, false)
		assert.NoError(t, err)

		_, err = Get(db, res.ID, other.ID, false)
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = Get(db, res.ID, other.ID, true)
		assert.NoError(t, err)
	})
}
