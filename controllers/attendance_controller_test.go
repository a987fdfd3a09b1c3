package controllers

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

const (
	venueLat = 13.7563
	venueLon = 100.5018
	eventDay = "2026-03-02"
)

func newAttendanceForTest(db *gorm.DB) *AttendanceController {
	return &AttendanceController{
		db:      db,
		loc:     time.UTC,
		policy:  utils.HourlyPolicy{},
		radiusM: 80,
		early:   15 * time.Minute,
		grace:   15 * time.Minute,
		now:     time.Now,
	}
}

func at(clock string) time.Time {
	ts, err := time.Parse(time.RFC3339, eventDay+"T"+clock+"Z")
	if err != nil {
		panic(err)
	}
	return ts
}

func TestRegisterCheckHappySession(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	rec, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, []string{"https://img/1.jpg"}, at("09:00:00"))
	require.Nil(t, appErr)
	assert.Equal(t, models.CheckIn, rec.CheckKind)
	assert.Equal(t, eventDay, rec.ParticipationDay)
	assert.False(t, rec.PointsAwarded)

	// 2h30m later the check-out settles 2 points under the hourly policy.
	out, appErr := a.registerCheck(ev.ID, "U1", models.CheckOut, venueLat, venueLon, nil, at("11:30:00"))
	require.Nil(t, appErr)
	assert.Equal(t, models.CheckOut, out.CheckKind)

	var inRec models.AttendanceRecord
	require.NoError(t, db.Where("event_id = ? AND customer_id = ? AND check_kind = ?", ev.ID, "U1", models.CheckIn).First(&inRec).Error)
	require.NotNil(t, inRec.Points)
	assert.Equal(t, 2, *inRec.Points)
	assert.True(t, inRec.PointsAwarded)

	var customer models.Customer
	require.NoError(t, db.Where("customer_id = ?", "U1").First(&customer).Error)
	assert.Equal(t, 2, customer.TotalPoint)
}

func TestRegisterCheckWindowBounds(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	// One minute before the 15-minute early window opens.
	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("08:44:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindOutOfWindow, appErr.Kind)

	// The boundary instant itself is accepted.
	rec, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("08:45:00"))
	require.Nil(t, appErr)
	assert.NotZero(t, rec.ID)
}

func TestRegisterCheckLateCutoff(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:16:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindOutOfWindow, appErr.Kind)
}

func TestRegisterCheckStateConflicts(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	// Check-out before any check-in.
	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckOut, venueLat, venueLon, nil, at("10:00:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindStateConflict, appErr.Kind)

	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.Nil(t, appErr)

	// Second check-in the same day.
	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:05:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindStateConflict, appErr.Kind)

	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckOut, venueLat, venueLon, nil, at("11:00:00"))
	require.Nil(t, appErr)

	// Second check-out.
	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckOut, venueLat, venueLon, nil, at("11:30:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindStateConflict, appErr.Kind)

	// A rejected duplicate never double-credits.
	var customer models.Customer
	require.NoError(t, db.Where("customer_id = ?", "U1").First(&customer).Error)
	assert.Equal(t, 2, customer.TotalPoint)
}

func TestRegisterCheckOutAfterEnd(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.Nil(t, appErr)

	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckOut, venueLat, venueLon, nil, at("12:01:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindOutOfWindow, appErr.Kind)

	// The session stays open; the sweeper will settle it at zero later.
	var inRec models.AttendanceRecord
	require.NoError(t, db.Where("customer_id = ? AND check_kind = ?", "U1", models.CheckIn).First(&inRec).Error)
	assert.False(t, inRec.PointsAwarded)
}

func TestRegisterCheckGeofence(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	// ~1.1 km north of the venue.
	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat+0.01, venueLon, nil, at("09:00:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindOutOfArea, appErr.Kind)

	var count int64
	require.NoError(t, db.Model(&models.AttendanceRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterCheckTypeMismatch(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventSpecial, eventDay, venueLat, venueLon)

	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindTypeMismatch, appErr.Kind)
}

func TestRegisterCheckWrongDay(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	dayAfter := at("09:00:00").Add(24 * time.Hour)
	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, dayAfter)
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindOutOfWindow, appErr.Kind)
}

func TestRegisterCheckUnknownEntities(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	_, appErr := a.registerCheck(999, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindNotFound, appErr.Kind)

	_, appErr = a.registerCheck(ev.ID, "nobody", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindNotFound, appErr.Kind)

	// An event whose owning admin was cleared accepts no checks.
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", ev.ID).Update("admin_id", nil).Error)
	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindNotFound, appErr.Kind)
}

func TestListCustomerHistory(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.Nil(t, appErr)
	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckOut, venueLat, venueLon, nil, at("11:00:00"))
	require.Nil(t, appErr)

	ctx, w := testCtx(t, "GET", nil, nil, asCustomer("U1"))
	a.ListCustomerHistory(ctx)
	resp := requireStatus(t, w, 200)

	data := resp.Data.(map[string]interface{})
	sessions := data["data"].([]interface{})
	require.Len(t, sessions, 1)

	s := sessions[0].(map[string]interface{})
	assert.Equal(t, eventDay, s["participation_day"])
	assert.Equal(t, "Beach Cleanup", s["activity_name"])
	assert.Equal(t, true, s["points_awarded"])
	assert.Equal(t, float64(2), s["points"])
	assert.NotNil(t, s["check_in"])
	assert.NotNil(t, s["check_out"])
}

func TestListEventAttendance(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	seedCustomer(t, db, "U2", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)

	for _, id := range []string{"U1", "U2"} {
		_, appErr := a.registerCheck(ev.ID, id, models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
		require.Nil(t, appErr)
	}

	ctx, w := testCtx(t, "GET", nil, gin.Params{{Key: "id", Value: strconvID(ev.ID)}}, nil)
	a.ListEventAttendance(ctx)
	resp := requireStatus(t, w, 200)

	data := resp.Data.(map[string]interface{})
	entries := data["data"].([]interface{})
	require.Len(t, entries, 2)
	first := entries[0].(map[string]interface{})
	require.NotNil(t, first["customer"])
	customer := first["customer"].(map[string]interface{})
	assert.Equal(t, "Student U1", customer["name"])
}

func TestRegisterCheckMultiDayEvent(t *testing.T) {
	db := newTestDB(t)
	a := newAttendanceForTest(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	ev := seedEvent(t, db, models.EventNormal, eventDay, venueLat, venueLon)
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", ev.ID).Update("end_date", "2026-03-03").Error)

	_, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, at("09:00:00"))
	require.Nil(t, appErr)
	_, appErr = a.registerCheck(ev.ID, "U1", models.CheckOut, venueLat, venueLon, nil, at("11:00:00"))
	require.Nil(t, appErr)

	// The next calendar day starts a fresh session for the same event.
	nextDay := at("09:00:00").Add(24 * time.Hour)
	rec, appErr := a.registerCheck(ev.ID, "U1", models.CheckIn, venueLat, venueLon, nil, nextDay)
	require.Nil(t, appErr)
	assert.Equal(t, "2026-03-03", rec.ParticipationDay)
}
