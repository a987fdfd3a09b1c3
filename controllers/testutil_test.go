package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kittiphat/volunteerhub/middleware"
	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

var testDBSeq int64

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:ctrl%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Customer{},
		&models.Event{},
		&models.AttendanceRecord{},
		&models.Reward{},
		&models.Redemption{},
	))
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, id string, studentType models.StudentType, points int) models.Customer {
	t.Helper()
	c := models.Customer{CustomerID: id, Name: "Student " + id, StudentType: studentType, TotalPoint: points}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedEvent(t *testing.T, db *gorm.DB, eventType models.EventType, day string, lat, lon float64) models.Event {
	t.Helper()
	adminID := uint(1)
	ev := models.Event{
		ActivityName: "Beach Cleanup",
		StartDate:    day,
		EndDate:      day,
		StartTime:    "09:00:00",
		EndTime:      "12:00:00",
		Latitude:     lat,
		Longitude:    lon,
		AdminID:      &adminID,
		EventType:    eventType,
	}
	require.NoError(t, db.Create(&ev).Error)
	return ev
}

// testCtx builds a gin context carrying an optional JSON body, URL params and
// principal values, the way the auth middleware would have left them.
func testCtx(t *testing.T, method string, body interface{}, params gin.Params, set map[string]interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/", &buf)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	ctx.Params = params
	for k, v := range set {
		ctx.Set(k, v)
	}
	return ctx, w
}

func asCustomer(id string) map[string]interface{} {
	return map[string]interface{}{middleware.ContextCustomerIDKey: id}
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.JSONResponse {
	t.Helper()
	var resp utils.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) utils.JSONResponse {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
	return decodeResponse(t, w)
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}
