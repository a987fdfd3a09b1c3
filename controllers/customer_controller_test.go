package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

func TestLoginOrCreateFirstLogin(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)

	ctx, w := testCtx(t, http.MethodPost, gin.H{
		"customer_id": "U100",
		"name":        "First Student",
		"picture":     "https://img/p.jpg",
	}, nil, nil)
	cc.LoginOrCreate(ctx)
	resp := requireStatus(t, w, http.StatusOK)

	data := resp.Data.(map[string]interface{})
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, utils.PrincipalCustomer, claims.Principal)
	assert.Equal(t, "U100", claims.CustomerID)

	var customer models.Customer
	require.NoError(t, db.Where("customer_id = ?", "U100").First(&customer).Error)
	assert.Equal(t, "First Student", customer.Name)
	assert.Equal(t, models.StudentNormal, customer.StudentType)
	assert.Zero(t, customer.TotalPoint)
}

func TestLoginOrCreateRefreshesProfile(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)
	seeded := seedCustomer(t, db, "U100", models.StudentSpecial, 42)

	ctx, w := testCtx(t, http.MethodPost, gin.H{
		"customer_id": "U100",
		"name":        "Renamed Student",
	}, nil, nil)
	cc.LoginOrCreate(ctx)
	requireStatus(t, w, http.StatusOK)

	var customer models.Customer
	require.NoError(t, db.Where("customer_id = ?", "U100").First(&customer).Error)
	assert.Equal(t, seeded.ID, customer.ID)
	assert.Equal(t, "Renamed Student", customer.Name)
	// Balance and classification survive a re-login.
	assert.Equal(t, 42, customer.TotalPoint)
	assert.Equal(t, models.StudentSpecial, customer.StudentType)
}

func TestLoginOrCreateValidation(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)

	ctx, w := testCtx(t, http.MethodPost, gin.H{"name": "No ID"}, nil, nil)
	cc.LoginOrCreate(ctx)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)

	ctx, w := testCtx(t, http.MethodPut, gin.H{
		"first_name":   "Somchai",
		"user_code":    "64010001",
		"student_type": "special",
	}, nil, asCustomer("U1"))
	cc.UpdateProfile(ctx)
	requireStatus(t, w, http.StatusOK)

	var customer models.Customer
	require.NoError(t, db.Where("customer_id = ?", "U1").First(&customer).Error)
	assert.Equal(t, "Somchai", customer.FirstName)
	assert.Equal(t, "64010001", customer.UserCode)
	assert.Equal(t, models.StudentSpecial, customer.StudentType)
}

func TestUpdateProfileRejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)

	ctx, w := testCtx(t, http.MethodPut, gin.H{"student_type": "vip"}, nil, asCustomer("U1"))
	cc.UpdateProfile(ctx)
	requireStatus(t, w, http.StatusBadRequest)
}

func TestUpdateProfileStripsMarkup(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)

	ctx, w := testCtx(t, http.MethodPut, gin.H{
		"first_name": "<script>alert(1)</script>Mali",
	}, nil, asCustomer("U1"))
	cc.UpdateProfile(ctx)
	requireStatus(t, w, http.StatusOK)

	var customer models.Customer
	require.NoError(t, db.Where("customer_id = ?", "U1").First(&customer).Error)
	assert.Equal(t, "Mali", customer.FirstName)
}

func TestSetFaceURL(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)

	ctx, w := testCtx(t, http.MethodPut, gin.H{"face_url": "https://img/face.jpg"}, nil, asCustomer("U1"))
	cc.SetFaceURL(ctx)
	requireStatus(t, w, http.StatusOK)

	var customer models.Customer
	require.NoError(t, db.Where("customer_id = ?", "U1").First(&customer).Error)
	assert.Equal(t, "https://img/face.jpg", customer.FaceURL)

	ctx, w = testCtx(t, http.MethodPut, gin.H{"face_url": "https://img/face.jpg"}, nil, asCustomer("ghost"))
	cc.SetFaceURL(ctx)
	requireStatus(t, w, http.StatusNotFound)
}

func TestListCustomersFilter(t *testing.T) {
	db := newTestDB(t)
	cc := NewCustomerController(db)
	seedCustomer(t, db, "U1", models.StudentNormal, 0)
	seedCustomer(t, db, "U2", models.StudentSpecial, 0)
	seedCustomer(t, db, "U3", models.StudentSpecial, 0)

	ctx, w := testCtx(t, http.MethodGet, nil, nil, nil)
	ctx.Request.URL.RawQuery = "student_type=special"
	cc.ListCustomers(ctx)
	resp := requireStatus(t, w, http.StatusOK)

	data := resp.Data.(map[string]interface{})
	items := data["data"].([]interface{})
	assert.Len(t, items, 2)

	ctx, w = testCtx(t, http.MethodGet, nil, nil, nil)
	ctx.Request.URL.RawQuery = "student_type=vip"
	cc.ListCustomers(ctx)
	requireStatus(t, w, http.StatusBadRequest)
}
