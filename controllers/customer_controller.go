package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

const customerTokenTTL = 30 * 24 * time.Hour

// CustomerController covers customer identity and profile management.
// Customers arrive with a LINE profile payload; the first login creates the
// local record.
type CustomerController struct {
	db *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{db: db}
}

type customerLoginRequest struct {
	CustomerID string `json:"customer_id" binding:"required,max=64"`
	Name       string `json:"name" binding:"required,max=255"`
	Picture    string `json:"picture" binding:"omitempty,max=512"`
}

// LoginOrCreate handles POST /customers/login: find-or-create keyed on the
// external identity string, then issue a long-lived token. Name and picture
// refresh on every login so the local copy tracks the LINE profile.
func (c *CustomerController) LoginOrCreate(ctx *gin.Context) {
	var req customerLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40090, utils.KindValidation, "customer_id and name are required")
		return
	}

	var customer models.Customer
	err := c.db.Where("customer_id = ?", req.CustomerID).First(&customer).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name":    utils.Sanitize(req.Name),
			"picture": req.Picture,
		}
		if err := c.db.Model(&customer).Updates(updates).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50070, utils.KindTransient, "failed to refresh profile")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		customer = models.Customer{
			CustomerID:  req.CustomerID,
			Name:        utils.Sanitize(req.Name),
			Picture:     req.Picture,
			StudentType: models.StudentNormal,
		}
		if err := c.db.Create(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Lost a first-login race; the other request created the row.
				if err := c.db.Where("customer_id = ?", req.CustomerID).First(&customer).Error; err != nil {
					utils.Error(ctx, http.StatusInternalServerError, 50071, utils.KindTransient, "failed to load customer")
					return
				}
			} else {
				utils.Error(ctx, http.StatusInternalServerError, 50071, utils.KindTransient, "failed to create customer")
				return
			}
		}
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50071, utils.KindTransient, "failed to load customer")
		return
	}

	token, err := utils.GenerateCustomerToken(customer.CustomerID, customerTokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50072, utils.KindTransient, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token":    token,
		"customer": customer,
	})
}

// Me handles GET /customers/me.
func (c *CustomerController) Me(ctx *gin.Context) {
	customerID, ok := getCustomerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}
	var customer models.Customer
	if err := c.db.Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40411, utils.KindNotFound, "customer not found")
		return
	}
	utils.Success(ctx, gin.H{"customer": customer})
}

type profileUpdateRequest struct {
	Email       *string `json:"email" binding:"omitempty,max=255"`
	FirstName   *string `json:"first_name" binding:"omitempty,max=64"`
	LastName    *string `json:"last_name" binding:"omitempty,max=64"`
	UserCode    *string `json:"user_code" binding:"omitempty,max=32"`
	GroupSt     *string `json:"group_st" binding:"omitempty,max=32"`
	BranchSt    *string `json:"branch_st" binding:"omitempty,max=64"`
	StudentType *string `json:"student_type"`
	LevelSt     *string `json:"level_st" binding:"omitempty,max=32"`
}

// UpdateProfile handles PUT /customers/me: partial profile update with
// optional classification change.
func (c *CustomerController) UpdateProfile(ctx *gin.Context) {
	customerID, ok := getCustomerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}

	var req profileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40091, utils.KindValidation, "invalid profile payload")
		return
	}

	var customer models.Customer
	if err := c.db.Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40411, utils.KindNotFound, "customer not found")
		return
	}

	updates := map[string]interface{}{}
	setSanitized := func(col string, v *string) {
		if v != nil {
			updates[col] = utils.Sanitize(*v)
		}
	}
	setSanitized("email", req.Email)
	setSanitized("first_name", req.FirstName)
	setSanitized("last_name", req.LastName)
	setSanitized("user_code", req.UserCode)
	setSanitized("group_st", req.GroupSt)
	setSanitized("branch_st", req.BranchSt)
	setSanitized("level_st", req.LevelSt)
	if req.StudentType != nil {
		if !models.ValidStudentType(models.StudentType(*req.StudentType)) {
			utils.Error(ctx, http.StatusBadRequest, 40092, utils.KindValidation, "unknown student type")
			return
		}
		updates["student_type"] = *req.StudentType
	}
	if len(updates) == 0 {
		utils.Success(ctx, gin.H{"customer": customer})
		return
	}

	if err := c.db.Model(&customer).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, utils.KindTransient, "failed to update profile")
		return
	}
	utils.Success(ctx, gin.H{"customer": customer})
}

type faceURLRequest struct {
	FaceURL string `json:"face_url" binding:"required,max=512"`
}

// SetFaceURL handles PUT /customers/me/face: stores the opaque reference
// photo URI used at on-site verification.
func (c *CustomerController) SetFaceURL(ctx *gin.Context) {
	customerID, ok := getCustomerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}

	var req faceURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40093, utils.KindValidation, "face_url is required")
		return
	}

	res := c.db.Model(&models.Customer{}).
		Where("customer_id = ?", customerID).
		Update("face_url", req.FaceURL)
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50073, utils.KindTransient, "failed to update profile")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40411, utils.KindNotFound, "customer not found")
		return
	}
	utils.Success(ctx, nil)
}

// ListCustomers handles GET /admin/customers with an optional student_type
// filter.
func (c *CustomerController) ListCustomers(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))
	typeFilter := ctx.Query("student_type")
	if typeFilter != "" && !models.ValidStudentType(models.StudentType(typeFilter)) {
		utils.Error(ctx, http.StatusBadRequest, 40092, utils.KindValidation, "unknown student type")
		return
	}

	q := c.db.Model(&models.Customer{})
	if typeFilter != "" {
		q = q.Where("student_type = ?", typeFilter)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, utils.KindTransient, "failed to count customers")
		return
	}
	var customers []models.Customer
	if err := q.Order("id ASC").Limit(perPage).Offset((page - 1) * perPage).Find(&customers).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50075, utils.KindTransient, "failed to load customers")
		return
	}

	utils.Success(ctx, gin.H{
		"meta": newListMeta(total, page, perPage),
		"data": customers,
	})
}
