package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kittiphat/volunteerhub/config"
	"github.com/kittiphat/volunteerhub/middleware"
	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

const adminTokenTTL = 24 * time.Hour

// AdminController covers staff authentication, staff management, and the
// event/reward catalogues admins maintain.
type AdminController struct {
	db  *gorm.DB
	loc *time.Location
	now func() time.Time
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{db: db, loc: config.Location(), now: time.Now}
}

type adminLoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128"`
}

// Login handles POST /admin/login.
func (a *AdminController) Login(ctx *gin.Context) {
	var req adminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, utils.KindValidation, "username and password are required")
		return
	}

	var admin models.Admin
	if err := a.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		// Same response for unknown username and bad password.
		utils.Error(ctx, http.StatusUnauthorized, 40120, utils.KindValidation, "invalid credentials")
		return
	}
	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40120, utils.KindValidation, "invalid credentials")
		return
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Role, adminTokenTTL)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, utils.KindTransient, "failed to issue token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"admin": admin,
	})
}

// Logout handles POST /admin/logout: revokes the presented token until its
// natural expiry.
func (a *AdminController) Logout(ctx *gin.Context) {
	tokenValue, exists := ctx.Get(middleware.ContextTokenKey)
	token, _ := tokenValue.(string)
	if !exists || token == "" {
		utils.Error(ctx, http.StatusBadRequest, 40051, utils.KindValidation, "no token to revoke")
		return
	}

	expiresAt := a.now().Add(adminTokenTTL)
	if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)
	utils.Success(ctx, nil)
}

// Me handles GET /admin/me.
func (a *AdminController) Me(ctx *gin.Context) {
	adminID, ok := getAdminID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}
	var admin models.Admin
	if err := a.db.First(&admin, adminID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, utils.KindNotFound, "admin not found")
		return
	}
	utils.Success(ctx, gin.H{"admin": admin})
}

type adminCreateRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=64"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"firstname" binding:"max=64"`
	LastName  string `json:"lastname" binding:"max=64"`
	Role      string `json:"role" binding:"required"`
}

// CreateAdmin handles POST /admin/admins (super admin only).
func (a *AdminController) CreateAdmin(ctx *gin.Context) {
	var req adminCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, utils.KindValidation, "invalid admin payload")
		return
	}
	if !models.ValidAdminRole(req.Role) {
		utils.Error(ctx, http.StatusBadRequest, 40053, utils.KindValidation, "unknown admin role")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50031, utils.KindTransient, "failed to hash password")
		return
	}

	admin := models.Admin{
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    utils.Sanitize(req.FirstName),
		LastName:     utils.Sanitize(req.LastName),
		Role:         req.Role,
	}
	if err := a.db.Create(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, 40930, utils.KindStateConflict, "username already taken")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50032, utils.KindTransient, "failed to create admin")
		return
	}
	utils.Success(ctx, gin.H{"admin": admin})
}

// ListAdmins handles GET /admin/admins (super admin only).
func (a *AdminController) ListAdmins(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))

	var total int64
	if err := a.db.Model(&models.Admin{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, utils.KindTransient, "failed to count admins")
		return
	}
	var admins []models.Admin
	if err := a.db.Order("id ASC").Limit(perPage).Offset((page - 1) * perPage).Find(&admins).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, utils.KindTransient, "failed to load admins")
		return
	}
	utils.Success(ctx, gin.H{
		"meta": newListMeta(total, page, perPage),
		"data": admins,
	})
}

type adminUpdateRequest struct {
	Password  *string `json:"password" binding:"omitempty,min=8,max=128"`
	FirstName *string `json:"firstname" binding:"omitempty,max=64"`
	LastName  *string `json:"lastname" binding:"omitempty,max=64"`
	Role      *string `json:"role"`
}

// UpdateAdmin handles PUT /admin/admins/:id (super admin only).
func (a *AdminController) UpdateAdmin(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40054, utils.KindValidation, "invalid admin id")
		return
	}
	var req adminUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, utils.KindValidation, "invalid admin payload")
		return
	}

	var admin models.Admin
	if err := a.db.First(&admin, uint(id)).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40430, utils.KindNotFound, "admin not found")
		return
	}

	updates := map[string]interface{}{}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50031, utils.KindTransient, "failed to hash password")
			return
		}
		updates["password_hash"] = hash
	}
	if req.FirstName != nil {
		updates["first_name"] = utils.Sanitize(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = utils.Sanitize(*req.LastName)
	}
	if req.Role != nil {
		if !models.ValidAdminRole(*req.Role) {
			utils.Error(ctx, http.StatusBadRequest, 40053, utils.KindValidation, "unknown admin role")
			return
		}
		updates["role"] = *req.Role
	}
	if len(updates) == 0 {
		utils.Success(ctx, gin.H{"admin": admin})
		return
	}

	if err := a.db.Model(&admin).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, utils.KindTransient, "failed to update admin")
		return
	}
	utils.Success(ctx, gin.H{"admin": admin})
}

// DeleteAdmin handles DELETE /admin/admins/:id (super admin only). An admin
// cannot delete their own account.
func (a *AdminController) DeleteAdmin(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40054, utils.KindValidation, "invalid admin id")
		return
	}
	if selfID, ok := getAdminID(ctx); ok && selfID == uint(id) {
		utils.Error(ctx, http.StatusConflict, 40931, utils.KindStateConflict, "cannot delete your own account")
		return
	}

	res := a.db.Delete(&models.Admin{}, uint(id))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50036, utils.KindTransient, "failed to delete admin")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40430, utils.KindNotFound, "admin not found")
		return
	}
	utils.Success(ctx, nil)
}

type eventRequest struct {
	ActivityName string   `json:"activity_name" binding:"required,max=255"`
	Course       string   `json:"course" binding:"max=255"`
	StartDate    string   `json:"start_date" binding:"required,len=10"`
	EndDate      string   `json:"end_date" binding:"required,len=10"`
	StartTime    string   `json:"start_time" binding:"required,min=5,max=8"`
	EndTime      string   `json:"end_time" binding:"required,min=5,max=8"`
	Venue        string   `json:"venue" binding:"max=255"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	Province     string   `json:"province" binding:"max=64"`
	EventType    string   `json:"event_type" binding:"required"`
}

func (a *AdminController) validateEventRequest(req *eventRequest) *utils.AppError {
	if !models.ValidEventType(models.EventType(req.EventType)) {
		return utils.NewAppError(utils.KindValidation, 40060, "unknown event type")
	}
	if !utils.ValidCoordinate(*req.Latitude, *req.Longitude) {
		return utils.NewAppError(utils.KindValidation, 40061, "coordinates out of range")
	}
	if err := utils.ValidWallClock(req.StartDate, req.EndDate, req.StartTime, req.EndTime, a.loc); err != nil {
		return utils.NewAppError(utils.KindValidation, 40062, err.Error())
	}
	return nil
}

// canManageEvent applies the role gate for edits and deletes: super_admin and
// global admins manage any event, the scoped roles only events matching their
// classification.
func canManageEvent(role string, ev *models.Event) bool {
	switch role {
	case models.RoleSuperAdmin, models.RoleGlobal:
		return true
	}
	return role == string(ev.EventType)
}

// CreateEvent handles POST /admin/events.
func (a *AdminController) CreateEvent(ctx *gin.Context) {
	adminID, ok := getAdminID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}

	var req eventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40063, utils.KindValidation, "invalid event payload")
		return
	}
	if appErr := a.validateEventRequest(&req); appErr != nil {
		utils.Fail(ctx, appErr)
		return
	}
	if !canManageEvent(getAdminRole(ctx), &models.Event{EventType: models.EventType(req.EventType)}) {
		utils.Error(ctx, http.StatusForbidden, 40310, utils.KindValidation, "your role cannot create events of this type")
		return
	}

	event := models.Event{
		ActivityName: utils.Sanitize(req.ActivityName),
		Course:       utils.Sanitize(req.Course),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Venue:        utils.Sanitize(req.Venue),
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		Province:     utils.Sanitize(req.Province),
		AdminID:      &adminID,
		EventType:    models.EventType(req.EventType),
	}
	if err := a.db.Create(&event).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, utils.KindTransient, "failed to create event")
		return
	}

	utils.InvalidateByPrefix(utils.CacheEventListPrefix)
	utils.Success(ctx, gin.H{"event": event})
}

type eventView struct {
	models.Event
	Status string `json:"status"`
}

// eventStatus derives the listing status from the overall span.
func (a *AdminController) eventStatus(ev *models.Event, now time.Time) string {
	start, end, err := utils.EventSpan(ev, a.loc)
	if err != nil {
		return "unknown"
	}
	switch {
	case now.Before(start):
		return "upcoming"
	case now.After(end):
		return "ending"
	default:
		return "starting"
	}
}

// ListEvents handles GET /events: visible to customers and admins, optionally
// filtered by event_type, cached per page.
func (a *AdminController) ListEvents(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))
	typeFilter := ctx.Query("event_type")
	if typeFilter != "" && !models.ValidEventType(models.EventType(typeFilter)) {
		utils.Error(ctx, http.StatusBadRequest, 40060, utils.KindValidation, "unknown event type")
		return
	}

	cacheKey := utils.CacheEventListPrefix + typeFilter + ":" + strconv.Itoa(page) + ":" + strconv.Itoa(perPage)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	q := a.db.Model(&models.Event{}).Where("admin_id IS NOT NULL")
	if typeFilter != "" {
		q = q.Where("event_type = ?", typeFilter)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, utils.KindTransient, "failed to count events")
		return
	}
	var events []models.Event
	if err := q.Order("start_date DESC, id DESC").Limit(perPage).Offset((page - 1) * perPage).Find(&events).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, utils.KindTransient, "failed to load events")
		return
	}

	now := a.now()
	views := make([]eventView, 0, len(events))
	for i := range events {
		views = append(views, eventView{Event: events[i], Status: a.eventStatus(&events[i], now)})
	}

	body := utils.JSONResponse{
		Code:    0,
		Message: "success",
		Data: gin.H{
			"meta": newListMeta(total, page, perPage),
			"data": views,
		},
	}
	utils.CacheSetJSON(cacheKey, body, 10*time.Minute)
	ctx.JSON(http.StatusOK, body)
}

// GetEvent handles GET /events/:id.
func (a *AdminController) GetEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, utils.KindValidation, "invalid event id")
		return
	}
	var event models.Event
	if err := a.db.First(&event, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, utils.KindNotFound, "event not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, utils.KindTransient, "failed to load event")
		return
	}
	utils.Success(ctx, gin.H{"event": eventView{Event: event, Status: a.eventStatus(&event, a.now())}})
}

// UpdateEvent handles PUT /admin/events/:id with the role gate applied to
// both the current and the requested classification.
func (a *AdminController) UpdateEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, utils.KindValidation, "invalid event id")
		return
	}
	var req eventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40063, utils.KindValidation, "invalid event payload")
		return
	}
	if appErr := a.validateEventRequest(&req); appErr != nil {
		utils.Fail(ctx, appErr)
		return
	}

	var event models.Event
	if err := a.db.First(&event, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, utils.KindNotFound, "event not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, utils.KindTransient, "failed to load event")
		return
	}

	role := getAdminRole(ctx)
	if !canManageEvent(role, &event) ||
		!canManageEvent(role, &models.Event{EventType: models.EventType(req.EventType)}) {
		utils.Error(ctx, http.StatusForbidden, 40311, utils.KindValidation, "your role cannot manage this event")
		return
	}

	updates := map[string]interface{}{
		"activity_name": utils.Sanitize(req.ActivityName),
		"course":        utils.Sanitize(req.Course),
		"start_date":    req.StartDate,
		"end_date":      req.EndDate,
		"start_time":    req.StartTime,
		"end_time":      req.EndTime,
		"venue":         utils.Sanitize(req.Venue),
		"latitude":      *req.Latitude,
		"longitude":     *req.Longitude,
		"province":      utils.Sanitize(req.Province),
		"event_type":    req.EventType,
	}
	if err := a.db.Model(&event).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50043, utils.KindTransient, "failed to update event")
		return
	}

	utils.InvalidateByPrefix(utils.CacheEventListPrefix)
	utils.Success(ctx, gin.H{"event": event})
}

// DeleteEvent handles DELETE /admin/events/:id. Attendance records stay; the
// history listing simply loses the event name.
func (a *AdminController) DeleteEvent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, utils.KindValidation, "invalid event id")
		return
	}

	var event models.Event
	if err := a.db.First(&event, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, utils.KindNotFound, "event not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50042, utils.KindTransient, "failed to load event")
		return
	}
	if !canManageEvent(getAdminRole(ctx), &event) {
		utils.Error(ctx, http.StatusForbidden, 40311, utils.KindValidation, "your role cannot manage this event")
		return
	}

	if err := a.db.Delete(&event).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50044, utils.KindTransient, "failed to delete event")
		return
	}
	utils.InvalidateByPrefix(utils.CacheEventListPrefix)
	utils.Success(ctx, nil)
}

type rewardRequest struct {
	Name           string   `json:"name" binding:"required,max=255"`
	PointsRequired *int     `json:"points_required" binding:"required,gte=0"`
	Amount         *int     `json:"amount" binding:"required,gte=0"`
	CanRedeem      *bool    `json:"can_redeem"`
	RewardURLs     []string `json:"reward_urls" binding:"omitempty,max=5,dive,max=512"`
}

// CreateReward handles POST /admin/rewards.
func (a *AdminController) CreateReward(ctx *gin.Context) {
	var req rewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, utils.KindValidation, "invalid reward payload")
		return
	}

	canRedeem := true
	if req.CanRedeem != nil {
		canRedeem = *req.CanRedeem
	}
	reward := models.Reward{
		Name:           utils.Sanitize(req.Name),
		PointsRequired: *req.PointsRequired,
		Amount:         *req.Amount,
		CanRedeem:      canRedeem,
		RewardURLs:     encodeURIList(req.RewardURLs),
	}
	if err := a.db.Create(&reward).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50050, utils.KindTransient, "failed to create reward")
		return
	}

	utils.InvalidateByPrefix(utils.CacheRewardListPrefix)
	utils.Success(ctx, gin.H{"reward": reward})
}

// ListRewards handles GET /admin/rewards: all rewards including hidden and
// depleted ones.
func (a *AdminController) ListRewards(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))

	var total int64
	if err := a.db.Model(&models.Reward{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, utils.KindTransient, "failed to count rewards")
		return
	}
	var rewards []models.Reward
	if err := a.db.Order("id ASC").Limit(perPage).Offset((page - 1) * perPage).Find(&rewards).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, utils.KindTransient, "failed to load rewards")
		return
	}

	views := make([]rewardView, 0, len(rewards))
	for _, rw := range rewards {
		views = append(views, rewardView{Reward: rw, RewardURLList: decodeURIList(rw.RewardURLs)})
	}
	utils.Success(ctx, gin.H{
		"meta": newListMeta(total, page, perPage),
		"data": views,
	})
}

// UpdateReward handles PUT /admin/rewards/:id.
func (a *AdminController) UpdateReward(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, utils.KindValidation, "invalid reward id")
		return
	}
	var req rewardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, utils.KindValidation, "invalid reward payload")
		return
	}

	var reward models.Reward
	if err := a.db.First(&reward, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, utils.KindNotFound, "reward not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, utils.KindTransient, "failed to load reward")
		return
	}

	updates := map[string]interface{}{
		"name":            utils.Sanitize(req.Name),
		"points_required": *req.PointsRequired,
		"amount":          *req.Amount,
		"reward_urls":     encodeURIList(req.RewardURLs),
	}
	if req.CanRedeem != nil {
		updates["can_redeem"] = *req.CanRedeem
	}
	if err := a.db.Model(&reward).Updates(updates).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50051, utils.KindTransient, "failed to update reward")
		return
	}

	utils.InvalidateByPrefix(utils.CacheRewardListPrefix)
	utils.Success(ctx, gin.H{"reward": reward})
}

// DeleteReward handles DELETE /admin/rewards/:id. Existing redemptions keep
// their snapshots.
func (a *AdminController) DeleteReward(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, utils.KindValidation, "invalid reward id")
		return
	}

	res := a.db.Delete(&models.Reward{}, uint(id))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50052, utils.KindTransient, "failed to delete reward")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40420, utils.KindNotFound, "reward not found")
		return
	}

	utils.InvalidateByPrefix(utils.CacheRewardListPrefix)
	utils.Success(ctx, nil)
}

type broadcastRequest struct {
	Message    string `json:"message" binding:"required,max=2000"`
	CustomerID string `json:"customer_id" binding:"omitempty,max=64"`
}

// Broadcast handles POST /admin/broadcast: pushes a text message to one
// customer or to all followers via LINE.
func (a *AdminController) Broadcast(ctx *gin.Context) {
	var req broadcastRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40080, utils.KindValidation, "message is required")
		return
	}

	text := utils.Sanitize(req.Message)
	var err error
	if req.CustomerID != "" {
		err = utils.PushLineMessage(req.CustomerID, text)
	} else {
		err = utils.BroadcastLineMessage(text)
	}
	if err != nil {
		if errors.Is(err, utils.ErrLineNotConfigured) {
			utils.Error(ctx, http.StatusBadRequest, 40081, utils.KindValidation, "LINE channel is not configured")
			return
		}
		if utils.Sugar != nil {
			utils.Sugar.Warnf("LINE delivery failed: %v", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50060, utils.KindTransient, "failed to deliver message")
		return
	}
	utils.Success(ctx, nil)
}
