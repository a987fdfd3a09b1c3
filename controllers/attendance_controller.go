package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kittiphat/volunteerhub/config"
	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

// AttendanceController drives the check-in/check-out state machine and the
// attendance listing endpoints. Per (event, customer, participation day) the
// states are NONE -> CHECKED_IN -> CHECKED_OUT; a new day resets the state.
type AttendanceController struct {
	db      *gorm.DB
	loc     *time.Location
	policy  utils.PointsPolicy
	radiusM float64
	early   time.Duration
	grace   time.Duration
	now     func() time.Time
}

// NewAttendanceController creates a controller bound to the configured zone,
// geofence radius, window bounds and points policy.
func NewAttendanceController(db *gorm.DB) *AttendanceController {
	cfg := config.Get()
	return &AttendanceController{
		db:      db,
		loc:     config.Location(),
		policy:  utils.PolicyFromName(cfg.PointsPolicy),
		radiusM: cfg.GeofenceRadiusM,
		early:   time.Duration(cfg.CheckinEarlyWindowMin) * time.Minute,
		grace:   time.Duration(cfg.CheckinLateCutoffMin) * time.Minute,
		now:     time.Now,
	}
}

type checkRequest struct {
	Kind      string   `json:"kind" binding:"required,oneof=in out"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
	Images    []string `json:"images" binding:"omitempty,max=5,dive,max=512"`
}

// RegisterCheck handles POST /events/:id/check for the authenticated
// customer.
func (a *AttendanceController) RegisterCheck(ctx *gin.Context) {
	customerID, ok := getCustomerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, utils.KindValidation, "invalid event id")
		return
	}

	var req checkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, utils.KindValidation, "invalid request payload")
		return
	}
	if !utils.ValidCoordinate(*req.Latitude, *req.Longitude) {
		utils.Error(ctx, http.StatusBadRequest, 40022, utils.KindValidation, "coordinates out of range")
		return
	}

	record, appErr := a.registerCheck(uint(eventID), customerID,
		models.CheckKind(req.Kind), *req.Latitude, *req.Longitude, req.Images, a.now())
	if appErr != nil {
		utils.Fail(ctx, appErr)
		return
	}

	utils.Success(ctx, gin.H{"record": record})
}

// registerCheck validates and appends one ledger entry. All reads and the
// write happen in one transaction; a rejection anywhere leaves the store
// untouched.
func (a *AttendanceController) registerCheck(eventID uint, customerID string, kind models.CheckKind,
	lat, lon float64, images []string, now time.Time) (*models.AttendanceRecord, *utils.AppError) {

	var event models.Event
	if err := a.db.Where("id = ? AND admin_id IS NOT NULL", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.KindNotFound, 40410, "event not found or not created by an admin")
		}
		return nil, utils.NewAppError(utils.KindTransient, 50010, "failed to load event")
	}

	var customer models.Customer
	if err := a.db.Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError(utils.KindNotFound, 40411, "customer not found")
		}
		return nil, utils.NewAppError(utils.KindTransient, 50011, "failed to load customer")
	}

	distance := utils.HaversineMeters(lat, lon, event.Latitude, event.Longitude)
	if distance > a.radiusM {
		return nil, utils.NewAppError(utils.KindOutOfArea, 40030,
			fmt.Sprintf("you are %.0f m from the venue; checks are accepted within %.0f m", distance, a.radiusM))
	}

	if !event.MatchesStudent(customer.StudentType) {
		return nil, utils.NewAppError(utils.KindTypeMismatch, 40031,
			fmt.Sprintf("this event accepts %s students only", event.EventType))
	}

	day := utils.ParticipationDay(now, a.loc)
	window, err := utils.EventDayWindow(&event, day, a.loc)
	if err != nil {
		if errors.Is(err, utils.ErrOutsideEventDays) {
			return nil, utils.NewAppError(utils.KindOutOfWindow, 40032, "the event does not run today")
		}
		return nil, utils.NewAppError(utils.KindTransient, 50012, "event schedule is unreadable")
	}

	var created models.AttendanceRecord
	txErr := a.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.AttendanceRecord
		if err := utils.LockForUpdate(tx).
			Where("event_id = ? AND customer_id = ? AND participation_day = ?", event.ID, customerID, day).
			Find(&existing).Error; err != nil {
			return err
		}

		var inRec, outRec *models.AttendanceRecord
		for i := range existing {
			switch existing[i].CheckKind {
			case models.CheckIn:
				inRec = &existing[i]
			case models.CheckOut:
				outRec = &existing[i]
			}
		}

		switch kind {
		case models.CheckIn:
			if inRec != nil {
				return utils.NewAppError(utils.KindStateConflict, 40910, "already checked in today")
			}
			if open := window.CheckInOpen(a.early); now.Before(open) {
				mins := utils.MinutesUntil(now, window.Start)
				return utils.NewAppError(utils.KindOutOfWindow, 40033,
					fmt.Sprintf("check-in is not open yet; the event starts in %d h %d min", mins/60, mins%60))
			}
			if now.After(window.CheckInClose(a.grace)) {
				return utils.NewAppError(utils.KindOutOfWindow, 40034,
					fmt.Sprintf("check-in closed %d minutes after the event start", int(a.grace.Minutes())))
			}

		case models.CheckOut:
			if inRec == nil {
				return utils.NewAppError(utils.KindStateConflict, 40911, "no check-in recorded today")
			}
			if outRec != nil {
				return utils.NewAppError(utils.KindStateConflict, 40912, "already checked out today")
			}
			if now.After(window.End) {
				return utils.NewAppError(utils.KindOutOfWindow, 40035, "the event has already ended")
			}
		}

		created = models.AttendanceRecord{
			EventID:          event.ID,
			CustomerID:       customerID,
			CheckKind:        kind,
			ParticipationDay: day,
			Images:           encodeURIList(images),
			TimeCheck:        now.UTC(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		if kind == models.CheckOut {
			return a.settle(tx, inRec, customerID, now)
		}
		return nil
	})

	if txErr != nil {
		if appErr, ok := utils.AsAppError(txErr); ok {
			return nil, appErr
		}
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			// Two concurrent requests raced past the read; the unique session
			// index rejected the second insert.
			return nil, utils.NewAppError(utils.KindStateConflict, 40913, "a concurrent check for today already exists")
		}
		return nil, utils.NewAppError(utils.KindTransient, 50013, "failed to record check")
	}
	return &created, nil
}

// settle derives the session's points and credits them once. The points
// belong to the session, so they are persisted on the "in" record; the
// points-awarded flag makes repeated settlement a no-op.
func (a *AttendanceController) settle(tx *gorm.DB, inRec *models.AttendanceRecord, customerID string, out time.Time) error {
	if inRec.PointsAwarded {
		return nil
	}

	points := a.policy.Settle(inRec.TimeCheck, out.UTC())

	if points > 0 {
		var customer models.Customer
		if err := utils.LockForUpdate(tx).Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
			return err
		}
		if err := tx.Model(&customer).Update("total_point", customer.TotalPoint+points).Error; err != nil {
			return err
		}
	}

	return tx.Model(inRec).Updates(map[string]interface{}{
		"points":         points,
		"points_awarded": true,
	}).Error
}

// attendanceEntry is one ledger row enriched with the customer profile for
// the admin listing.
type attendanceEntry struct {
	models.AttendanceRecord
	ImagesList []string         `json:"images_list"`
	Customer   *models.Customer `json:"customer,omitempty"`
}

// ListEventAttendance handles GET /admin/events/:id/attendance.
func (a *AttendanceController) ListEventAttendance(ctx *gin.Context) {
	eventID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, utils.KindValidation, "invalid event id")
		return
	}

	var event models.Event
	if err := a.db.First(&event, uint(eventID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, utils.KindNotFound, "event not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50010, utils.KindTransient, "failed to load event")
		return
	}

	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))

	var total int64
	if err := a.db.Model(&models.AttendanceRecord{}).Where("event_id = ?", event.ID).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, utils.KindTransient, "failed to count attendance")
		return
	}

	var records []models.AttendanceRecord
	if err := a.db.Where("event_id = ?", event.ID).
		Order("participation_day ASC, time_check ASC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, utils.KindTransient, "failed to load attendance")
		return
	}

	customerIDs := make([]string, 0, len(records))
	seen := map[string]bool{}
	for _, r := range records {
		if !seen[r.CustomerID] {
			seen[r.CustomerID] = true
			customerIDs = append(customerIDs, r.CustomerID)
		}
	}

	profiles := map[string]*models.Customer{}
	if len(customerIDs) > 0 {
		var customers []models.Customer
		if err := a.db.Where("customer_id IN ?", customerIDs).Find(&customers).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50016, utils.KindTransient, "failed to load customers")
			return
		}
		for i := range customers {
			profiles[customers[i].CustomerID] = &customers[i]
		}
	}

	entries := make([]attendanceEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, attendanceEntry{
			AttendanceRecord: r,
			ImagesList:       decodeURIList(r.Images),
			Customer:         profiles[r.CustomerID],
		})
	}

	utils.Success(ctx, gin.H{
		"meta":  newListMeta(total, page, perPage),
		"event": event,
		"data":  entries,
	})
}

// sessionSummary is one (event, day) pair of ledger entries with its points.
type sessionSummary struct {
	EventID          uint       `json:"event_id"`
	ActivityName     string     `json:"activity_name"`
	ParticipationDay string     `json:"participation_day"`
	CheckIn          *time.Time `json:"check_in"`
	CheckOut         *time.Time `json:"check_out"`
	Points           *int       `json:"points"`
	PointsAwarded    bool       `json:"points_awarded"`
}

// ListCustomerHistory handles GET /customers/me/history: the authenticated
// customer's sessions with settled points.
func (a *AttendanceController) ListCustomerHistory(ctx *gin.Context) {
	customerID, ok := getCustomerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}

	var records []models.AttendanceRecord
	if err := a.db.Where("customer_id = ?", customerID).
		Order("participation_day ASC, time_check ASC").
		Find(&records).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, utils.KindTransient, "failed to load attendance")
		return
	}

	eventNames := map[uint]string{}
	{
		ids := make([]uint, 0, len(records))
		seen := map[uint]bool{}
		for _, r := range records {
			if !seen[r.EventID] {
				seen[r.EventID] = true
				ids = append(ids, r.EventID)
			}
		}
		if len(ids) > 0 {
			var events []models.Event
			if err := a.db.Where("id IN ?", ids).Find(&events).Error; err != nil {
				utils.Error(ctx, http.StatusInternalServerError, 50010, utils.KindTransient, "failed to load events")
				return
			}
			for _, ev := range events {
				eventNames[ev.ID] = ev.ActivityName
			}
		}
	}

	sessions := []*sessionSummary{}
	index := map[string]*sessionSummary{}
	for i := range records {
		r := records[i]
		key := fmt.Sprintf("%d/%s", r.EventID, r.ParticipationDay)
		s, ok := index[key]
		if !ok {
			s = &sessionSummary{
				EventID:          r.EventID,
				ActivityName:     eventNames[r.EventID],
				ParticipationDay: r.ParticipationDay,
			}
			index[key] = s
			sessions = append(sessions, s)
		}
		t := r.TimeCheck
		switch r.CheckKind {
		case models.CheckIn:
			s.CheckIn = &t
			s.Points = r.Points
			s.PointsAwarded = r.PointsAwarded
		case models.CheckOut:
			s.CheckOut = &t
		}
	}

	utils.Success(ctx, gin.H{"data": sessions})
}
