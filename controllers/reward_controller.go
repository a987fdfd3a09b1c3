package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kittiphat/volunteerhub/models"
	"github.com/kittiphat/volunteerhub/utils"
)

// RewardController serves the customer-facing reward catalogue and the
// redemption lifecycle. Redeeming is the only path that spends points; it
// debits the balance and the inventory in one transaction so neither can go
// negative under concurrency.
type RewardController struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRewardController(db *gorm.DB) *RewardController {
	return &RewardController{db: db, now: time.Now}
}

type rewardView struct {
	models.Reward
	RewardURLList []string `json:"reward_url_list"`
}

// ListAvailableRewards handles GET /rewards: redeemable items only, cached.
func (r *RewardController) ListAvailableRewards(ctx *gin.Context) {
	page, perPage := parsePagination(ctx.Query("page"), ctx.Query("per_page"))

	cacheKey := utils.CacheRewardListPrefix + strconv.Itoa(page) + ":" + strconv.Itoa(perPage)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", b)
		return
	}

	var total int64
	if err := r.db.Model(&models.Reward{}).Where("can_redeem = ?", true).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, utils.KindTransient, "failed to count rewards")
		return
	}

	var rewards []models.Reward
	if err := r.db.Where("can_redeem = ?", true).
		Order("id ASC").
		Limit(perPage).Offset((page - 1) * perPage).
		Find(&rewards).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, utils.KindTransient, "failed to load rewards")
		return
	}

	views := make([]rewardView, 0, len(rewards))
	for _, rw := range rewards {
		views = append(views, rewardView{Reward: rw, RewardURLList: decodeURIList(rw.RewardURLs)})
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

// Redeem handles POST /rewards/:id/redeem for the authenticated customer.
// Balance and inventory checks happen under row locks; on success both are
// decremented and a pending redemption with a fresh code is created.
func (r *RewardController) Redeem(ctx *gin.Context) {
	customerID, ok := getCustomerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}

	rewardID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, utils.KindValidation, "invalid reward id")
		return
	}

	var redemption models.Redemption
	txErr := r.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := utils.LockForUpdate(tx).Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewAppError(utils.KindNotFound, 40411, "customer not found")
			}
			return err
		}

		var reward models.Reward
		if err := utils.LockForUpdate(tx).First(&reward, uint(rewardID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewAppError(utils.KindNotFound, 40420, "reward not found")
			}
			return err
		}

		if !reward.CanRedeem {
			return utils.NewAppError(utils.KindStateConflict, 40920, "this reward is not redeemable")
		}
		if customer.TotalPoint < reward.PointsRequired {
			return utils.NewAppError(utils.KindInsufficient, 40921, "not enough points for this reward")
		}
		if reward.Amount <= 0 {
			return utils.NewAppError(utils.KindInsufficient, 40922, "this reward is out of stock")
		}

		if err := tx.Model(&customer).Update("total_point", customer.TotalPoint-reward.PointsRequired).Error; err != nil {
			return err
		}
		if err := tx.Model(&reward).Update("amount", reward.Amount-1).Error; err != nil {
			return err
		}

		redemption = models.Redemption{
			Code:                 uuid.NewString(),
			CustomerID:           customerID,
			RewardID:             reward.ID,
			Status:               models.RedemptionPending,
			RewardURLSnapshot:    reward.RewardURLs,
			CustomerNameSnapshot: customer.Name,
		}
		return tx.Create(&redemption).Error
	})

	if txErr != nil {
		if appErr, ok := utils.AsAppError(txErr); ok {
			utils.Fail(ctx, appErr)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, utils.KindTransient, "failed to redeem reward")
		return
	}

	utils.InvalidateByPrefix(utils.CacheRewardListPrefix)
	utils.Success(ctx, gin.H{"redemption": redemption})
}

// ListCustomerRedemptions handles GET /customers/me/redemptions.
func (r *RewardController) ListCustomerRedemptions(ctx *gin.Context) {
	customerID, ok := getCustomerID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, utils.KindValidation, "unauthorized")
		return
	}

	var redemptions []models.Redemption
	if err := r.db.Preload("Reward").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&redemptions).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, utils.KindTransient, "failed to load redemptions")
		return
	}
	utils.Success(ctx, gin.H{"data": redemptions})
}

// UseRedemption handles POST /admin/redemptions/:code/use: staff marks a
// pending redemption as handed over.
func (r *RewardController) UseRedemption(ctx *gin.Context) {
	r.transition(ctx, models.RedemptionUsed)
}

// CompleteRedemption handles POST /admin/redemptions/:code/complete: staff
// closes out a used redemption.
func (r *RewardController) CompleteRedemption(ctx *gin.Context) {
	r.transition(ctx, models.RedemptionCompleted)
}

func (r *RewardController) transition(ctx *gin.Context, next models.RedemptionStatus) {
	code := ctx.Param("code")
	if code == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, utils.KindValidation, "redemption code required")
		return
	}

	var redemption models.Redemption
	txErr := r.db.Transaction(func(tx *gorm.DB) error {
		if err := utils.LockForUpdate(tx).Where("code = ?", code).First(&redemption).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewAppError(utils.KindNotFound, 40421, "redemption not found")
			}
			return err
		}

		if !redemption.Status.CanTransitionTo(next) {
			if redemption.Status == next {
				return utils.NewAppError(utils.KindStateConflict, 40923,
					"redemption is already "+string(next))
			}
			return utils.NewAppError(utils.KindStateConflict, 40924,
				"redemption is "+string(redemption.Status)+" and cannot become "+string(next))
		}

		updates := map[string]interface{}{"status": next}
		if next == models.RedemptionUsed {
			usedAt := r.now().UTC()
			redemption.UsedAt = &usedAt
			updates["used_at"] = usedAt
		}
		redemption.Status = next
		return tx.Model(&redemption).Updates(updates).Error
	})

	if txErr != nil {
		if appErr, ok := utils.AsAppError(txErr); ok {
			utils.Fail(ctx, appErr)
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50024, utils.KindTransient, "failed to update redemption")
		return
	}

	utils.Success(ctx, gin.H{"redemption": redemption})
}
