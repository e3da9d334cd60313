package services

import (
	"time"

	"delivery-platform/apperr"
	"delivery-platform/models"

	"gorm.io/gorm"
)

// ActiveOffers returns offers currently inside their validity window,
// highest priority first.
func ActiveOffers(db *gorm.DB, now time.Time) ([]models.SpecialOffer, error) {
	var offers []models.SpecialOffer
	if err := db.Where("is_active = ?", true).
		Order("priority desc, created_at desc").
		Find(&offers).Error; err != nil {
		return nil, apperr.Internalf(err, "failed to load offers")
	}
	valid := offers[:0]
	for _, o := range offers {
		if offerInWindow(&o, now) {
			valid = append(valid, o)
		}
	}
	return valid, nil
}

// BestOffer picks the applicable offer with the highest priority for an
// order being placed, along with the discount it grants. Returns nil when
// nothing applies.
func BestOffer(db *gorm.DB, restaurant *models.Restaurant, items []models.OrderItem, subtotal float64, now time.Time) (*models.SpecialOffer, float64, error) {
	offers, err := ActiveOffers(db, now)
	if err != nil {
		return nil, 0, err
	}
	for i := range offers {
		o := &offers[i]
		if !offerApplies(o, restaurant, items, subtotal) {
			continue
		}
		// free delivery grants no subtotal discount; the caller waives
		// the delivery fee instead
		if o.Type == models.OfferFreeDelivery {
			return o, 0, nil
		}
		if d := offerDiscount(o, subtotal); d > 0 {
			return o, d, nil
		}
	}
	return nil, 0, nil
}

// ConsumeOfferUsage bumps the usage counter, respecting the usage limit in
// the same statement so two concurrent orders cannot both take the last
// slot. Returns false when the offer is used up.
func ConsumeOfferUsage(tx *gorm.DB, offerID string) (bool, error) {
	res := tx.Model(&models.SpecialOffer{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", offerID).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return false, apperr.Internalf(res.Error, "failed to record offer usage")
	}
	return res.RowsAffected > 0, nil
}

func offerInWindow(o *models.SpecialOffer, now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if o.StartDate != nil && now.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && now.After(*o.EndDate) {
		return false
	}
	if o.UsageLimit != nil && o.UsageCount >= *o.UsageLimit {
		return false
	}
	if len(o.DaysOfWeek) > 0 {
		day := int(now.Weekday())
		found := false
		for _, d := range o.DaysOfWeek {
			if d == day {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if o.StartTime != "" && o.EndTime != "" {
		hhmm := now.Format("15:04")
		if hhmm < o.StartTime || hhmm > o.EndTime {
			return false
		}
	}
	return true
}

func offerApplies(o *models.SpecialOffer, restaurant *models.Restaurant, items []models.OrderItem, subtotal float64) bool {
	if subtotal < o.MinimumOrder {
		return false
	}
	if o.RestaurantID != nil && *o.RestaurantID != restaurant.ID {
		return false
	}
	if o.CategoryID != nil {
		if restaurant.CategoryID == nil || *restaurant.CategoryID != *o.CategoryID {
			return false
		}
	}
	if len(o.MenuItemIDs) > 0 {
		found := false
		for _, want := range o.MenuItemIDs {
			for _, item := range items {
				if item.MenuItemID == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func offerDiscount(o *models.SpecialOffer, subtotal float64) float64 {
	var d float64
	switch o.DiscountType {
	case models.DiscountFixedAmount:
		d = o.DiscountAmount
	default:
		d = round2(subtotal * float64(o.DiscountPercent) / 100)
	}
	if o.MaxDiscount != nil && d > *o.MaxDiscount {
		d = *o.MaxDiscount
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}
