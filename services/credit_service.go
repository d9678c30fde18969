package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/anjiri1684/pgym_booking/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// latestPurchase returns the most recently activated purchase for the member,
// or nil when the member never bought a package. Older purchases are ignored
// even if they still carry credit.
func latestPurchase(tx *gorm.DB, memberID uuid.UUID, now time.Time) (*models.PackagePurchase, error) {
	var purchase models.PackagePurchase
	err := tx.Where("member_id = ? AND activated_at <= ?", memberID, now).
		Order("activated_at DESC").
		Take(&purchase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func balanceOf(p *models.PackagePurchase, now time.Time) int {
	if p == nil || p.ExpiredAt(now) || p.Remaining < 0 {
		return 0
	}
	return p.Remaining
}

func CreditBalance(db *gorm.DB, memberID uuid.UUID, now time.Time) (int, error) {
	p, err := latestPurchase(db, memberID, now)
	if err != nil {
		return 0, fmt.Errorf("loading credit package: %w", err)
	}
	return balanceOf(p, now), nil
}

// CurrentPackage is the purchase the ledger would charge right now.
func CurrentPackage(db *gorm.DB, memberID uuid.UUID, now time.Time) (*models.PackagePurchase, error) {
	p, err := latestPurchase(db.Preload("Package"), memberID, now)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// GrantPackage activates a new purchase for the member. It becomes the latest
// purchase and therefore replaces whatever balance the member had.
func GrantPackage(db *gorm.DB, memberID, packageID uuid.UUID, now time.Time) (*models.PackagePurchase, error) {
	var pkg models.Package
	if err := db.First(&pkg, "id = ?", packageID).Error; err != nil {
		return nil, notFound(err)
	}
	if _, err := GetMember(db, memberID); err != nil {
		return nil, err
	}
	return GrantCredits(db, memberID, &pkg, pkg.Credits, now)
}

// GrantCredits records a purchase of credits, optionally tied to a catalog package.
func GrantCredits(db *gorm.DB, memberID uuid.UUID, pkg *models.Package, credits int, now time.Time) (*models.PackagePurchase, error) {
	if credits <= 0 {
		return nil, fmt.Errorf("%w: credits must be positive, got %d", ErrInvalidConfiguration, credits)
	}
	purchase := models.PackagePurchase{
		ID:          uuid.New(),
		MemberID:    memberID,
		Total:       credits,
		Remaining:   credits,
		ActivatedAt: now,
	}
	if pkg != nil {
		id := pkg.ID
		purchase.PackageID = &id
		if pkg.ValidityDays > 0 {
			expires := now.AddDate(0, 0, pkg.ValidityDays)
			purchase.ExpiresAt = &expires
		}
	}
	if err := db.Create(&purchase).Error; err != nil {
		return nil, fmt.Errorf("creating package purchase: %w", err)
	}
	return &purchase, nil
}
