package services

import (
	"context"
	"fmt"
	"log"
	"time"

	config "github.com/anjiri1684/pgym_booking/configs"
	"github.com/anjiri1684/pgym_booking/models"
	"github.com/anjiri1684/pgym_booking/ratelimit"
	"github.com/anjiri1684/pgym_booking/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestMagicLink issues a single-use login token for the member with this
// email, creating the member on first contact.
func RequestMagicLink(ctx context.Context, db *gorm.DB, limiter ratelimit.Limiter, identity MemberIdentity, now time.Time) (*models.MagicToken, error) {
	identity = identity.normalize()
	if identity.Email == "" {
		return nil, ErrMissingIdentity
	}

	if limiter != nil {
		allowed, err := limiter.Allow(ctx, identity.Email)
		if err != nil {
			log.Printf("Magic link throttle unavailable, allowing request: %v", err)
		} else if !allowed {
			return nil, ErrRateLimited
		}
	}

	member, err := ResolveMember(db.WithContext(ctx), identity)
	if err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(32)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}
	mt := models.MagicToken{
		ID:        uuid.New(),
		MemberID:  member.ID,
		Token:     token,
		ExpiresAt: now.Add(config.Duration("MAGIC_LINK_TTL", 15*time.Minute)),
		CreatedAt: now,
	}
	if err := db.WithContext(ctx).Create(&mt).Error; err != nil {
		return nil, fmt.Errorf("saving magic token: %w", err)
	}
	mt.Member = *member
	return &mt, nil
}

// ConsumeMagicToken marks the token used and returns its member. The update
// only matches an unused, unexpired token, so a second use always fails.
func ConsumeMagicToken(ctx context.Context, db *gorm.DB, token string, now time.Time) (*models.Member, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	var member *models.Member
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MagicToken{}).
			Where("token = ? AND used_at IS NULL AND expires_at > ?", token, now).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return ErrInvalidToken
		}
		var mt models.MagicToken
		if err := tx.Preload("Member").Where("token = ?", token).Take(&mt).Error; err != nil {
			return err
		}
		member = &mt.Member
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// PurgeMagicTokens deletes tokens that expired before the cutoff.
func PurgeMagicTokens(db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.Where("expires_at < ?", cutoff).Delete(&models.MagicToken{})
	return res.RowsAffected, res.Error
}

func MagicLinkURL(token string) string {
	base := config.String("MAGIC_LINK_BASE_URL", "http://localhost:8080/api/v1/auth/magic")
	return fmt.Sprintf("%s/%s", base, token)
}
