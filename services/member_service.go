package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anjiri1684/pgym_booking/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberIdentity is what a visitor types into a booking or login form.
type MemberIdentity struct {
	Name  string
	Email string
	Phone string
}

func (id MemberIdentity) normalize() MemberIdentity {
	return MemberIdentity{
		Name:  strings.TrimSpace(id.Name),
		Email: strings.ToLower(strings.TrimSpace(id.Email)),
		Phone: strings.TrimSpace(id.Phone),
	}
}

func (id MemberIdentity) displayName() string {
	if id.Name != "" {
		return id.Name
	}
	if at := strings.IndexByte(id.Email, '@'); at > 0 {
		return id.Email[:at]
	}
	return id.Email
}

// ResolveMember finds a member by email when one is given, otherwise by name,
// and creates one when nothing matches. Callers pass a transaction when the
// lookup is part of a larger unit of work.
func ResolveMember(tx *gorm.DB, identity MemberIdentity) (*models.Member, error) {
	identity = identity.normalize()
	if identity.Name == "" && identity.Email == "" {
		return nil, ErrMissingIdentity
	}

	var member models.Member
	var err error
	if identity.Email != "" {
		err = tx.Where("email = ?", identity.Email).Take(&member).Error
	} else {
		err = tx.Where("name = ?", identity.Name).Order("created_at ASC").Take(&member).Error
	}
	if err == nil {
		return &member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up member: %w", err)
	}

	member = models.Member{
		ID:   uuid.New(),
		Name: identity.displayName(),
		Role: models.RoleMember,
	}
	if identity.Email != "" {
		email := identity.Email
		member.Email = &email
	}
	if identity.Phone != "" {
		phone := identity.Phone
		member.Phone = &phone
	}

	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&member)
	if res.Error != nil {
		return nil, fmt.Errorf("creating member: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost a race with a concurrent insert for the same email.
		if err := tx.Where("email = ?", identity.Email).Take(&member).Error; err != nil {
			return nil, fmt.Errorf("reloading member: %w", err)
		}
	}
	return &member, nil
}

func GetMember(db *gorm.DB, id uuid.UUID) (*models.Member, error) {
	var member models.Member
	if err := db.First(&member, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &member, nil
}

// MemberSummary is a member with their current credit balance.
type MemberSummary struct {
	models.Member
	Credits int `json:"credits"`
}

func ListMembers(db *gorm.DB, search string, now time.Time) ([]MemberSummary, error) {
	q := db.Model(&models.Member{}).Order("name ASC")
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}
	var members []models.Member
	if err := q.Find(&members).Error; err != nil {
		return nil, err
	}

	out := make([]MemberSummary, 0, len(members))
	for _, m := range members {
		credits, err := CreditBalance(db, m.ID, now)
		if err != nil {
			return nil, err
		}
		out = append(out, MemberSummary{Member: m, Credits: credits})
	}
	return out, nil
}
