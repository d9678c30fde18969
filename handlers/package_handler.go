package handlers

import (
	"log"

	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/models"
	"github.com/anjiri1684/pgym_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type PackageRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Credits      int     `json:"credits" validate:"required,gt=0"`
	ValidityDays int     `json:"validity_days" validate:"gte=0"`
	Price        float64 `json:"price" validate:"gte=0"`
	Currency     string  `json:"currency" validate:"omitempty,len=3"`
	IsActive     *bool   `json:"is_active"`
}

func (r PackageRequest) applyTo(p *models.Package) {
	p.Name = r.Name
	p.Credits = r.Credits
	p.ValidityDays = r.ValidityDays
	p.Price = r.Price
	if r.Currency != "" {
		p.Currency = r.Currency
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
}

func ListPackages(c *fiber.Ctx) error {
	var packages []models.Package
	if err := database.DB.Where("is_active = ?", true).Order("credits ASC").Find(&packages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(packages)
}

func AdminListPackages(c *fiber.Ctx) error {
	var packages []models.Package
	if err := database.DB.Order("created_at DESC").Find(&packages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(packages)
}

func CreatePackage(c *fiber.Ctx) error {
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pkg := models.Package{ID: uuid.New(), Currency: "CHF", IsActive: true}
	req.applyTo(&pkg)
	if err := database.DB.Create(&pkg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create package"})
	}
	if !pkg.IsActive {
		// is_active has a column default, so false must be written explicitly.
		database.DB.Model(&pkg).Update("is_active", false)
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

func UpdatePackage(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("packageId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID"})
	}
	var req PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var pkg models.Package
	if err := database.DB.First(&pkg, "id = ?", id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
	}
	req.applyTo(&pkg)
	if err := database.DB.Save(&pkg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update package"})
	}
	return c.JSON(pkg)
}

// DeletePackage retires a package. Purchases keep pointing at it, so the row
// is deactivated rather than removed.
func DeletePackage(c *fiber.Ctx) error {
	id, ok := parseID(c.Params("packageId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID"})
	}
	res := database.DB.Model(&models.Package{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete package"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type GrantRequest struct {
	PackageID string `json:"package_id" validate:"omitempty,uuid"`
	Credits   int    `json:"credits" validate:"omitempty,gt=0"`
}

// GrantPackage activates a package (or a bare number of credits) for a member.
// The new purchase replaces the member's current balance.
func GrantPackage(c *fiber.Ctx) error {
	memberID, ok := parseID(c.Params("memberId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid member ID"})
	}
	var req GrantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.PackageID == "" && req.Credits == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Either package_id or credits is required"})
	}

	var purchase *models.PackagePurchase
	var err error
	if req.PackageID != "" {
		packageID, _ := uuid.Parse(req.PackageID)
		purchase, err = services.GrantPackage(database.DB, memberID, packageID, now())
	} else {
		if _, err = services.GetMember(database.DB, memberID); err == nil {
			purchase, err = services.GrantCredits(database.DB, memberID, nil, req.Credits, now())
		}
	}
	if err != nil {
		return respondError(c, err)
	}
	log.Printf("✅ Granted %d credits to member %s", purchase.Total, memberID)
	return c.Status(fiber.StatusCreated).JSON(purchase)
}
