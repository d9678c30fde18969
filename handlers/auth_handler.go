package handlers

import (
	"log"

	"github.com/anjiri1684/pgym_booking/database"
	"github.com/anjiri1684/pgym_booking/events"
	"github.com/anjiri1684/pgym_booking/models"
	"github.com/anjiri1684/pgym_booking/ratelimit"
	"github.com/anjiri1684/pgym_booking/services"
	"github.com/anjiri1684/pgym_booking/utils"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// MagicLinkLimiter throttles login-link requests per email. main swaps in
// Redis when REDIS_URL is set.
var MagicLinkLimiter ratelimit.Limiter = ratelimit.Unlimited{}

type RegisterRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

type MagicLinkRequest struct {
	Email string `json:"email" validate:"required,email,max=255"`
	Name  string `json:"name" validate:"omitempty,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

const magicLinkSent = "If the address is valid, a login link is on its way."

func sendMagicLink(c *fiber.Ctx, identity services.MemberIdentity) error {
	token, err := services.RequestMagicLink(c.UserContext(), database.DB, MagicLinkLimiter, identity, now())
	if err != nil {
		return err
	}
	events.Emit(c.UserContext(), events.MagicLinkIssued, events.MagicLinkEvent{
		Email:     *token.Member.Email,
		Name:      token.Member.Name,
		Link:      services.MagicLinkURL(token.Token),
		ExpiresAt: token.ExpiresAt,
	})
	return nil
}

// Register creates (or finds) the member and mails a login link.
func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	identity := services.MemberIdentity{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := sendMagicLink(c, identity); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": magicLinkSent})
}

func RequestMagicLink(c *fiber.Ctx) error {
	var req MagicLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := sendMagicLink(c, services.MemberIdentity{Name: req.Name, Email: req.Email}); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": magicLinkSent})
}

// ConsumeMagicLink exchanges a one-time token for a session JWT.
func ConsumeMagicLink(c *fiber.Ctx) error {
	member, err := services.ConsumeMagicToken(c.UserContext(), database.DB, c.Params("token"), now())
	if err != nil {
		return respondError(c, err)
	}

	t, err := utils.IssueSessionToken(member.ID, member.Role, now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	log.Printf("Member %s signed in with a magic link", member.ID)
	return c.JSON(fiber.Map{"token": t, "member": member})
}

// Login is the password login used by admins.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var member models.Member
	if err := database.DB.Where("email = ?", normalizeEmail(req.Email)).First(&member).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if member.PasswordHash == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*member.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	t, err := utils.IssueSessionToken(member.ID, member.Role, now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": t})
}
