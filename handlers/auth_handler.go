package handlers

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	config "github.com/rlumactod/boarding_house/configs"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type RegisterRequest struct {
	Username    string  `json:"username" validate:"required,min=3"`
	Password    string  `json:"password" validate:"required,min=6"`
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"required"`
	RoomNumber  string  `json:"roomNumber" validate:"required"`
	MonthlyRate float64 `json:"monthlyRate" validate:"required,gt=0"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=landlord boarder"`
}

type UserResponse struct {
	ID       string  `json:"id"`
	Role     string  `json:"role"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	TenantID *string `json:"tenantId"`
}

func userResponse(user models.User) UserResponse {
	resp := UserResponse{
		ID:       user.ID.String(),
		Role:     user.Role,
		Username: user.Username,
		Name:     user.Name,
	}
	if user.TenantID != nil {
		id := user.TenantID.String()
		resp.TenantID = &id
	}
	return resp
}

// RegisterUser creates a Tenant record and its boarder login in one
// transaction. Self-registration never creates payments; the landlord bills
// separately.
func RegisterUser(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.User
	err := database.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Username already exists"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	phone := req.Phone
	var newUser models.User
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		tenant := models.Tenant{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       &phone,
			RoomNumber:  req.RoomNumber,
			MoveInDate:  time.Now().Format("2006-01-02"),
			MonthlyRate: req.MonthlyRate,
			Status:      "active",
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		newUser = models.User{
			Username: req.Username,
			Password: string(hashedPassword),
			Name:     req.Name,
			Role:     models.RoleBoarder,
			TenantID: &tenant.ID,
		}
		return tx.Create(&newUser).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    userResponse(newUser),
	})
}

func LoginUser(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	if user.Role != req.Role {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"role":     user.Role,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 72).Unix(),
	}
	if user.TenantID != nil {
		claims["tenant_id"] = user.TenantID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t, err := token.SignedString([]byte(config.Config("JWT_SECRET")))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}

	return c.JSON(fiber.Map{
		"token": t,
		"user":  userResponse(user),
	})
}

// VerifyToken echoes the verified claims back to the caller. Runs behind the
// JWT middleware.
func VerifyToken(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)

	return c.JSON(fiber.Map{"user": fiber.Map{
		"id":       claims["user_id"],
		"role":     claims["role"],
		"username": claims["username"],
		"tenantId": claims["tenant_id"],
	}})
}

// LogoutUser exists for the client's sake; tokens are stateless and simply
// expire.
func LogoutUser(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}
