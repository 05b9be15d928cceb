package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rlumactod/boarding_house/database"
	"github.com/rlumactod/boarding_house/models"
)

type CreateTenantRequest struct {
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone"`
	RoomNumber  string  `json:"roomNumber" validate:"required"`
	MoveInDate  string  `json:"moveInDate"`
	MonthlyRate float64 `json:"monthlyRate" validate:"required,gt=0"`
}

type UpdateTenantRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	RoomNumber  *string  `json:"roomNumber"`
	MonthlyRate *float64 `json:"monthlyRate"`
	Status      *string  `json:"status"`
}

func GetTenants(c *fiber.Ctx) error {
	var tenants []models.Tenant
	database.DB.Find(&tenants)
	return c.JSON(tenants)
}

func GetTenant(c *fiber.Ctx) error {
	var tenant models.Tenant
	if err := database.DB.First(&tenant, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tenant not found"})
	}
	return c.JSON(tenant)
}

func CreateTenant(c *fiber.Ctx) error {
	var req CreateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	moveInDate := req.MoveInDate
	if moveInDate == "" {
		moveInDate = time.Now().Format("2006-01-02")
	}

	tenant := models.Tenant{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		RoomNumber:  req.RoomNumber,
		MoveInDate:  moveInDate,
		MonthlyRate: req.MonthlyRate,
		Status:      "active",
	}

	if err := database.DB.Create(&tenant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create tenant"})
	}

	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// UpdateTenant applies only the fields present in the request body.
func UpdateTenant(c *fiber.Ctx) error {
	var tenant models.Tenant
	if err := database.DB.First(&tenant, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tenant not found"})
	}

	var req UpdateTenantRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Email != nil {
		tenant.Email = *req.Email
	}
	if req.Phone != nil {
		tenant.Phone = req.Phone
	}
	if req.RoomNumber != nil {
		tenant.RoomNumber = *req.RoomNumber
	}
	if req.MonthlyRate != nil {
		tenant.MonthlyRate = *req.MonthlyRate
	}
	if req.Status != nil {
		tenant.Status = *req.Status
	}

	if err := database.DB.Save(&tenant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update tenant"})
	}

	return c.JSON(tenant)
}

// DeleteTenant removes the record outright and returns it. Payments and the
// boarder login referencing it are left in place, orphaned.
func DeleteTenant(c *fiber.Ctx) error {
	var tenant models.Tenant
	if err := database.DB.First(&tenant, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tenant not found"})
	}

	if err := database.DB.Delete(&tenant).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete tenant"})
	}

	return c.JSON(tenant)
}
