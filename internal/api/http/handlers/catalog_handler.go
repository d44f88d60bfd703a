package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/healthapp/healthcare-portal/internal/api/dto"
	"github.com/healthapp/healthcare-portal/internal/domain"
	"github.com/healthapp/healthcare-portal/internal/service"
)

// CatalogHandler serves medicines, hospitals and products.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// ListMedicines GET /api/medicines.
func (h *CatalogHandler) ListMedicines(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	medicines, err := h.service.ListMedicines(c.UserContext(), c.Query("search"), c.Query("category"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"medicines": dto.NewMedicineResponses(medicines)})
}

// CreateMedicine POST /api/medicines.
func (h *CatalogHandler) CreateMedicine(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	var req dto.MedicineRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	medicine, err := h.service.CreateMedicine(c.UserContext(), medicineInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{
		"medicineId": medicine.ID,
		"medicine":   dto.NewMedicineResponse(medicine),
	}))
}

// UpdateMedicine PATCH /api/medicines/:id.
func (h *CatalogHandler) UpdateMedicine(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	var req dto.MedicineRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	medicine, err := h.service.UpdateMedicine(c.UserContext(), c.Params("id"), medicineInput(req))
	if err != nil {
		return err
	}
	return c.JSON(success(fiber.Map{"medicine": dto.NewMedicineResponse(medicine)}))
}

// DeleteMedicine DELETE /api/medicines/:id.
func (h *CatalogHandler) DeleteMedicine(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	if err := h.service.DeleteMedicine(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(success(nil))
}

// ListHospitals GET /api/hospitals.
func (h *CatalogHandler) ListHospitals(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	hospitals, err := h.service.ListHospitals(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"hospitals": dto.NewHospitalResponses(hospitals)})
}

// CreateHospital POST /api/hospitals.
func (h *CatalogHandler) CreateHospital(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	var req dto.HospitalRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	input := service.HospitalInput{
		Name:               req.Name,
		Address:            req.Address,
		Phone:              req.Phone,
		Email:              req.Email,
		RegistrationNumber: req.RegistrationNumber,
		Type:               req.Type,
		Departments:        req.Departments,
		Facilities:         req.Facilities,
	}
	if req.OperatingHours != nil {
		input.OperatingHours = &domain.OperatingHours{Open: req.OperatingHours.Open, Close: req.OperatingHours.Close}
	}
	hospital, err := h.service.CreateHospital(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(success(fiber.Map{
		"hospitalId": hospital.ID,
		"hospital":   dto.NewHospitalResponse(hospital),
	}))
}

// ListProducts GET /api/products.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	if _, err := currentPrincipal(c); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": dto.NewProductResponses(h.service.Products())})
}

func medicineInput(req dto.MedicineRequest) service.MedicineInput {
	return service.MedicineInput{
		Name:         req.Name,
		GenericName:  req.GenericName,
		Manufacturer: req.Manufacturer,
		Category:     req.Category,
		Price:        req.Price,
		Stock:        req.Stock,
		Description:  req.Description,
		SideEffects:  req.SideEffects,
	}
}
