package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"productsapi/internal/repositories"
	"productsapi/internal/schemas"
	"productsapi/internal/services"
	"productsapi/internal/validation"
)

// NotFoundDetail is the body detail for a missing product.
const NotFoundDetail = "Product not found"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a product and returns it with 201.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req schemas.ProductCreate
	if err := h.parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(schemas.NewProductRead(product))
}

// HandleGetProducts lists every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(schemas.NewProductReadList(products))
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(schemas.NewProductRead(product))
}

// HandleUpdateProduct applies a partial update. The path is validated
// before the body.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return respondError(c, err)
	}
	var req schemas.ProductUpdate
	if err := h.parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(schemas.NewProductRead(product))
}

// HandleDeleteProduct removes a product and answers 204 with no body.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := h.productID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) productID(c *fiber.Ctx) (int, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, validation.ParamError("product_id")
	}
	if err := h.validate.Struct(validation.LocPath, schemas.ProductPath{ID: id}); err != nil {
		return 0, err
	}
	return id, nil
}

func (h *ProductHandler) parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return validation.DecodeError(err)
	}
	return h.validate.Struct(validation.LocBody, out)
}

// respondError writes 422 for validation failures and 404 for a missing
// product. Anything else is returned to the app error handler.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": verr.Fields,
		})
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"detail": NotFoundDetail,
		})
	default:
		return err
	}
}
