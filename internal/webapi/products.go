package webapi

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/greenhaven-store/greenhaven/internal/catalog"
	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxEncodedImageLen caps the base64 image payload (~2MB of file data).
const maxEncodedImageLen = 2800000

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.PubGET("/products/:id/image", getProductImage)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// imagePath is the synthetic retrieval endpoint for inline-stored images.
func imagePath(id int64) string {
	return fmt.Sprintf("/api/products/%d/image", id)
}

// apiProduct rewrites the image field to the retrieval endpoint when the
// binary payload is stored inline. ImageData itself never serializes.
func apiProduct(p domain.Product) domain.Product {
	if p.HasImageData() {
		p.Image = imagePath(p.ID)
	}
	return p
}

func apiProducts(products []domain.Product) []domain.Product {
	out := make([]domain.Product, len(products))
	for i, p := range products {
		out[i] = apiProduct(p)
	}
	return out
}

// listProducts returns the catalog, optionally narrowed by free-text search
// or category. Search takes precedence over category.
func listProducts(c echo.Context) error {
	search := strings.TrimSpace(c.QueryParam("search"))
	category := strings.TrimSpace(c.QueryParam("category"))

	var products []domain.Product
	switch {
	case search != "":
		if err := GetDB(c).Find(&products).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
		}
		products = catalog.SearchProducts(search, products)
	case category != "":
		slug := catalog.CategorySlug(category)
		if slug == "" {
			slug = category
		}
		if err := GetDB(c).Where("category = ?", slug).Find(&products).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
		}
	default:
		if err := GetDB(c).Find(&products).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
		}
	}
	return ok(c, apiProducts(products))
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	return ok(c, apiProduct(p))
}

// getProductImage streams the stored binary payload with its content type.
func getProductImage(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	return serveImage(c, p)
}

// serveImage streams the stored binary payload with its content type.
func serveImage(c echo.Context, p domain.Product) error {
	if !p.HasImageData() {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product has no stored image", nil)
	}
	contentType := p.ImageContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Blob(http.StatusOK, contentType, p.ImageData)
}

type productPayload struct {
	Name             *string  `json:"name"`
	Price            *float64 `json:"price"`
	Category         *string  `json:"category"`
	Stock            *int     `json:"stock"`
	Description      *string  `json:"description"`
	Image            *string  `json:"image"`
	ImageBase64      string   `json:"imageBase64"`
	ImageName        string   `json:"imageName"`
	ImageContentType string   `json:"imageContentType"`
}

var (
	errImageTooLarge = errors.New("image payload exceeds upload limit")
	errImageInvalid  = errors.New("image payload is not valid base64")
)

// decodeImage validates and decodes the optional inline image upload.
func decodeImage(payload *productPayload) ([]byte, error) {
	if payload.ImageBase64 == "" {
		return nil, nil
	}
	if len(payload.ImageBase64) > maxEncodedImageLen {
		return nil, errImageTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(payload.ImageBase64)
	if err != nil {
		return nil, errImageInvalid
	}
	return data, nil
}

// imageUpdates builds the column updates attaching a decoded image to the
// product with the given id, including the id-derived retrieval path.
func imageUpdates(payload productPayload, data []byte, id int64) map[string]interface{} {
	return map[string]interface{}{
		"image_data":         data,
		"image_name":         payload.ImageName,
		"image_content_type": payload.ImageContentType,
		"image":              imagePath(id),
		"updated_at":         time.Now(),
	}
}

// failImage maps image decode errors to their HTTP outcomes.
func failImage(c echo.Context, err error) error {
	if errors.Is(err, errImageTooLarge) {
		return fail(c, http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE",
			"Image exceeds the 2MB upload limit", nil)
	}
	return fail(c, http.StatusBadRequest, "INVALID_IMAGE", "Image payload is not valid base64", nil)
}

// createProduct inserts the row first, then attaches the binary image with
// the id-derived retrieval path. The two steps are not wrapped in a
// transaction: a failure in the second step leaves the product without an
// image instead of rolling back.
func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	if payload.Name == nil || strings.TrimSpace(*payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Price != nil && *payload.Price < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
	}
	if payload.Stock != nil && *payload.Stock < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Stock must not be negative", nil)
	}

	imageData, err := decodeImage(&payload)
	if err != nil {
		return failImage(c, err)
	}

	now := time.Now()
	p := domain.Product{
		Name:      strings.TrimSpace(*payload.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if payload.Price != nil {
		p.Price = *payload.Price
	}
	if payload.Category != nil {
		p.Category = normalizeCategory(*payload.Category)
	}
	if payload.Stock != nil {
		p.Stock = *payload.Stock
	}
	if payload.Description != nil {
		p.Description = *payload.Description
	}
	if payload.Image != nil {
		p.Image = strings.TrimSpace(*payload.Image)
	}

	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}

	if imageData != nil {
		if err := GetDB(c).Model(&domain.Product{}).Where("id = ?", p.ID).
			Updates(imageUpdates(payload, imageData, p.ID)).Error; err != nil {
			zap.L().Error("product created but image attach failed",
				zap.Int64("id", p.ID), zap.Error(err))
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to store product image", nil)
		}
		if err := GetDB(c).Where("id = ?", p.ID).First(&p).Error; err != nil {
			zap.L().Error("failed to reload product after image attach",
				zap.Int64("id", p.ID), zap.Error(err))
		}
	}

	audit(c, "product:create", fmt.Sprintf("created product %d (%s)", p.ID, p.Name))
	return ok(c, apiProduct(p))
}

// updateProduct applies partial field updates, with the same optional-image
// semantics as create.
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}

	imageData, err := decodeImage(&payload)
	if err != nil {
		return failImage(c, err)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if payload.Name != nil {
		name := strings.TrimSpace(*payload.Name)
		if name == "" {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name must not be empty", nil)
		}
		updates["name"] = name
	}
	if payload.Price != nil {
		if *payload.Price < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Price must not be negative", nil)
		}
		updates["price"] = *payload.Price
	}
	if payload.Category != nil {
		updates["category"] = normalizeCategory(*payload.Category)
	}
	if payload.Stock != nil {
		if *payload.Stock < 0 {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Stock must not be negative", nil)
		}
		updates["stock"] = *payload.Stock
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Image != nil {
		updates["image"] = strings.TrimSpace(*payload.Image)
	}
	if imageData != nil {
		for k, v := range imageUpdates(payload, imageData, id) {
			updates[k] = v
		}
	}

	if err := GetDB(c).Model(&domain.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; err != nil {
		zap.L().Error("failed to reload product after update",
			zap.Int64("id", id), zap.Error(err))
	}

	audit(c, "product:update", fmt.Sprintf("updated product %d (%s)", p.ID, p.Name))
	return ok(c, apiProduct(p))
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	res := GetDB(c).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}
	if res.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	audit(c, "product:delete", fmt.Sprintf("deleted product %d", id))
	return ok(c, map[string]interface{}{"id": id})
}

// normalizeCategory stores the canonical slug when the input is recognized,
// otherwise keeps the trimmed input as-is.
func normalizeCategory(input string) string {
	input = strings.TrimSpace(input)
	if slug := catalog.CategorySlug(input); slug != "" {
		return slug
	}
	return input
}
