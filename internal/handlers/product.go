package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stitchkart/tailor_shop/internal/events"
	"github.com/stitchkart/tailor_shop/internal/middleware/auth"
	"github.com/stitchkart/tailor_shop/internal/repo"
	"github.com/stitchkart/tailor_shop/internal/search"
	"github.com/stitchkart/tailor_shop/internal/service"
	"github.com/stitchkart/tailor_shop/internal/upload"
)

type ProductHandler struct {
	Responder
	Products *service.ProductService
	Repo     *repo.ProductRepository
	Uploads  *upload.Store
	Producer *events.Producer
	Index    *search.Index
}

func (h *ProductHandler) statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// indexProduct pushes the catalog document to Elasticsearch; a failed push
// is reported as a warning, never a request failure.
func (h *ProductHandler) indexProduct(c echo.Context, productID uint, warnings []string) []string {
	product, err := h.Repo.GetByID(c.Request().Context(), productID)
	if err != nil || product == nil {
		return warnings
	}
	if err := h.Index.IndexProduct(c.Request().Context(), product); err != nil {
		c.Logger().Errorf("search index error: %v", err)
		warnings = append(warnings, "search index update failed")
	}
	return warnings
}

func (h *ProductHandler) Create(c echo.Context) error {
	var input service.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	userID, err := auth.UserID(c)
	if err != nil {
		return h.fail(c, http.StatusUnauthorized, "missing authenticated user", err)
	}

	product, err := h.Products.Create(c.Request().Context(), userID, &input)
	if err != nil {
		return h.fail(c, h.statusFor(err), err.Error(), err)
	}

	warnings := h.indexProduct(c, product.ID, nil)
	publish(c, h.Producer, events.TopicProductEvents, itoa(product.ID), map[string]interface{}{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})

	return h.okWarn(c, http.StatusCreated, "product created", product, warnings)
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid product id", err)
	}

	product, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch product", err)
	}
	if product == nil {
		return h.fail(c, http.StatusNotFound, "product not found", nil)
	}
	return h.ok(c, http.StatusOK, "product fetched", product)
}

func (h *ProductHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 10)
	offset, limit := paginate(page, size)

	filters := repo.ProductFilters{
		Search: c.QueryParam("search"),
		Offset: offset,
		Limit:  limit,
	}
	if active := c.QueryParam("is_active"); active != "" {
		isActive := active == "true" || active == "1"
		filters.IsActive = &isActive
	}

	products, total, err := h.Repo.List(c.Request().Context(), &filters)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch products", err)
	}
	return h.okCount(c, http.StatusOK, "products fetched", products, total)
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid product id", err)
	}

	var input service.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	product, err := h.Products.Update(c.Request().Context(), id, &input)
	if err != nil {
		return h.fail(c, h.statusFor(err), err.Error(), err)
	}

	warnings := h.indexProduct(c, product.ID, nil)
	publish(c, h.Producer, events.TopicProductEvents, itoa(product.ID), map[string]interface{}{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})

	return h.okWarn(c, http.StatusOK, "product updated", product, warnings)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid product id", err)
	}

	affected, warnings, err := h.Products.Delete(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to delete product", err)
	}
	if affected == 0 {
		return h.fail(c, http.StatusNotFound, "product not found", nil)
	}

	if err := h.Index.DeleteProduct(c.Request().Context(), id); err != nil {
		c.Logger().Errorf("search delete error: %v", err)
		warnings = append(warnings, "search index delete failed")
	}
	publish(c, h.Producer, events.TopicProductEvents, itoa(id), map[string]interface{}{
		"type":      "product_deleted",
		"productID": id,
	})

	return h.okWarn(c, http.StatusOK, "product deleted", nil, warnings)
}

// UploadImages replaces the product's image set with the uploaded files; the
// first file becomes the primary image.
func (h *ProductHandler) UploadImages(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid product id", err)
	}

	product, err := h.Repo.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to fetch product", err)
	}
	if product == nil {
		return h.fail(c, http.StatusNotFound, "product not found", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid form data", err)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return h.fail(c, http.StatusBadRequest, "no files uploaded", nil)
	}

	warnings := []string{}
	urls := []string{}
	for _, file := range files {
		url, err := h.Uploads.Save(file)
		if err != nil {
			c.Logger().Errorf("upload error for %s: %v", file.Filename, err)
			warnings = append(warnings, "failed to store "+file.Filename)
			continue
		}
		urls = append(urls, url)
	}
	if len(urls) == 0 {
		return h.fail(c, http.StatusInternalServerError, "all uploads failed", nil)
	}

	images, err := h.Repo.ReplaceImages(c.Request().Context(), nil, id, urls)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to save images", err)
	}

	warnings = h.indexProduct(c, id, warnings)
	return h.okWarn(c, http.StatusOK, "images uploaded", images, warnings)
}

func (h *ProductHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return h.fail(c, http.StatusBadRequest, "query parameter q is required", nil)
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 10)
	from, limit := paginate(page, size)

	total, products, err := h.Index.Search(c.Request().Context(), q, from, limit)
	if errors.Is(err, search.ErrUnavailable) {
		return h.fail(c, http.StatusServiceUnavailable, "search is not available", err)
	}
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "search failed", err)
	}
	return h.okCount(c, http.StatusOK, "search results", products, total)
}
