package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/stitchkart/tailor_shop/internal/models"
)

func seedCatalog(t *testing.T, env *testEnv) (brandID, categoryID uint) {
	t.Helper()
	brand := models.Brand{Name: "Raymond"}
	require.NoError(t, env.DB.Create(&brand).Error)
	category := models.Category{Name: "Shirts"}
	require.NoError(t, env.DB.Create(&category).Error)
	return brand.ID, category.ID
}

func TestCreateProductWithPriceRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("seller@example.com", models.RoleSeller)
	_, categoryID := seedCatalog(t, env)

	sale := 499.99
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"brand":       "Raymond",
		"category":    itoa(categoryID),
		"name":        "Linen Shirt",
		"description": "Slim fit",
		"price": map[string]interface{}{
			"price_mrp":  999.99,
			"price_sale": sale,
		},
	})
	env.asUser(c, userID, models.RoleSeller)
	require.NoError(t, env.Product.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	data := dataMap(t, decodeEnvelope(t, rec))
	productID := uint(data["id"].(float64))
	require.Equal(t, float64(categoryID), data["category_id"])

	recGet, cGet := env.doJSONRequest(http.MethodGet, "/api/v1/products/1", nil)
	cGet.SetParamNames("id")
	cGet.SetParamValues(itoa(productID))
	require.NoError(t, env.Product.Get(cGet))
	require.Equal(t, http.StatusOK, recGet.Code)

	got := dataMap(t, decodeEnvelope(t, recGet))
	price := got["price"].(map[string]interface{})
	require.Less(t, price["price_sale"].(float64), price["price_mrp"].(float64))

	var mapping models.UserProduct
	require.NoError(t, env.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&mapping).Error)
}

func TestCreateProductRejectsSaleAboveMRP(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("seller@example.com", models.RoleSeller)
	brandID, categoryID := seedCatalog(t, env)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"brand":    itoa(brandID),
		"category": itoa(categoryID),
		"name":     "Overpriced Shirt",
		"price": map[string]interface{}{
			"price_mrp":  100.0,
			"price_sale": 150.0,
		},
	})
	env.asUser(c, userID, models.RoleSeller)
	require.NoError(t, env.Product.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validation happens before any write
	var count int64
	env.DB.Model(&models.Product{}).Count(&count)
	require.Equal(t, int64(0), count)
}

func TestCreateProductUnknownBrandName(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("seller@example.com", models.RoleSeller)
	_, categoryID := seedCatalog(t, env)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"brand":    "Acme",
		"category": itoa(categoryID),
		"name":     "Mystery Shirt",
	})
	env.asUser(c, userID, models.RoleSeller)
	require.NoError(t, env.Product.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.Contains(t, resp.Message, "Acme")
}

func TestCreateProductBrandByNumericID(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("seller@example.com", models.RoleSeller)
	brandID, categoryID := seedCatalog(t, env)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"brand":    itoa(brandID),
		"category": itoa(categoryID),
		"name":     "Numeric Brand Shirt",
	})
	env.asUser(c, userID, models.RoleSeller)
	require.NoError(t, env.Product.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	data := dataMap(t, decodeEnvelope(t, rec))
	require.Equal(t, float64(brandID), data["brand_id"])
}

func TestCreateProductUnknownBrandID(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("seller@example.com", models.RoleSeller)
	_, categoryID := seedCatalog(t, env)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/products", map[string]interface{}{
		"brand":    "9999",
		"category": itoa(categoryID),
		"name":     "Ghost Brand Shirt",
	})
	env.asUser(c, userID, models.RoleSeller)
	require.NoError(t, env.Product.Create(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts(t *testing.T) {
	env := newTestEnv(t)
	brandID, categoryID := seedCatalog(t, env)

	for _, name := range []string{"Linen Shirt", "Cotton Shirt", "Silk Kurta"} {
		require.NoError(t, env.DB.Create(&models.Product{
			BrandID:    brandID,
			CategoryID: categoryID,
			Name:       name,
			IsActive:   true,
		}).Error)
	}

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?search=Shirt", nil)
	require.NoError(t, env.Product.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Count)
	require.Equal(t, int64(2), *resp.Count)
}

func TestDeleteProductCascades(t *testing.T) {
	env := newTestEnv(t)
	userID := env.createUser("seller@example.com", models.RoleSeller)
	brandID, categoryID := seedCatalog(t, env)

	product := models.Product{BrandID: brandID, CategoryID: categoryID, Name: "Doomed Shirt", IsActive: true}
	require.NoError(t, env.DB.Create(&product).Error)
	require.NoError(t, env.DB.Create(&models.ProductPrice{ProductID: product.ID, PriceMRP: 100}).Error)
	require.NoError(t, env.DB.Create(&models.ProductCompliance{ProductID: product.ID, CountryOfOrigin: "IN"}).Error)
	require.NoError(t, env.DB.Create(&models.ProductImage{ProductID: product.ID, URL: "/uploads/x.jpg", IsPrimary: true}).Error)
	require.NoError(t, env.DB.Create(&models.UserProduct{UserID: userID, ProductID: product.ID}).Error)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues(itoa(product.ID))
	require.NoError(t, env.Product.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, model := range []interface{}{
		&models.Product{}, &models.ProductPrice{}, &models.ProductCompliance{},
		&models.ProductImage{}, &models.UserProduct{},
	} {
		var count int64
		env.DB.Model(model).Count(&count)
		require.Equal(t, int64(0), count)
	}
}

func TestReplaceImagesFirstIsPrimary(t *testing.T) {
	env := newTestEnv(t)
	brandID, categoryID := seedCatalog(t, env)

	product := models.Product{BrandID: brandID, CategoryID: categoryID, Name: "Shirt", IsActive: true}
	require.NoError(t, env.DB.Create(&product).Error)
	require.NoError(t, env.DB.Create(&models.ProductImage{ProductID: product.ID, URL: "/uploads/old.jpg", IsPrimary: true}).Error)

	images, err := env.Product.Repo.ReplaceImages(context.Background(), nil, product.ID, []string{"/uploads/a.jpg", "/uploads/b.jpg"})
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.True(t, images[0].IsPrimary)
	require.False(t, images[1].IsPrimary)

	var rows []models.ProductImage
	require.NoError(t, env.DB.Where("product_id = ?", product.ID).Find(&rows).Error)
	require.Len(t, rows, 2)
}
