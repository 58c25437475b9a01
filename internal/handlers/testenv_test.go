package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stitchkart/tailor_shop/internal/config"
	"github.com/stitchkart/tailor_shop/internal/hash"
	"github.com/stitchkart/tailor_shop/internal/models"
	"github.com/stitchkart/tailor_shop/internal/repo"
	"github.com/stitchkart/tailor_shop/internal/service"
	"github.com/stitchkart/tailor_shop/internal/upload"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB

	Auth         *AuthHandler
	Business     *BusinessHandler
	Product      *ProductHandler
	Order        *OrderHandler
	Address      *AddressHandler
	Measurement  *MeasurementHandler
	Users        *repo.UserRepository
	Orders       *repo.OrderRepository
	Measurements *repo.MeasurementRepository
}

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	db := initTestDB(t)

	uploads, err := upload.NewStore(t.TempDir())
	require.NoError(t, err)

	users := &repo.UserRepository{DB: db}
	businesses := &repo.BusinessRepository{DB: db}
	availability := &repo.AvailabilityRepository{DB: db}
	catalog := &repo.CatalogRepository{DB: db}
	products := &repo.ProductRepository{DB: db}
	orders := &repo.OrderRepository{DB: db}
	addresses := &repo.AddressRepository{DB: db}
	measurements := &repo.MeasurementRepository{DB: db}

	responder := Responder{Production: false}
	jwtSecret := []byte("test_secret")

	return &testEnv{
		T:  t,
		E:  echo.New(),
		DB: db,
		Auth: &AuthHandler{
			Responder: responder,
			Users:     users,
			JWTSecret: jwtSecret,
			TokenTTL:  time.Hour,
		},
		Business: &BusinessHandler{
			Responder:    responder,
			Businesses:   businesses,
			Availability: availability,
			Uploads:      uploads,
		},
		Product: &ProductHandler{
			Responder: responder,
			Products:  &service.ProductService{DB: db, Catalog: catalog, Products: products},
			Repo:      products,
			Uploads:   uploads,
		},
		Order: &OrderHandler{
			Responder: responder,
			Orders:    &service.OrderService{DB: db, Users: users, Businesses: businesses, Orders: orders},
			Repo:      orders,
		},
		Address: &AddressHandler{
			Responder: responder,
			Addresses: addresses,
			Orders:    orders,
		},
		Measurement: &MeasurementHandler{
			Responder:    responder,
			Measurements: &service.MeasurementService{DB: db, Orders: orders, Measurements: measurements},
			Repo:         measurements,
		},
		Users:        users,
		Orders:       orders,
		Measurements: measurements,
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// asUser puts the authenticated identity on the context the way the auth
// middleware would.
func (env *testEnv) asUser(c echo.Context, userID uint, roles ...string) {
	c.Set("userID", userID)
	c.Set("roles", roles)
}

// createUser inserts a user with the given roles and returns its id.
func (env *testEnv) createUser(email string, roles ...string) uint {
	env.T.Helper()

	passwordHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	user := models.User{Email: email, PasswordHash: passwordHash, Name: "Test User"}
	require.NoError(env.T, env.DB.Create(&user).Error)

	for _, name := range roles {
		var role models.Role
		require.NoError(env.T, env.DB.Where("name = ?", name).First(&role).Error)
		require.NoError(env.T, env.DB.Create(&models.UserRole{
			UserID:     user.ID,
			RoleID:     role.ID,
			AssignedAt: time.Now(),
		}).Error)
	}
	return user.ID
}

func (env *testEnv) createBusiness(userID uint, shopName string) uint {
	env.T.Helper()
	business := models.BusinessInformation{UserID: userID, ShopName: shopName}
	require.NoError(env.T, env.DB.Create(&business).Error)
	return business.ID
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// dataMap re-decodes the envelope data as a generic map for field access.
func dataMap(t *testing.T, env Envelope) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}
