package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/stitchkart/tailor_shop/internal/events"
	"github.com/stitchkart/tailor_shop/internal/hash"
	"github.com/stitchkart/tailor_shop/internal/models"
	"github.com/stitchkart/tailor_shop/internal/repo"
)

type AuthHandler struct {
	Responder
	Users     *repo.UserRepository
	JWTSecret []byte
	TokenTTL  time.Duration
	Producer  *events.Producer
}

func publish(c echo.Context, producer *events.Producer, topic, key string, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := producer.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}

func signToken(userID uint, roles []string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   float64(userID),
		"roles": roles,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		Email    string   `json:"email"`
		Password string   `json:"password"`
		Name     string   `json:"name"`
		Phone    string   `json:"phone"`
		Roles    []string `json:"roles"`
	}
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return h.fail(c, http.StatusBadRequest, "email, password and name are required", nil)
	}

	ctx := c.Request().Context()

	existing, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to check existing user", err)
	}
	if existing != nil {
		return h.fail(c, http.StatusBadRequest, "user already exists", nil)
	}

	if len(req.Roles) == 0 {
		req.Roles = []string{models.RoleCustomer}
	}
	roleIDs := make([]uint, 0, len(req.Roles))
	for _, name := range req.Roles {
		role, err := h.Users.GetRoleByName(ctx, name)
		if err != nil {
			return h.fail(c, http.StatusInternalServerError, "failed to look up role", err)
		}
		if role == nil {
			return h.fail(c, http.StatusBadRequest, "unknown role: "+name, nil)
		}
		roleIDs = append(roleIDs, role.ID)
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to hash password", err)
	}

	user, err := h.Users.Create(ctx, &models.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Name:         req.Name,
		Phone:        req.Phone,
	})
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to create user", err)
	}

	for _, roleID := range roleIDs {
		if err := h.Users.AssignRole(ctx, user.ID, roleID); err != nil {
			return h.fail(c, http.StatusInternalServerError, "failed to assign role", err)
		}
	}

	publish(c, h.Producer, events.TopicUserEvents, itoa(user.ID), map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
		"roles":  req.Roles,
	})

	return h.ok(c, http.StatusCreated, "user created", echo.Map{
		"user":  user,
		"roles": req.Roles,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return h.fail(c, http.StatusBadRequest, "invalid request body", err)
	}

	ctx := c.Request().Context()

	user, err := h.Users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(req.Email)))
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to look up user", err)
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, req.Password) {
		return h.fail(c, http.StatusBadRequest, "invalid email or password", nil)
	}

	roles, err := h.Users.RoleNames(ctx, user.ID)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to load roles", err)
	}

	token, err := signToken(user.ID, roles, h.JWTSecret, h.TokenTTL)
	if err != nil {
		return h.fail(c, http.StatusInternalServerError, "failed to sign token", err)
	}

	publish(c, h.Producer, events.TopicUserEvents, itoa(user.ID), map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
	})

	return h.ok(c, http.StatusOK, "login successful", echo.Map{
		"token": token,
		"user":  user,
		"roles": roles,
	})
}
