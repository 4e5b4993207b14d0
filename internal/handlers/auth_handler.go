package handlers

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"pasar/internal/middleware"
	"pasar/internal/models"
	"pasar/internal/services"
	"pasar/pkg/storage"
)

// AuthHandler handles HTTP requests for registration, login and profiles.
type AuthHandler struct {
	authService *services.AuthService
	store       storage.Storage
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, store storage.Storage) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegisterBuyer)
	authRoutes.Post("/register-vendor", h.HandleRegisterVendor)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterProtectedRoutes registers the routes that need a logged-in caller.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/profile", h.HandleGetProfile)
	router.Put("/profile", h.HandleUpdateProfile)
	router.Put("/profile/image", h.HandleUploadProfileImage)
}

// BuyerRegisterRequest is the buyer registration payload. Phone is optional
// for buyers.
type BuyerRegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
}

// VendorRegisterRequest is the vendor registration payload. Vendors must
// provide contact details up front.
type VendorRegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Address  string `json:"address" validate:"required"`
}

// HandleRegisterBuyer registers a buyer and returns a session token.
func (h *AuthHandler) HandleRegisterBuyer(c *fiber.Ctx) error {
	var req BuyerRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     models.RoleBuyer,
	}
	return h.finishRegistration(c, user)
}

// HandleRegisterVendor registers a vendor and returns a session token.
func (h *AuthHandler) HandleRegisterVendor(c *fiber.Ctx) error {
	var req VendorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Role:     models.RoleVendor,
	}
	return h.finishRegistration(c, user)
}

// finishRegistration stores the user and establishes a session by logging
// the fresh account in, mirroring the register-then-login flow of the site.
func (h *AuthHandler) finishRegistration(c *fiber.Ctx, user *models.User) error {
	password := user.Password
	if err := h.authService.RegisterUser(user); err != nil {
		log.Printf("error registering user %s: %v", user.Username, err)
		return errorJSON(c, err, "Registration failed")
	}

	token, _, err := h.authService.LoginUser(user.Username, password)
	if err != nil {
		log.Printf("error issuing token after registration for %s: %v", user.Username, err)
		return errorJSON(c, err, "Registration succeeded but login failed")
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"user":    user,
		"token":   token,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a user and issues a JWT.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationJSON(c, err)
	}

	token, user, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("login failed for user %s: %v", req.Username, err)
		return errorJSON(c, err, "Authentication failed")
	}

	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleGetProfile returns the caller's profile.
func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(middleware.UserID(c))
	if err != nil {
		return errorJSON(c, err, "Could not load profile")
	}
	user.Password = ""
	return c.JSON(user)
}

// HandleUpdateProfile updates the caller's editable profile fields.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var upd services.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(upd); err != nil {
		return validationJSON(c, err)
	}

	user, err := h.authService.UpdateProfile(middleware.UserID(c), upd)
	if err != nil {
		return errorJSON(c, err, "Could not update profile")
	}
	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// HandleUploadProfileImage stores an uploaded profile image and records its
// storage key on the user.
func (h *AuthHandler) HandleUploadProfileImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An 'image' file field is required",
			"error":   err.Error(),
		})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not read uploaded file",
			"error":   err.Error(),
		})
	}
	defer f.Close()

	userID := middleware.UserID(c)
	key := fmt.Sprintf("profiles/%s%s", userID, filepath.Ext(fileHeader.Filename))
	if err := h.store.Put(key, f); err != nil {
		log.Printf("failed to store profile image for %s: %v", userID, err)
		return errorJSON(c, err, "Could not store image")
	}

	user, err := h.authService.SetProfileImage(userID, key)
	if err != nil {
		return errorJSON(c, err, "Could not update profile image")
	}
	user.Password = ""
	return c.JSON(fiber.Map{
		"message": "Profile image updated",
		"user":    user,
		"url":     h.store.URL(key),
	})
}
