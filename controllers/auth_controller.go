package controllers

import (
	"errors"
	"log"
	"os"
	"time"

	"mantatrack/models"
	"mantatrack/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Read per call so a secret loaded from .env in main is picked up.
func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("default-secret")
}

// AuthController handles buyer login, signup and profile management against
// the in-memory user directory. The active session is mirrored to the session
// store the same way the browser build mirrors it to local storage.
type AuthController struct {
	directory *store.Directory
	sessions  *store.SessionStore
}

func NewAuthController(directory *store.Directory, sessions *store.SessionStore) *AuthController {
	return &AuthController{directory: directory, sessions: sessions}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    *AuthResponseData `json:"data,omitempty"`
}

type AuthResponseData struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Login authenticates a buyer by email and issues a session token.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AuthResponse{
			Success: false,
			Message: "Invalid request format",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(AuthResponse{
			Success: false,
			Message: "Email and password are required",
		})
	}

	user, err := ac.directory.Login(req.Email, req.Password)
	if err != nil {
		log.Println("❌ Login failed for:", req.Email)
		return c.Status(fiber.StatusUnauthorized).JSON(AuthResponse{
			Success: false,
			Message: "Invalid email or password",
		})
	}

	tokenString, err := generateToken(user)
	if err != nil {
		log.Printf("❌ Error generating JWT token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(AuthResponse{
			Success: false,
			Message: "Could not generate login token",
		})
	}

	if err := ac.sessions.Save(user); err != nil {
		log.Printf("Failed to mirror session: %v", err)
	}

	return c.JSON(AuthResponse{
		Success: true,
		Message: "Login successful",
		Data: &AuthResponseData{
			User:  &user,
			Token: tokenString,
		},
	})
}

type SignupRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=6"`
	Market         string `json:"market" validate:"required"`
	Location       string `json:"location" validate:"required"`
	ContactVisible bool   `json:"contact_visible"`
}

// Signup registers a new buyer and logs them straight in.
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AuthResponse{
			Success: false,
			Message: "Invalid request format",
		})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(AuthResponse{
			Success: false,
			Message: "Validation failed: " + err.Error(),
		})
	}

	user, err := ac.directory.Signup(store.SignupInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Market:         req.Market,
		Location:       req.Location,
		ContactVisible: req.ContactVisible,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(AuthResponse{
				Success: false,
				Message: "Email is already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(AuthResponse{
			Success: false,
			Message: "Failed to create account",
		})
	}

	tokenString, err := generateToken(user)
	if err != nil {
		log.Printf("❌ Error generating JWT token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(AuthResponse{
			Success: false,
			Message: "Could not generate login token",
		})
	}

	if err := ac.sessions.Save(user); err != nil {
		log.Printf("Failed to mirror session: %v", err)
	}

	log.Printf("✅ New buyer registered: %s (%s)", user.Name, user.Email)

	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Success: true,
		Message: "Account created",
		Data: &AuthResponseData{
			User:  &user,
			Token: tokenString,
		},
	})
}

// Logout clears the mirrored session. The token itself simply expires.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if err := ac.sessions.Clear(); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Logged out"})
}

// GetSession restores the mirrored session, if one exists. A corrupted blob
// reads as logged out.
func (ac *AuthController) GetSession(c *fiber.Ctx) error {
	user, ok := ac.sessions.Load()
	if !ok {
		return c.JSON(AuthResponse{Success: false, Message: "No active session"})
	}
	return c.JSON(AuthResponse{
		Success: true,
		Message: "Session restored",
		Data:    &AuthResponseData{User: &user},
	})
}

// GetProfile returns the authenticated buyer's record.
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	user, err := ac.directory.UserByID(c.Locals("buyer_id").(string))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}
	return c.JSON(user)
}

// UpdateProfile merges the submitted fields into the buyer's record and
// refreshes the session mirror.
func (ac *AuthController) UpdateProfile(c *fiber.Ctx) error {
	var upd models.ProfileUpdate
	if err := c.BodyParser(&upd); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid input"})
	}

	user, err := ac.directory.UpdateProfile(c.Locals("buyer_id").(string), upd)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "User not found"})
	}

	if err := ac.sessions.Save(user); err != nil {
		log.Printf("Failed to mirror session: %v", err)
	}

	return c.JSON(fiber.Map{"message": "Profile updated", "user": user})
}

func generateToken(user models.User) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"buyer_id":   user.ID,
		"buyer_name": user.Name,
		"market":     user.Market,
		"location":   user.Location,
		"email":      user.Email,
		"exp":        expirationTime.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}
