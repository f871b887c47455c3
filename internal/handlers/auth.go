// internal/handlers/auth.go

package handlers

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"time"

	"blog-platform/internal/middleware"
	"blog-platform/internal/models"
	"blog-platform/internal/services"
	"blog-platform/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userCollection *mongo.Collection
	jwtManager     *auth.JWTManager
	emailService   *services.EmailService
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=50"`
	Surname  string `json:"surname" binding:"required,min=1,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=100"`
}

type EditProfileRequest struct {
	Name    string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Surname string `json:"surname,omitempty" binding:"omitempty,min=1,max=50"`
}

// sanitizedUser — представление пользователя в ответах auth
// endpoint'ов, без хеша пароля и инбокса.
type sanitizedUser struct {
	ID      primitive.ObjectID `json:"id"`
	Name    string             `json:"name"`
	Surname string             `json:"surname"`
	Email   string             `json:"email"`
	Role    models.Role        `json:"role"`
}

func sanitizeUser(user *models.User) sanitizedUser {
	return sanitizedUser{
		ID:      user.ID,
		Name:    user.Name,
		Surname: user.Surname,
		Email:   user.Email,
		Role:    user.Role,
	}
}

func NewAuthHandler(userCollection *mongo.Collection, jwtManager *auth.JWTManager, emailService *services.EmailService) *AuthHandler {
	return &AuthHandler{
		userCollection: userCollection,
		jwtManager:     jwtManager,
		emailService:   emailService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "All fields are mandatory",
		})
		return
	}

	// Email сравниваем без учета регистра, храним в нижнем
	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Проверяем, что пользователь с таким email еще не существует
	var existingUser models.User
	err := h.userCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existingUser)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "User already exists",
		})
		return
	} else if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Хешируем пароль
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Создаем нового пользователя
	now := time.Now()
	user := models.User{
		Name:          req.Name,
		Surname:       req.Surname,
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Role:          models.RoleUser,
		Blogs:         []primitive.ObjectID{},
		Notifications: []models.Notification{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := h.userCollection.InsertOne(ctx, user)
	if err != nil {
		// Уникальный индекс по email закрывает гонку двух регистраций
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"message": "User already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	user.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    sanitizeUser(&user),
	})
}

// Login handles user authentication and issues a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "All fields are mandatory",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Находим пользователя; не раскрываем, что именно не совпало
	var user models.User
	err := h.userCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	// Проверяем пароль
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	// Генерируем JWT токен с id и ролью
	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successfully",
		"token":   token,
		"user":    sanitizeUser(&user),
	})
}

// ForgotPassword issues a single-use reset token and emails it.
// Ответ одинаковый вне зависимости от существования email.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid email is required",
		})
		return
	}

	uniformResponse := gin.H{
		"success": true,
		"message": "If this email exists, a reset link was sent",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := h.userCollection.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))}).Decode(&user)
	if err != nil {
		// Не раскрываем существование email
		c.JSON(http.StatusOK, uniformResponse)
		return
	}

	// Генерируем токен; в базу попадает только SHA-256 хеш
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	resetToken := hex.EncodeToString(tokenBytes)
	hashedToken := sha256.Sum256([]byte(resetToken))

	expires := time.Now().Add(10 * time.Minute)
	_, err = h.userCollection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{
			"reset_password_token":   hex.EncodeToString(hashedToken[:]),
			"reset_password_expires": expires,
			"updated_at":             time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	if err := h.emailService.SendPasswordReset(user.Email, resetToken); err != nil {
		// Письмо не ушло — логируем, но ответ остается одинаковым
		log.Printf("Ошибка отправки письма сброса пароля: %v", err)
	}

	c.JSON(http.StatusOK, uniformResponse)
}

// ResetPassword consumes a reset token and sets the new password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Password must be at least 6 characters",
		})
		return
	}

	// Хешируем токен из URL и ищем совпадение с неистекшим сроком
	hashedToken := sha256.Sum256([]byte(c.Param("token")))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := h.userCollection.FindOne(ctx, bson.M{
		"reset_password_token":   hex.EncodeToString(hashedToken[:]),
		"reset_password_expires": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Token invalid or expired",
		})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Токен одноразовый: сбрасываем его вместе со сменой пароля
	_, err = h.userCollection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{
			"$set": bson.M{
				"password_hash": string(hashedPassword),
				"updated_at":    time.Now(),
			},
			"$unset": bson.M{
				"reset_password_token":   "",
				"reset_password_expires": "",
			},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated successfully",
	})
}

// EditProfile updates the caller's name and surname
func (h *AuthHandler) EditProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req EditProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	// Обновляем только переданные поля
	updates := bson.M{"updated_at": time.Now()}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Surname != "" {
		updates["surname"] = req.Surname
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := h.userCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": claims.UserID},
		bson.M{"$set": updates},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    sanitizeUser(&user),
	})
}

// GetProfile returns the caller's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.GetClaims(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := h.userCollection.FindOne(ctx, bson.M{"_id": claims.UserID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User profile fetched",
		"user":    sanitizeUser(&user),
	})
}
