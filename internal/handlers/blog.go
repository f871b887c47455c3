package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"blog-platform/internal/middleware"
	"blog-platform/internal/models"
	"blog-platform/internal/policy"
	"blog-platform/internal/services"
	"blog-platform/pkg/auth"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BlogHandler struct {
	blogCollection      *mongo.Collection
	userCollection      *mongo.Collection
	notificationService *services.NotificationService
}

type CreateBlogRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1"`
	Status  string `json:"status,omitempty"`
}

type UpdateBlogRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
}

type AddCommentRequest struct {
	Text     string `json:"text" binding:"required,min=1,max=2000"`
	ParentID string `json:"parentId,omitempty"`
}

func NewBlogHandler(blogCollection, userCollection *mongo.Collection, notificationService *services.NotificationService) *BlogHandler {
	return &BlogHandler{
		blogCollection:      blogCollection,
		userCollection:      userCollection,
		notificationService: notificationService,
	}
}

// CreateBlog creates a blog owned by the caller, default status draft
func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Title and content required",
		})
		return
	}

	// Статус по умолчанию draft, переданный должен быть из enum'а
	status := models.StatusDraft
	if req.Status != "" {
		status = models.BlogStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid status value",
			})
			return
		}
	}

	claims := middleware.GetClaims(c)

	now := time.Now()
	blog := models.Blog{
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  claims.UserID,
		Status:    status,
		Likes:     []primitive.ObjectID{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.blogCollection.InsertOne(ctx, blog)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	blog.ID = result.InsertedID.(primitive.ObjectID)

	// Регистрируем блог в списке блогов автора
	_, err = h.userCollection.UpdateOne(ctx,
		bson.M{"_id": claims.UserID},
		bson.M{"$push": bson.M{"blogs": blog.ID}},
	)
	if err != nil {
		log.Printf("Не удалось добавить блог %s в список автора: %v", blog.ID.Hex(), err)
	}

	if err := populateBlog(ctx, h.userCollection, &blog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Blog created successfully",
		"blog":    blog,
	})
}

// GetAllBlogs returns published blogs, newest first
func (h *BlogHandler) GetAllBlogs(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := h.blogCollection.Find(ctx, bson.M{"status": models.StatusPublish}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	if err := populateBlogs(ctx, h.userCollection, blogs, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blogs fetched successfully",
		"blogs":   blogs,
	})
}

// GetBlogByID returns one blog, visibility-gated
func (h *BlogHandler) GetBlogByID(c *gin.Context) {
	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid blog ID",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var blog models.Blog
	err = h.blogCollection.FindOne(ctx, bson.M{"_id": blogID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Blog not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Неопубликованный блог видят только автор и админ;
	// claims могут быть nil (optional auth)
	if !policy.CanView(middleware.GetClaims(c), &blog) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Not authorized",
		})
		return
	}

	if err := populateBlog(ctx, h.userCollection, &blog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"blog":         blog,
		"comment_tree": models.BuildCommentTree(blog.Comments),
	})
}

// GetMyBlogs returns the caller's blogs in any status, newest first
func (h *BlogHandler) GetMyBlogs(c *gin.Context) {
	claims := middleware.GetClaims(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := h.blogCollection.Find(ctx, bson.M{"author": claims.UserID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}
	defer cursor.Close(ctx)

	blogs := []models.Blog{}
	if err := cursor.All(ctx, &blogs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	if err := populateBlogs(ctx, h.userCollection, blogs, true); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fetched my created blogs",
		"blogs":   blogs,
	})
}

// UpdateBlog applies a partial update, authorization-gated.
// Смена статуса админом на чужом блоге порождает уведомление автору.
func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid blog ID",
		})
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data",
		})
		return
	}

	// Статус валидируем до чтения документа
	var newStatus models.BlogStatus
	if req.Status != nil {
		newStatus = models.BlogStatus(*req.Status)
		if !newStatus.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid status value",
			})
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var blog models.Blog
	err = h.blogCollection.FindOne(ctx, bson.M{"_id": blogID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Blog not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	claims := middleware.GetClaims(c)
	if !policy.CanModify(claims, &blog) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Not authorized to update this blog",
		})
		return
	}

	previousStatus := blog.Status

	// Применяем только переданные поля
	updates := bson.M{"updated_at": time.Now()}
	if req.Title != nil {
		blog.Title = *req.Title
		updates["title"] = blog.Title
	}
	if req.Content != nil {
		blog.Content = *req.Content
		updates["content"] = blog.Content
	}
	if req.Status != nil {
		blog.Status = newStatus
		updates["status"] = blog.Status
	}

	_, err = h.blogCollection.UpdateOne(ctx, bson.M{"_id": blogID}, bson.M{"$set": updates})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Уведомляем автора, если статус сменил админ, не являющийся автором
	if req.Status != nil && statusChangeNotifies(claims, blog.AuthorID, previousStatus, newStatus) {
		message := services.StatusChangedMessage(blog.Title, previousStatus, newStatus)
		if err := h.notificationService.Append(ctx, blog.AuthorID, message, models.NotificationTypeStatusChanged, &blog.ID); err != nil {
			log.Printf("Не удалось записать уведомление о смене статуса: %v", err)
		}
	}

	if err := populateBlog(ctx, h.userCollection, &blog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blog updated successfully",
		"blog":    blog,
	})
}

// DeleteBlog removes a blog, authorization-gated.
// Удаление чужого блога админом порождает уведомление автору.
func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid blog ID",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var blog models.Blog
	err = h.blogCollection.FindOne(ctx, bson.M{"_id": blogID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Blog not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	claims := middleware.GetClaims(c)
	if !policy.CanModify(claims, &blog) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Not authorized",
		})
		return
	}

	if _, err := h.blogCollection.DeleteOne(ctx, bson.M{"_id": blogID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Убираем ссылку из списка блогов автора
	_, err = h.userCollection.UpdateOne(ctx,
		bson.M{"_id": blog.AuthorID},
		bson.M{"$pull": bson.M{"blogs": blog.ID}},
	)
	if err != nil {
		log.Printf("Не удалось убрать блог %s из списка автора: %v", blog.ID.Hex(), err)
	}

	isAuthor := claims.UserID == blog.AuthorID
	if claims.Role.IsAdmin() && !isAuthor {
		// blog_id в уведомлении нужен клиенту для deep-link
		message := services.BlogDeletedMessage(blog.Title)
		if err := h.notificationService.Append(ctx, blog.AuthorID, message, models.NotificationTypeBlogDeleted, &blog.ID); err != nil {
			log.Printf("Не удалось записать уведомление об удалении блога: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Blog deleted",
	})
}

// ToggleLike flips the caller's membership in the like set.
// Направление не передается: повторный вызов снимает лайк.
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid blog ID",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var blog models.Blog
	err = h.blogCollection.FindOne(ctx, bson.M{"_id": blogID}).Decode(&blog)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Blog not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	if !policy.CanInteract(&blog) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Cannot like unpublished blog",
		})
		return
	}

	claims := middleware.GetClaims(c)

	// $addToSet/$pull не дадут дубликата даже при гонке двух кликов
	var update bson.M
	if blog.IsLikedBy(claims.UserID) {
		update = bson.M{"$pull": bson.M{"likes": claims.UserID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": claims.UserID}}
	}
	blog.Likes = toggleLikeSet(blog.Likes, claims.UserID)

	if _, err := h.blogCollection.UpdateOne(ctx, bson.M{"_id": blogID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	if err := populateBlog(ctx, h.userCollection, &blog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"blog":    blog,
	})
}

// toggleLikeSet переключает членство userID в множестве лайков:
// повторное применение возвращает исходное множество.
func toggleLikeSet(likes []primitive.ObjectID, userID primitive.ObjectID) []primitive.ObjectID {
	filtered := make([]primitive.ObjectID, 0, len(likes))
	for _, id := range likes {
		if id != userID {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == len(likes) {
		return append(filtered, userID)
	}
	return filtered
}

// statusChangeNotifies определяет, требует ли смена статуса уведомления
// автору: статус реально изменился, его сменил админ и он не автор.
func statusChangeNotifies(actor *auth.Claims, authorID primitive.ObjectID, previous, next models.BlogStatus) bool {
	return previous != next && actor.Role.IsAdmin() && actor.UserID != authorID
}
