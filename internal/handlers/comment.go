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

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddComment appends a comment or reply to a published blog.
// parentId обязан ссылаться на существующий комментарий того же
// блога — иначе ответ был бы невидим в дереве.
func (h *BlogHandler) AddComment(c *gin.Context) {
	blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid blog ID",
		})
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Comment text required",
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
			"message": "Comments allowed only on published blogs",
		})
		return
	}

	// Родитель должен существовать в этом же блоге
	var parent *primitive.ObjectID
	if req.ParentID != "" {
		parentID, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid parent comment ID",
			})
			return
		}
		if _, ok := blog.FindComment(parentID); !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Parent comment not found on this blog",
			})
			return
		}
		parent = &parentID
	}

	claims := middleware.GetClaims(c)
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    claims.UserID,
		Text:      req.Text,
		Parent:    parent,
		CreatedAt: time.Now(),
	}

	_, err = h.blogCollection.UpdateOne(ctx,
		bson.M{"_id": blogID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Возвращаем полный список комментариев с авторами
	blog.Comments = append(blog.Comments, comment)
	if err := populateBlog(ctx, h.userCollection, &blog); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Comment added successfully",
		"comments": blog.Comments,
	})
}

// DeleteCommentByAdmin removes exactly one comment node.
// Ответы на удаленный комментарий остаются и поднимаются
// на верхний уровень при построении дерева.
func (h *BlogHandler) DeleteCommentByAdmin(c *gin.Context) {
	blogID, err := primitive.ObjectIDFromHex(c.Param("blogId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid blog ID",
		})
		return
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid comment ID",
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

	if _, ok := blog.FindComment(commentID); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Comment not found",
		})
		return
	}

	_, err = h.blogCollection.UpdateOne(ctx,
		bson.M{"_id": blogID},
		bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	// Автор блога уведомляется всегда, даже если сам админ
	message := services.CommentDeletedMessage(blog.Title)
	if err := h.notificationService.Append(ctx, blog.AuthorID, message, models.NotificationTypeCommentDeleted, &blog.ID); err != nil {
		log.Printf("Не удалось записать уведомление об удалении комментария: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment deleted by admin",
	})
}

// GetAllBlogsForAdmin returns every blog in every status for the
// moderation dashboard.
func (h *BlogHandler) GetAllBlogsForAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := h.blogCollection.Find(ctx, bson.M{}, opts)
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
		"message": "All blogs fetched for admin",
		"blogs":   blogs,
	})
}
