package handlers

import (
	"testing"

	"blog-platform/internal/models"
	"blog-platform/pkg/auth"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleLikeSet_RoundTrip(t *testing.T) {
	userID := primitive.NewObjectID()
	other := primitive.NewObjectID()
	likes := []primitive.ObjectID{other}

	liked := toggleLikeSet(likes, userID)
	assert.Len(t, liked, 2)
	assert.Contains(t, liked, userID)
	assert.Contains(t, liked, other)

	// Повторное переключение возвращает исходное множество
	unliked := toggleLikeSet(liked, userID)
	assert.Equal(t, []primitive.ObjectID{other}, unliked)
}

func TestToggleLikeSet_EmptySet(t *testing.T) {
	userID := primitive.NewObjectID()

	liked := toggleLikeSet(nil, userID)
	assert.Equal(t, []primitive.ObjectID{userID}, liked)

	unliked := toggleLikeSet(liked, userID)
	assert.Empty(t, unliked)
}

func TestToggleLikeSet_NoDuplicates(t *testing.T) {
	userID := primitive.NewObjectID()
	likes := []primitive.ObjectID{userID}

	// Пользователь уже в множестве — переключение только убирает его
	unliked := toggleLikeSet(likes, userID)
	assert.NotContains(t, unliked, userID)
	assert.Empty(t, unliked)
}

func TestStatusChangeNotifies(t *testing.T) {
	author := primitive.NewObjectID()
	admin := primitive.NewObjectID()

	adminClaims := &auth.Claims{UserID: admin, Role: models.RoleAdmin}
	adminAuthorClaims := &auth.Claims{UserID: author, Role: models.RoleAdmin}
	authorClaims := &auth.Claims{UserID: author, Role: models.RoleUser}

	// Админ, не являющийся автором, реально сменил статус — уведомляем
	assert.True(t, statusChangeNotifies(adminClaims, author, models.StatusReview, models.StatusPublish))

	// Автор меняет свой статус сам — без уведомления, даже если он админ
	assert.False(t, statusChangeNotifies(authorClaims, author, models.StatusDraft, models.StatusReview))
	assert.False(t, statusChangeNotifies(adminAuthorClaims, author, models.StatusReview, models.StatusPublish))

	// Статус не изменился — без уведомления
	assert.False(t, statusChangeNotifies(adminClaims, author, models.StatusPublish, models.StatusPublish))
}
