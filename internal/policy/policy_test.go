package policy

import (
	"testing"

	"blog-platform/internal/models"
	"blog-platform/pkg/auth"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newBlog(author primitive.ObjectID, status models.BlogStatus) *models.Blog {
	return &models.Blog{
		ID:       primitive.NewObjectID(),
		Title:    "Test Blog",
		AuthorID: author,
		Status:   status,
	}
}

func claimsFor(id primitive.ObjectID, role models.Role) *auth.Claims {
	return &auth.Claims{UserID: id, Role: role}
}

func TestCanView_Anonymous(t *testing.T) {
	author := primitive.NewObjectID()

	// Аноним видит блог тогда и только тогда, когда он опубликован
	assert.True(t, CanView(nil, newBlog(author, models.StatusPublish)))
	assert.False(t, CanView(nil, newBlog(author, models.StatusDraft)))
	assert.False(t, CanView(nil, newBlog(author, models.StatusReview)))
}

func TestCanView_AuthorAndAdmin(t *testing.T) {
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	admin := primitive.NewObjectID()

	draft := newBlog(author, models.StatusDraft)

	assert.True(t, CanView(claimsFor(author, models.RoleUser), draft))
	assert.True(t, CanView(claimsFor(admin, models.RoleAdmin), draft))
	assert.False(t, CanView(claimsFor(stranger, models.RoleUser), draft))
}

func TestCanModify(t *testing.T) {
	author := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	admin := primitive.NewObjectID()

	for _, status := range []models.BlogStatus{models.StatusDraft, models.StatusReview, models.StatusPublish} {
		blog := newBlog(author, status)

		assert.True(t, CanModify(claimsFor(author, models.RoleUser), blog))
		assert.True(t, CanModify(claimsFor(admin, models.RoleAdmin), blog))

		// Не-автор без роли admin не может менять блог ни в каком статусе
		assert.False(t, CanModify(claimsFor(stranger, models.RoleUser), blog))
		assert.False(t, CanModify(nil, blog))
	}
}

func TestCanInteract(t *testing.T) {
	author := primitive.NewObjectID()

	// Взаимодействие зависит только от статуса
	assert.True(t, CanInteract(newBlog(author, models.StatusPublish)))
	assert.False(t, CanInteract(newBlog(author, models.StatusDraft)))
	assert.False(t, CanInteract(newBlog(author, models.StatusReview)))
}
