package services

import (
	"testing"

	"blog-platform/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusChangedMessage(t *testing.T) {
	msg := StatusChangedMessage("My Post", models.StatusReview, models.StatusPublish)

	// Сообщение называет и старый, и новый статус
	assert.Contains(t, msg, "My Post")
	assert.Contains(t, msg, "review")
	assert.Contains(t, msg, "publish")
}

func TestBlogDeletedMessage(t *testing.T) {
	msg := BlogDeletedMessage("My Post")
	assert.Contains(t, msg, "My Post")
	assert.Contains(t, msg, "deleted")
}

func TestCommentDeletedMessage(t *testing.T) {
	msg := CommentDeletedMessage("My Post")
	assert.Contains(t, msg, "My Post")
	assert.Contains(t, msg, "comment")
}
