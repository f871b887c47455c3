package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRole(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("moderator").IsValid())
	assert.False(t, Role("").IsValid())

	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())

	role, ok := RoleFromString("admin")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = RoleFromString("superuser")
	assert.False(t, ok)
}

func TestBlogStatus(t *testing.T) {
	assert.True(t, StatusDraft.IsValid())
	assert.True(t, StatusReview.IsValid())
	assert.True(t, StatusPublish.IsValid())
	assert.False(t, BlogStatus("published").IsValid())
	assert.False(t, BlogStatus("").IsValid())
}

func TestBlogIsLikedBy(t *testing.T) {
	liker := primitive.NewObjectID()
	other := primitive.NewObjectID()

	blog := &Blog{Likes: []primitive.ObjectID{liker}}

	assert.True(t, blog.IsLikedBy(liker))
	assert.False(t, blog.IsLikedBy(other))
}

func TestBlogFindComment(t *testing.T) {
	comment := Comment{ID: primitive.NewObjectID(), Text: "hello"}
	blog := &Blog{Comments: []Comment{comment}}

	found, ok := blog.FindComment(comment.ID)
	assert.True(t, ok)
	assert.Equal(t, "hello", found.Text)

	_, ok = blog.FindComment(primitive.NewObjectID())
	assert.False(t, ok)
}
