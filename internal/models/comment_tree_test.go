package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newComment(parent *primitive.ObjectID) Comment {
	return Comment{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Text:   "text",
		Parent: parent,
	}
}

func TestBuildCommentTree_Empty(t *testing.T) {
	forest := BuildCommentTree(nil)
	assert.Empty(t, forest)

	forest = BuildCommentTree([]Comment{})
	assert.Empty(t, forest)
}

func TestBuildCommentTree_FlatList(t *testing.T) {
	comments := []Comment{newComment(nil), newComment(nil), newComment(nil)}

	forest := BuildCommentTree(comments)

	require.Len(t, forest, 3)
	for i, node := range forest {
		// Порядок добавления сохраняется
		assert.Equal(t, comments[i].ID, node.ID)
		assert.Empty(t, node.Replies)
	}
}

func TestBuildCommentTree_Chain(t *testing.T) {
	a := newComment(nil)
	b := newComment(&a.ID)
	c := newComment(&b.ID)

	forest := BuildCommentTree([]Comment{a, b, c})

	require.Len(t, forest, 1)
	assert.Equal(t, a.ID, forest[0].ID)

	require.Len(t, forest[0].Replies, 1)
	assert.Equal(t, b.ID, forest[0].Replies[0].ID)

	require.Len(t, forest[0].Replies[0].Replies, 1)
	assert.Equal(t, c.ID, forest[0].Replies[0].Replies[0].ID)
}

func TestBuildCommentTree_SiblingsUnderOneParent(t *testing.T) {
	root := newComment(nil)
	firstReply := newComment(&root.ID)
	secondReply := newComment(&root.ID)

	forest := BuildCommentTree([]Comment{root, firstReply, secondReply})

	require.Len(t, forest, 1)
	require.Len(t, forest[0].Replies, 2)
	assert.Equal(t, firstReply.ID, forest[0].Replies[0].ID)
	assert.Equal(t, secondReply.ID, forest[0].Replies[1].ID)
}

func TestBuildCommentTree_OrphanPromotedToRoot(t *testing.T) {
	// Родитель удален модератором: ответ не пропадает из выдачи,
	// а поднимается на верхний уровень
	deletedParent := primitive.NewObjectID()
	root := newComment(nil)
	orphan := newComment(&deletedParent)

	forest := BuildCommentTree([]Comment{root, orphan})

	require.Len(t, forest, 2)
	assert.Equal(t, root.ID, forest[0].ID)
	assert.Equal(t, orphan.ID, forest[1].ID)
	assert.Empty(t, forest[1].Replies)
}
