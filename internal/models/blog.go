package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogStatus представляет статус жизненного цикла блога
type BlogStatus string

const (
	StatusDraft   BlogStatus = "draft"
	StatusReview  BlogStatus = "review"
	StatusPublish BlogStatus = "publish"
)

// IsValid проверяет, что статус валиден
func (s BlogStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusReview, StatusPublish:
		return true
	}
	return false
}

func (s BlogStatus) String() string {
	return string(s)
}

// Comment — встроенный документ в массиве blog.comments.
// Хранится плоским списком в порядке добавления; parent ссылается
// на другой комментарий того же блога.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    primitive.ObjectID  `bson:"user" json:"user_id"`
	Text      string              `bson:"text" json:"text"`
	Parent    *primitive.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`

	// Заполняется из коллекции users при выдаче, в базе не хранится
	User *UserSummary `bson:"-" json:"user,omitempty"`
}

type Blog struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`

	// Автор неизменяем после создания
	AuthorID primitive.ObjectID `bson:"author" json:"author_id"`

	Status BlogStatus `bson:"status" json:"status"`

	// Множество лайков: каждый пользователь не более одного раза
	Likes []primitive.ObjectID `bson:"likes" json:"likes"`

	Comments []Comment `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`

	// Заполняется из коллекции users при выдаче, в базе не хранится
	Author *UserSummary `bson:"-" json:"author,omitempty"`
}

// IsLikedBy проверяет наличие пользователя в множестве лайков.
func (b *Blog) IsLikedBy(userID primitive.ObjectID) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// FindComment возвращает комментарий блога по id.
func (b *Blog) FindComment(commentID primitive.ObjectID) (*Comment, bool) {
	for i := range b.Comments {
		if b.Comments[i].ID == commentID {
			return &b.Comments[i], true
		}
	}
	return nil, false
}
