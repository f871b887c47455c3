package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification — встроенный документ в массиве user.notifications.
// Создается только сервером как побочный эффект модерации.
type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	Message   string              `bson:"message" json:"message"`
	BlogID    *primitive.ObjectID `bson:"blog_id,omitempty" json:"blog_id,omitempty"`
	Type      string              `bson:"type" json:"type"`
	IsRead    bool                `bson:"is_read" json:"is_read"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// Типы уведомлений
const (
	NotificationTypeStatusChanged  = "status_changed"
	NotificationTypeBlogDeleted    = "blog_deleted"
	NotificationTypeCommentDeleted = "comment_deleted"
)
