package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"blog-platform/internal/models"
	"blog-platform/internal/websocket"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// NotificationService ведет встроенный инбокс уведомлений пользователя.
// Append вызывается только другими сервисами как побочный эффект
// модерации и не выставляется наружу отдельным endpoint'ом.
type NotificationService struct {
	userCollection *mongo.Collection
	hub            *websocket.Hub
}

func NewNotificationService(userCollection *mongo.Collection, hub *websocket.Hub) *NotificationService {
	return &NotificationService{
		userCollection: userCollection,
		hub:            hub,
	}
}

// Append добавляет уведомление в инбокс получателя и пушит его
// в открытые WebSocket-соединения. Ошибка записи не прерывает
// вызывающую операцию: изменение блога уже сохранено.
func (ns *NotificationService) Append(ctx context.Context, userID primitive.ObjectID, message, notificationType string, blogID *primitive.ObjectID) error {
	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		Message:   message,
		BlogID:    blogID,
		Type:      notificationType,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	_, err := ns.userCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"notifications": notification}},
	)
	if err != nil {
		return fmt.Errorf("failed to append notification: %w", err)
	}

	if ns.hub != nil {
		ns.hub.NotifyUser(userID, notification)
	}

	return nil
}

// List возвращает уведомления пользователя, новые первыми.
func (ns *NotificationService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	var user models.User
	err := ns.userCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}

	notifications := user.Notifications
	if notifications == nil {
		notifications = []models.Notification{}
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	return notifications, nil
}

// UnreadCount возвращает число непрочитанных уведомлений.
func (ns *NotificationService) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int, error) {
	notifications, err := ns.List(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, n := range notifications {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkRead помечает прочитанным одно уведомление из инбокса
// пользователя. Возвращает mongo.ErrNoDocuments, если уведомление
// с таким id пользователю не принадлежит.
func (ns *NotificationService) MarkRead(ctx context.Context, userID, notificationID primitive.ObjectID) error {
	result, err := ns.userCollection.UpdateOne(ctx,
		bson.M{"_id": userID, "notifications._id": notificationID},
		bson.M{"$set": bson.M{"notifications.$.is_read": true}},
	)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// Тексты уведомлений модерации. Вынесены отдельно, чтобы клиент
// и тесты видели один и тот же формат.

func StatusChangedMessage(blogTitle string, from, to models.BlogStatus) string {
	return fmt.Sprintf("Admin changed your blog %q from %s to %s.", blogTitle, from, to)
}

func BlogDeletedMessage(blogTitle string) string {
	return fmt.Sprintf("Admin deleted your blog %q.", blogTitle)
}

func CommentDeletedMessage(blogTitle string) string {
	return fmt.Sprintf("Admin deleted a comment on your blog %q.", blogTitle)
}
