package handlers

import (
	"context"

	"blog-platform/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fetchUserSummaries загружает публичные данные пользователей одним
// запросом. Аналог mongoose populate("author", "name surname role"):
// вместо join'а документной базе нужен второй запрос по списку id.
func fetchUserSummaries(ctx context.Context, userCollection *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.UserSummary, error) {
	summaries := make(map[primitive.ObjectID]*models.UserSummary)
	if len(ids) == 0 {
		return summaries, nil
	}

	// Убираем дубликаты перед $in
	seen := make(map[primitive.ObjectID]bool, len(ids))
	unique := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	cursor, err := userCollection.Find(ctx, bson.M{"_id": bson.M{"$in": unique}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.UserSummary
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	for i := range users {
		summaries[users[i].ID] = &users[i]
	}
	return summaries, nil
}

// populateBlogs подставляет авторов в список блогов и, если
// withComments, авторов их комментариев.
func populateBlogs(ctx context.Context, userCollection *mongo.Collection, blogs []models.Blog, withComments bool) error {
	var ids []primitive.ObjectID
	for i := range blogs {
		ids = append(ids, blogs[i].AuthorID)
		if withComments {
			for j := range blogs[i].Comments {
				ids = append(ids, blogs[i].Comments[j].UserID)
			}
		}
	}

	summaries, err := fetchUserSummaries(ctx, userCollection, ids)
	if err != nil {
		return err
	}

	for i := range blogs {
		blogs[i].Author = summaries[blogs[i].AuthorID]
		if withComments {
			for j := range blogs[i].Comments {
				blogs[i].Comments[j].User = summaries[blogs[i].Comments[j].UserID]
			}
		}
	}
	return nil
}

// populateBlog подставляет автора и авторов комментариев в один блог.
func populateBlog(ctx context.Context, userCollection *mongo.Collection, blog *models.Blog) error {
	blogs := []models.Blog{*blog}
	if err := populateBlogs(ctx, userCollection, blogs, true); err != nil {
		return err
	}
	*blog = blogs[0]
	return nil
}
