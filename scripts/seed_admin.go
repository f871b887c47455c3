package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Назначает существующему пользователю роль admin.
// Первый администратор создается этим скриптом, дальше он может
// модерировать контент через /api/v1/blogs/admin/*.
func main() {
	email := flag.String("email", "", "email пользователя, которому выдается роль admin")
	mongoURI := flag.String("mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "строка подключения MongoDB")
	dbName := flag.String("db", envOr("DATABASE_NAME", "blog_platform"), "имя базы данных")
	flag.Parse()

	if *email == "" {
		log.Fatal("укажите --email")
	}

	// Подключение к MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(ctx)

	collection := client.Database(*dbName).Collection("users")

	result, err := collection.UpdateOne(
		ctx,
		bson.M{"email": strings.ToLower(strings.TrimSpace(*email))},
		bson.M{"$set": bson.M{
			"role":       "admin",
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		log.Fatal(err)
	}

	if result.MatchedCount == 0 {
		log.Fatalf("пользователь %s не найден, сначала зарегистрируйте его", *email)
	}

	fmt.Printf("Пользователь %s теперь admin\n", *email)
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
