// Package policy содержит чистые функции авторизации.
// Решение false транслируется хендлером в 403, сами функции
// не имеют побочных эффектов и не возвращают ошибок.
package policy

import (
	"blog-platform/internal/models"
	"blog-platform/pkg/auth"
)

// CanModify проверяет право изменять или удалять блог:
// автор или администратор.
func CanModify(actor *auth.Claims, blog *models.Blog) bool {
	if actor == nil {
		return false
	}
	return actor.UserID == blog.AuthorID || actor.Role.IsAdmin()
}

// CanView проверяет право видеть блог: опубликованные видят все,
// неопубликованные — только автор и администратор.
func CanView(actor *auth.Claims, blog *models.Blog) bool {
	if blog.Status == models.StatusPublish {
		return true
	}
	if actor == nil {
		return false
	}
	return actor.UserID == blog.AuthorID || actor.Role.IsAdmin()
}

// CanInteract проверяет, принимает ли блог лайки и комментарии.
// Зависит только от статуса: любой аутентифицированный пользователь
// может взаимодействовать с опубликованным блогом, включая свой.
func CanInteract(blog *models.Blog) bool {
	return blog.Status == models.StatusPublish
}
