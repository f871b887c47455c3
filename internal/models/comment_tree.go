package models

// CommentNode — узел дерева комментариев для выдачи клиенту.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree восстанавливает лес комментариев из плоского списка
// по ссылкам parent. Чистая функция, пересчитывается при каждой выдаче.
//
// Порядок обхода — порядок добавления. Комментарий, чей parent не
// найден в списке (например, родитель удален модератором), поднимается
// на верхний уровень, а не пропадает из выдачи.
func BuildCommentTree(comments []Comment) []*CommentNode {
	nodes := make(map[string]*CommentNode, len(comments))
	ordered := make([]*CommentNode, 0, len(comments))

	// Первый проход: создаем узел для каждого комментария
	for i := range comments {
		node := &CommentNode{
			Comment: comments[i],
			Replies: []*CommentNode{},
		}
		nodes[comments[i].ID.Hex()] = node
		ordered = append(ordered, node)
	}

	// Второй проход: подвешиваем каждый узел к родителю,
	// сироты и корни попадают в верхний уровень
	roots := make([]*CommentNode, 0, len(comments))
	for _, node := range ordered {
		if node.Parent != nil {
			if parent, ok := nodes[node.Parent.Hex()]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}
