package domain

import "time"

// Comment — комментарий под объявлением. Простая дочерняя запись книги,
// менять и удалять может только автор.
type Comment struct {
	ID        string
	BookID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentView — комментарий с публичным профилем автора.
type CommentView struct {
	Comment
	Author PublicProfile
}
