package paging

// Params — нормализованные параметры страницы. Нумерация страниц с единицы.
type Params struct {
	Page  int
	Limit int
}

const (
	DefaultPage = 1
	MaxLimit    = 100
)

// Normalize приводит сырые значения из запроса к допустимым.
// defaultLimit различается по ресурсам (книги/транзакции — 20, комментарии — 50).
func Normalize(page, limit, defaultLimit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset — смещение для windowed-запроса к хранилищу.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta — метаданные пагинации в ответе. Форма одинакова для обоих
// путей выборки (один запрос к хранилищу или слияние двух) — вызывающая
// сторона не должна видеть, какая стратегия была использована.
type Meta struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// NewMeta считает totalPages = ceil(total/limit). total=0 -> totalPages=0.
func NewMeta(total int, p Params) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Window возвращает границы среза [from, to) для выборки в памяти.
// Используется merged-path'ом, где страница вырезается из объединённого списка.
func (p Params) Window(total int) (from, to int) {
	from = p.Offset()
	if from > total {
		from = total
	}
	to = from + p.Limit
	if to > total {
		to = total
	}
	return from, to
}
