package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/marvelcn015/api-utaipei-book-xchange/internal/contextkeys"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/domain"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/paging"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port"
	"github.com/marvelcn015/api-utaipei-book-xchange/internal/core/port/usecases_port"
)

const (
	defaultBookPageLimit = 20

	// Бюджет памяти на разбор multipart-формы; остальное уходит во временные файлы.
	maxMultipartMemory = 32 << 20
)

// BookHandler обслуживает /books/*.
type BookHandler struct {
	createUC  usecases_port.CreateBookUseCasePort
	findUC    usecases_port.FindBooksUseCasePort
	findMyUC  usecases_port.FindMyBooksUseCasePort
	getUC     usecases_port.GetBookUseCasePort
	updateUC  usecases_port.UpdateBookUseCasePort
	deleteUC  usecases_port.DeleteBookUseCasePort
}

// NewBookHandler - конструктор.
func NewBookHandler(
	createUC usecases_port.CreateBookUseCasePort,
	findUC usecases_port.FindBooksUseCasePort,
	findMyUC usecases_port.FindMyBooksUseCasePort,
	getUC usecases_port.GetBookUseCasePort,
	updateUC usecases_port.UpdateBookUseCasePort,
	deleteUC usecases_port.DeleteBookUseCasePort,
) *BookHandler {
	return &BookHandler{
		createUC: createUC,
		findUC:   findUC,
		findMyUC: findMyUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// readImages достаёт файлы из поля "images" multipart-формы.
func readImages(r *http.Request) ([]port.ImageUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var images []port.ImageUpload
	for _, fh := range r.MultipartForm.File["images"] {
		file, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, port.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return images, nil
}

// formValue возвращает значение поля формы и признак его присутствия.
// Для PATCH отличие "поле не прислано" от "прислано пустым" существенно.
func formValue(r *http.Request, key string) (string, bool) {
	if r.MultipartForm == nil {
		return "", false
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Create обрабатывает POST /api/v1/books (multipart/form-data)
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateBook"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		logger.Warn("Failed to parse multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Request must be multipart/form-data")
		return
	}

	in, err := bookInputFromForm(r)
	if err != nil {
		logger.Warn("Invalid book form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	images, err := readImages(r)
	if err != nil {
		logger.Error("Failed to read uploaded images", err, nil)
		WriteJSONError(w, http.StatusBadRequest, "Failed to read uploaded images")
		return
	}

	logger.Info("Processing book creation", port.Fields{"user_id": userID, "images": len(images)})

	book, err := h.createUC.Execute(r.Context(), userID, *in, images)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusCreated, toBookResponse(*book))
}

// bookInputFromForm собирает и проверяет обязательные поля формы создания.
func bookInputFromForm(r *http.Request) (*domain.CreateBookInput, error) {
	title, _ := formValue(r, "title")
	if title == "" {
		return nil, domain.NewFieldError("title")
	}
	department, _ := formValue(r, "department")
	if department == "" {
		return nil, domain.NewFieldError("department")
	}
	course, _ := formValue(r, "course")
	if course == "" {
		return nil, domain.NewFieldError("course")
	}

	conditionStr, _ := formValue(r, "condition")
	condition, err := strconv.Atoi(conditionStr)
	if err != nil || condition < domain.MinCondition || condition > domain.MaxCondition {
		return nil, domain.NewFieldError("condition")
	}

	typeStr, _ := formValue(r, "type")
	bookType, err := domain.ParseBookType(typeStr)
	if err != nil {
		return nil, err
	}

	in := &domain.CreateBookInput{
		Title:      title,
		Department: department,
		Course:     course,
		Condition:  condition,
		Type:       bookType,
	}
	if description, ok := formValue(r, "description"); ok {
		in.Description = description
	}
	if priceStr, ok := formValue(r, "price"); ok && priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			return nil, domain.NewFieldError("price")
		}
		in.Price = &price
	}
	if wishlist, ok := formValue(r, "exchangeWishlist"); ok && wishlist != "" {
		in.ExchangeWishlist = &wishlist
	}
	return in, nil
}

// Find обрабатывает GET /api/v1/books
func (h *BookHandler) Find(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindBooks"})

	filter := port.BookFilter{
		Department: r.URL.Query().Get("department"),
		Course:     r.URL.Query().Get("course"),
	}
	if typeStr := r.URL.Query().Get("type"); typeStr != "" {
		bookType, err := domain.ParseBookType(typeStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		filter.Type = &bookType
	}
	// Публичный каталог по умолчанию показывает только открытые объявления.
	status := domain.BookStatusAvailable
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		parsed, err := domain.ParseBookStatus(statusStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = parsed
	}
	filter.Status = &status

	p := ParsePaging(r, defaultBookPageLimit)

	views, total, err := h.findUC.Execute(r.Context(), filter, p)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	data := make([]BookResponse, 0, len(views))
	for _, v := range views {
		data = append(data, toBookViewResponse(v))
	}

	RespondWithJSON(w, http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: toPaginationMeta(paging.NewMeta(total, p)),
	})
}

// FindMy обрабатывает GET /api/v1/books/my-listings
func (h *BookHandler) FindMy(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "FindMyBooks"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	var status *domain.BookStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		parsed, err := domain.ParseBookStatus(statusStr)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = &parsed
	}

	p := ParsePaging(r, defaultBookPageLimit)

	books, total, err := h.findMyUC.Execute(r.Context(), userID, status, p)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	data := make([]BookResponse, 0, len(books))
	for _, b := range books {
		data = append(data, toBookResponse(b))
	}

	RespondWithJSON(w, http.StatusOK, PaginatedResponse{
		Data:       data,
		Pagination: toPaginationMeta(paging.NewMeta(total, p)),
	})
}

// Get обрабатывает GET /api/v1/books/{bookID}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetBook"})

	view, err := h.getUC.Execute(r.Context(), chi.URLParam(r, "bookID"))
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toBookViewResponse(*view))
}

// Update обрабатывает PATCH /api/v1/books/{bookID} (multipart/form-data)
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateBook"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		logger.Warn("Failed to parse multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Request must be multipart/form-data")
		return
	}

	patch, err := bookPatchFromForm(r)
	if err != nil {
		logger.Warn("Invalid book patch form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	images, err := readImages(r)
	if err != nil {
		logger.Error("Failed to read uploaded images", err, nil)
		WriteJSONError(w, http.StatusBadRequest, "Failed to read uploaded images")
		return
	}

	bookID := chi.URLParam(r, "bookID")
	logger.Info("Processing book update", port.Fields{"book_id": bookID, "user_id": userID})

	book, err := h.updateUC.Execute(r.Context(), bookID, userID, *patch, images)
	if err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	RespondWithJSON(w, http.StatusOK, toBookResponse(*book))
}

// bookPatchFromForm собирает частичное обновление из присланных полей формы.
func bookPatchFromForm(r *http.Request) (*domain.BookPatch, error) {
	var patch domain.BookPatch

	if title, ok := formValue(r, "title"); ok {
		if title == "" {
			return nil, domain.NewFieldError("title")
		}
		patch.Title = &title
	}
	if description, ok := formValue(r, "description"); ok {
		patch.Description = &description
	}
	if department, ok := formValue(r, "department"); ok {
		if department == "" {
			return nil, domain.NewFieldError("department")
		}
		patch.Department = &department
	}
	if course, ok := formValue(r, "course"); ok {
		if course == "" {
			return nil, domain.NewFieldError("course")
		}
		patch.Course = &course
	}
	if conditionStr, ok := formValue(r, "condition"); ok {
		condition, err := strconv.Atoi(conditionStr)
		if err != nil || condition < domain.MinCondition || condition > domain.MaxCondition {
			return nil, domain.NewFieldError("condition")
		}
		patch.Condition = &condition
	}
	if typeStr, ok := formValue(r, "type"); ok {
		bookType, err := domain.ParseBookType(typeStr)
		if err != nil {
			return nil, err
		}
		patch.Type = &bookType
	}
	if priceStr, ok := formValue(r, "price"); ok && priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			return nil, domain.NewFieldError("price")
		}
		patch.Price = &price
	}
	if wishlist, ok := formValue(r, "exchangeWishlist"); ok && wishlist != "" {
		patch.ExchangeWishlist = &wishlist
	}
	if statusStr, ok := formValue(r, "status"); ok {
		status, err := domain.ParseBookStatus(statusStr)
		if err != nil {
			return nil, err
		}
		patch.Status = &status
	}
	return &patch, nil
}

// Delete обрабатывает DELETE /api/v1/books/{bookID}
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteBook"})

	userID, ok := UserIDFromRequest(r)
	if !ok {
		logger.Error("Missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), chi.URLParam(r, "bookID"), userID); err != nil {
		respondUseCaseError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
