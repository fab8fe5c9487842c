package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// priceを省略したときの既定価格
var defaultBookPrice = decimal.RequireFromString("9.99")

type BookUsecase struct {
	bookRepo     repo.BookRepository
	authorRepo   repo.AuthorRepository
	categoryRepo repo.CategoryRepository
}

// DI
func NewBookUsecase(
	bookRepo repo.BookRepository,
	authorRepo repo.AuthorRepository,
	categoryRepo repo.CategoryRepository,
) *BookUsecase {
	return &BookUsecase{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

// GET /books の入力DTO
type ListBooksInput struct {
	Q          string
	AuthorID   *int64
	CategoryID *int64
	Sort       string
}

type SaveBookInput struct {
	Title         string
	AuthorID      int64
	CategoryID    *int64
	PublishedDate string
	ISBN          string
	Summary       string
	Price         *decimal.Decimal
}

func (u *BookUsecase) ListBooks(ctx context.Context, in ListBooksInput) ([]model.Book, error) {
	if len(in.Q) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.Sort {
	case "", "new", "published", "title":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	books, err := u.bookRepo.List(ctx, repo.BookListQuery{
		Q:          strings.TrimSpace(in.Q),
		AuthorID:   in.AuthorID,
		CategoryID: in.CategoryID,
		Sort:       in.Sort,
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return books, nil
}

func (u *BookUsecase) GetBook(ctx context.Context, bookID int64) (model.Book, error) {
	if bookID <= 0 {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	b, err := u.bookRepo.FindByID(ctx, bookID)
	if err == repo.ErrNotFound {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return b, nil
}

func (u *BookUsecase) CreateBook(ctx context.Context, in SaveBookInput) (model.Book, error) {
	b, err := u.validateBookInput(ctx, in)
	if err != nil {
		return model.Book{}, err
	}

	created, err := u.bookRepo.Create(ctx, b)
	if err == repo.ErrConflict {
		return model.Book{}, NewHTTPError(http.StatusConflict, "isbn already exists")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *BookUsecase) UpdateBook(ctx context.Context, bookID int64, in SaveBookInput) (model.Book, error) {
	if bookID <= 0 {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	b, err := u.validateBookInput(ctx, in)
	if err != nil {
		return model.Book{}, err
	}
	b.ID = bookID

	err = u.bookRepo.Update(ctx, b)
	if err == repo.ErrNotFound {
		return model.Book{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err == repo.ErrConflict {
		return model.Book{}, NewHTTPError(http.StatusConflict, "isbn already exists")
	}
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.GetBook(ctx, bookID)
}

func (u *BookUsecase) DeleteBook(ctx context.Context, bookID int64) error {
	if bookID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid book id")
	}

	err := u.bookRepo.Delete(ctx, bookID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 入力検証して保存用のmodel.Bookを組み立てる
func (u *BookUsecase) validateBookInput(ctx context.Context, in SaveBookInput) (model.Book, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "title required")
	}
	if in.AuthorID <= 0 {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid author_id")
	}
	if !isValidISBN(in.ISBN) {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "isbn must be a 10 or 13 digit number")
	}

	published, err := time.Parse("2006-01-02", in.PublishedDate)
	if err != nil {
		return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid published_date")
	}

	price := defaultBookPrice
	if in.Price != nil {
		if in.Price.IsNegative() {
			return model.Book{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		price = *in.Price
	}

	// 著者の存在チェック
	if _, err := u.authorRepo.FindByID(ctx, in.AuthorID); err != nil {
		if err == repo.ErrNotFound {
			return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid author_id")
		}
		return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// カテゴリは任意。指定されていれば存在チェック
	if in.CategoryID != nil {
		if _, err := u.categoryRepo.FindByID(ctx, *in.CategoryID); err != nil {
			if err == repo.ErrNotFound {
				return model.Book{}, NewHTTPError(http.StatusBadRequest, "invalid category_id")
			}
			return model.Book{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return model.Book{
		Title:         title,
		AuthorID:      in.AuthorID,
		CategoryID:    in.CategoryID,
		PublishedDate: published,
		ISBN:          in.ISBN,
		Summary:       in.Summary,
		Price:         price,
	}, nil
}

// 数字のみ、10桁または13桁
func isValidISBN(s string) bool {
	if len(s) != 10 && len(s) != 13 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
