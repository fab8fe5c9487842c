package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
)

type AuthorUsecase struct {
	authorRepo repo.AuthorRepository
}

// DI
func NewAuthorUsecase(authorRepo repo.AuthorRepository) *AuthorUsecase {
	return &AuthorUsecase{authorRepo: authorRepo}
}

type SaveAuthorInput struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	DateOfDeath string
}

func (u *AuthorUsecase) ListAuthors(ctx context.Context, q string, sort string) ([]model.Author, error) {
	if len(q) > 100 {
		return nil, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch sort {
	case "", "birth":
	default:
		return nil, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	authors, err := u.authorRepo.List(ctx, repo.AuthorListQuery{Q: strings.TrimSpace(q), Sort: sort})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return authors, nil
}

func (u *AuthorUsecase) GetAuthor(ctx context.Context, authorID int64) (model.Author, error) {
	if authorID <= 0 {
		return model.Author{}, NewHTTPError(http.StatusBadRequest, "invalid author id")
	}

	a, err := u.authorRepo.FindByID(ctx, authorID)
	if err == repo.ErrNotFound {
		return model.Author{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Author{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return a, nil
}

func (u *AuthorUsecase) CreateAuthor(ctx context.Context, in SaveAuthorInput) (model.Author, error) {
	a, err := validateAuthorInput(in)
	if err != nil {
		return model.Author{}, err
	}

	created, err := u.authorRepo.Create(ctx, a)
	if err != nil {
		return model.Author{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *AuthorUsecase) UpdateAuthor(ctx context.Context, authorID int64, in SaveAuthorInput) (model.Author, error) {
	if authorID <= 0 {
		return model.Author{}, NewHTTPError(http.StatusBadRequest, "invalid author id")
	}

	a, err := validateAuthorInput(in)
	if err != nil {
		return model.Author{}, err
	}
	a.ID = authorID

	err = u.authorRepo.Update(ctx, a)
	if err == repo.ErrNotFound {
		return model.Author{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Author{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.GetAuthor(ctx, authorID)
}

// 著者削除。紐づく書籍も消える。
func (u *AuthorUsecase) DeleteAuthor(ctx context.Context, authorID int64) error {
	if authorID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid author id")
	}

	err := u.authorRepo.Delete(ctx, authorID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateAuthorInput(in SaveAuthorInput) (model.Author, error) {
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || last == "" {
		return model.Author{}, NewHTTPError(http.StatusBadRequest, "name required")
	}

	birth, err := parseOptionalDate(in.DateOfBirth)
	if err != nil {
		return model.Author{}, NewHTTPError(http.StatusBadRequest, "invalid date_of_birth")
	}
	death, err := parseOptionalDate(in.DateOfDeath)
	if err != nil {
		return model.Author{}, NewHTTPError(http.StatusBadRequest, "invalid date_of_death")
	}

	// 両方あるなら birth <= death
	if birth != nil && death != nil && birth.After(*death) {
		return model.Author{}, NewHTTPError(http.StatusBadRequest, "date_of_birth must be before date_of_death")
	}

	return model.Author{
		FirstName:   first,
		LastName:    last,
		DateOfBirth: birth,
		DateOfDeath: death,
	}, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
