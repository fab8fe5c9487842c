package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"bookstore/internal/domain/model"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Test: 姓名は必須
func TestCreateAuthor_NameRequired(t *testing.T) {
	uc := usecase.NewAuthorUsecase(new(AuthorRepoMock))

	_, err := uc.CreateAuthor(context.Background(), usecase.SaveAuthorInput{FirstName: "  ", LastName: "Herbert"})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// Test: 没年より後の生年は400
func TestCreateAuthor_BirthAfterDeath(t *testing.T) {
	uc := usecase.NewAuthorUsecase(new(AuthorRepoMock))

	_, err := uc.CreateAuthor(context.Background(), usecase.SaveAuthorInput{
		FirstName:   "Frank",
		LastName:    "Herbert",
		DateOfBirth: "1986-02-11",
		DateOfDeath: "1920-10-08",
	})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// Test: 日付は任意（無くても作れる）
func TestCreateAuthor_DatesOptional(t *testing.T) {
	authorRepo := new(AuthorRepoMock)
	uc := usecase.NewAuthorUsecase(authorRepo)

	authorRepo.On("Create", mock.Anything, mock.MatchedBy(func(a model.Author) bool {
		return a.FirstName == "Frank" && a.DateOfBirth == nil && a.DateOfDeath == nil
	})).Return(model.Author{ID: 1, FirstName: "Frank", LastName: "Herbert"}, nil)

	out, err := uc.CreateAuthor(context.Background(), usecase.SaveAuthorInput{
		FirstName: "Frank",
		LastName:  "Herbert",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
}

// Test: 不正な日付形式は400
func TestCreateAuthor_InvalidDate(t *testing.T) {
	uc := usecase.NewAuthorUsecase(new(AuthorRepoMock))

	_, err := uc.CreateAuthor(context.Background(), usecase.SaveAuthorInput{
		FirstName:   "Frank",
		LastName:    "Herbert",
		DateOfBirth: "11/02/1920",
	})
	assertHTTPError(t, err, http.StatusBadRequest)
}
