package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type issuerStub struct {
	token string
	err   error
}

func (i *issuerStub) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	return i.token, now.Add(15 * time.Minute), i.err
}

// bcryptCostは最小にしてテストを速くする
func newAuthUsecase(repos *txReposStub, userRepo *UserRepoMock, issuer usecase.AccessTokenIssuer) *usecase.AuthUsecase {
	return usecase.NewAuthUsecase(&txManagerStub{repos: repos}, userRepo, issuer, bcrypt.MinCost)
}

// Test: 不正なemailは400
func TestRegister_InvalidEmail(t *testing.T) {
	uc := newAuthUsecase(newTxReposStub(), new(UserRepoMock), &issuerStub{})

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Email: "not-an-email", Password: "password123"})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// Test: 8文字未満のパスワードは400
func TestRegister_PasswordTooShort(t *testing.T) {
	uc := newAuthUsecase(newTxReposStub(), new(UserRepoMock), &issuerStub{})

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Email: "reader@example.com", Password: "short"})
	assertHTTPError(t, err, http.StatusBadRequest)
}

// Test: email重複は409
func TestRegister_DuplicateEmail(t *testing.T) {
	repos := newTxReposStub()
	repos.users.On("Create", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	uc := newAuthUsecase(repos, new(UserRepoMock), &issuerStub{})

	_, err := uc.Register(context.Background(), usecase.RegisterInput{Email: "reader@example.com", Password: "password123"})
	assertHTTPError(t, err, http.StatusConflict)

	repos.carts.AssertNotCalled(t, "GetOrCreateByUserID", mock.Anything, mock.Anything)
}

// Test: 登録成功でカートも作られる（同一トランザクション）
func TestRegister_CreatesCart(t *testing.T) {
	repos := newTxReposStub()
	repos.users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		// 平文は保存しない
		return u.Email == "reader@example.com" && u.PasswordHash != "password123" && u.Role == model.RoleUser
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.User).ID = 7
	}).Return(nil)
	repos.carts.On("GetOrCreateByUserID", mock.Anything, int64(7)).Return(model.Cart{ID: 10, UserID: 7}, nil)

	uc := newAuthUsecase(repos, new(UserRepoMock), &issuerStub{})

	user, err := uc.Register(context.Background(), usecase.RegisterInput{Email: "reader@example.com", Password: "password123"})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)

	repos.users.AssertExpectations(t)
	repos.carts.AssertExpectations(t)
}

// Test: 未登録emailは401（存在を漏らさない）
func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, repo.ErrNotFound)

	uc := newAuthUsecase(newTxReposStub(), userRepo, &issuerStub{})

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "ghost@example.com", Password: "password123"})
	assertHTTPError(t, err, http.StatusUnauthorized)
}

// Test: パスワード不一致は401
func TestLogin_WrongPassword(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "reader@example.com").Return(model.User{
		ID: 7, Email: "reader@example.com", PasswordHash: string(hashed),
	}, nil)

	uc := newAuthUsecase(newTxReposStub(), userRepo, &issuerStub{})

	_, err := uc.Login(context.Background(), usecase.LoginInput{Email: "reader@example.com", Password: "wrong-password"})
	assertHTTPError(t, err, http.StatusUnauthorized)

	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// Test: ログイン成功でトークンと最終ログイン時刻
func TestLogin_Success(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)

	userRepo := new(UserRepoMock)
	userRepo.On("FindByEmail", mock.Anything, "reader@example.com").Return(model.User{
		ID: 7, Email: "reader@example.com", PasswordHash: string(hashed), Role: model.RoleUser,
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == 7 && u.LastLoginAt != nil
	})).Return(nil)

	uc := newAuthUsecase(newTxReposStub(), userRepo, &issuerStub{token: "signed-token"})

	out, err := uc.Login(context.Background(), usecase.LoginInput{Email: "reader@example.com", Password: "correct-password"})
	assert.NoError(t, err)
	assert.Equal(t, "signed-token", out.AccessToken)
	assert.Equal(t, int64(900), out.ExpiresIn)

	userRepo.AssertExpectations(t)
}
