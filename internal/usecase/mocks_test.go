package usecase_test

import (
	"context"
	"testing"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"
	"bookstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type BookRepoMock struct{ mock.Mock }

func (m *BookRepoMock) List(ctx context.Context, q repo.BookListQuery) ([]model.Book, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Book)
	return items, args.Error(1)
}

func (m *BookRepoMock) FindByID(ctx context.Context, id int64) (model.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) FindByIDForShare(ctx context.Context, id int64) (model.Book, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Book)
	return b, args.Error(1)
}

func (m *BookRepoMock) Create(ctx context.Context, b model.Book) (model.Book, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(model.Book)
	return created, args.Error(1)
}

func (m *BookRepoMock) Update(ctx context.Context, b model.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BookRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type AuthorRepoMock struct{ mock.Mock }

func (m *AuthorRepoMock) List(ctx context.Context, q repo.AuthorListQuery) ([]model.Author, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Author)
	return items, args.Error(1)
}

func (m *AuthorRepoMock) FindByID(ctx context.Context, id int64) (model.Author, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.Author)
	return a, args.Error(1)
}

func (m *AuthorRepoMock) Create(ctx context.Context, a model.Author) (model.Author, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.Author)
	return created, args.Error(1)
}

func (m *AuthorRepoMock) Update(ctx context.Context, a model.Author) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *AuthorRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context, q string) ([]model.Category, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id int64) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) (model.Category, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Category)
	return created, args.Error(1)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) ListByCartIDForUpdate(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByCartAndBook(ctx context.Context, cartID int64, bookID int64, addQty int64) (model.CartItem, error) {
	args := m.Called(ctx, cartID, bookID, addQty)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	item, _ := args.Get(0).(model.CartItem)
	return item, args.Error(1)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByIDs(ctx context.Context, cartItemIDs []int64) error {
	args := m.Called(ctx, cartItemIDs)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type PurchaseRepoMock struct{ mock.Mock }

func (m *PurchaseRepoMock) Create(ctx context.Context, p model.Purchase) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PurchaseRepoMock) FindByID(ctx context.Context, purchaseID int64) (model.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	p, _ := args.Get(0).(model.Purchase)
	return p, args.Error(1)
}

func (m *PurchaseRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Purchase, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.Purchase)
	return items, args.Error(1)
}

type PurchaseItemRepoMock struct{ mock.Mock }

func (m *PurchaseItemRepoMock) CreateBulk(ctx context.Context, purchaseID int64, items []model.PurchaseItem) error {
	args := m.Called(ctx, purchaseID, items)
	return args.Error(0)
}

func (m *PurchaseItemRepoMock) ListByPurchaseID(ctx context.Context, purchaseID int64) ([]model.PurchaseItem, error) {
	args := m.Called(ctx, purchaseID)
	items, _ := args.Get(0).([]model.PurchaseItem)
	return items, args.Error(1)
}

type MailerMock struct{ mock.Mock }

func (m *MailerMock) Send(ctx context.Context, to string, subject string, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// =====================
// Tx helpers
// =====================

// テスト用のTxRepos。モックをそのまま束ねるだけ。
type txReposStub struct {
	users         *UserRepoMock
	books         *BookRepoMock
	carts         *CartRepoMock
	cartItems     *CartItemRepoMock
	purchases     *PurchaseRepoMock
	purchaseItems *PurchaseItemRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		users:         new(UserRepoMock),
		books:         new(BookRepoMock),
		carts:         new(CartRepoMock),
		cartItems:     new(CartItemRepoMock),
		purchases:     new(PurchaseRepoMock),
		purchaseItems: new(PurchaseItemRepoMock),
	}
}

func (s *txReposStub) Users() repo.UserRepository                 { return s.users }
func (s *txReposStub) Books() repo.BookRepository                 { return s.books }
func (s *txReposStub) Carts() repo.CartRepository                 { return s.carts }
func (s *txReposStub) CartItems() repo.CartItemRepository         { return s.cartItems }
func (s *txReposStub) Purchases() repo.PurchaseRepository         { return s.purchases }
func (s *txReposStub) PurchaseItems() repo.PurchaseItemRepository { return s.purchaseItems }

// fnが返したerrorをそのまま返す（本物と同じ振る舞い）
type txManagerStub struct {
	repos *txReposStub
}

func (t *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(t.repos)
}

// =====================
// Assert helpers
// =====================

func assertHTTPError(t *testing.T, err error, wantStatus int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, wantStatus, he.Status)
	}
}
