package usecase

import (
	"context"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// JWTを発行する約束（実装はmainで注入）
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type AuthUsecase struct {
	tx         repo.TransactionManager
	userRepo   repo.UserRepository
	issuer     AccessTokenIssuer
	bcryptCost int
}

func NewAuthUsecase(
	tx repo.TransactionManager,
	userRepo repo.UserRepository,
	issuer AccessTokenIssuer,
	bcryptCost int,
) *AuthUsecase {
	return &AuthUsecase{
		tx:         tx,
		userRepo:   userRepo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
	ExpiresIn   int64      `json:"expires_in"`
}

// Register は会員登録。ユーザー作成と同じトランザクションでカートも作る。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	email := strings.TrimSpace(in.Email)

	// email形式チェック
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid email")
	}
	// password最低文字数（8）
	if len(in.Password) < 8 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "password too short")
	}

	// ハッシュを保存（平文は保存しない）
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleUser,
	}

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Users().Create(ctx, &user); err != nil {
			if err == repo.ErrConflict {
				return NewHTTPError(http.StatusConflict, "email already exists")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 登録時にカートも作っておく（1ユーザー1カート）
		if _, err := r.Carts().GetOrCreateByUserID(ctx, user.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Login はパスワード照合してアクセストークンを返す。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return LoginOutput{}, NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err == repo.ErrNotFound {
		// ユーザー有無を漏らさない
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	now := time.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "token error")
	}

	// 最終ログイン時刻更新
	user.LastLoginAt = &now
	if err := u.userRepo.Update(ctx, &user); err != nil {
		return LoginOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return LoginOutput{
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
	}, nil
}
