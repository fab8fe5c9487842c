package main

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/domain/model"
	"bookstore/internal/handler"
	"bookstore/internal/infra/db"
	infraRepo "bookstore/internal/infra/repository"
	"bookstore/internal/mail"
	"bookstore/internal/metrics"
	"bookstore/internal/server"
	"bookstore/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	//アクセストークン
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無ければ環境変数のみで動く
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Author{},
		&model.Category{},
		&model.Book{},
		&model.Cart{},
		&model.CartItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
	); err != nil {
		log.Error("auto migrate failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	authorRepo := infraRepo.NewAuthorGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	bookRepo := infraRepo.NewBookGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	purchaseRepo := infraRepo.NewPurchaseGormRepository(gormDB)
	purchaseItemRepo := infraRepo.NewPurchaseItemGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//JWT issuer
	issuer := newJWTIssuer(cfg.JWTSecret)

	//SMTP
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUser, cfg.SMTPPassword)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(txManager, userRepo, issuer, 12)
	authorUC := usecase.NewAuthorUsecase(authorRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	bookUC := usecase.NewBookUsecase(bookRepo, authorRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, bookRepo)
	notificationUC := usecase.NewNotificationUsecase(purchaseRepo, purchaseItemRepo, userRepo, mailer)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, notificationUC, log)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Author:   handler.NewAuthorHandler(authorUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Book:     handler.NewBookHandler(bookUC),
		Cart:     handler.NewCartHandler(cartUC),
		Purchase: handler.NewPurchaseHandler(checkoutUC),
		Email:    handler.NewEmailHandler(notificationUC),
	}

	//Server起動
	m := metrics.NewServerMetrics("api")
	e := server.New(cfg, log, m, handlers)

	log.Info("server starting", "port", cfg.Port, "env", cfg.GoEnv)
	if err := server.Start(e, cfg); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
