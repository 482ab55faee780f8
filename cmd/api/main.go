package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logging"
	"app/internal/notify"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// アクセストークンの有効期限
const accessTokenTTL = 15 * time.Minute

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"tv":   tokenVersion,
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
	//.envが無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.New(cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Notification{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	notifRepo := infraRepo.NewNotificationGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: accessTokenTTL}

	//pub/sub。REDIS_ADDRが無ければ流さない。
	var events usecase.EventPublisher = usecase.NopPublisher{}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		events = notify.NewRedisPublisher(rdb, log)
	}

	//初期データ（冪等）
	if err := seed(gormDB, hasher, log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	profileUC := usecase.NewUserUsecase(userRepo)
	productUC := usecase.NewProductUsecase(productRepo)
	herderProductUC := usecase.NewHerderProductUsecase(productRepo, userRepo, clock, events)
	moderationUC := usecase.NewModerationUsecase(productRepo, notifRepo, auditRepo, idGen, clock, events)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo, auditRepo, clock)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderItemRepo, userRepo, idGen, clock, events)
	fulfillmentUC := usecase.NewFulfillmentUsecase(orderItemRepo, orderRepo, notifRepo, auditRepo, idGen, clock, events)
	notificationUC := usecase.NewNotificationUsecase(notifRepo, clock)

	//Handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(registerUC, loginUC),
		Profile:       handler.NewProfileHandler(profileUC),
		Product:       handler.NewProductHandler(productUC),
		HerderProduct: handler.NewHerderProductHandler(herderProductUC),
		AdminProduct:  handler.NewAdminProductHandler(moderationUC),
		AdminUser:     handler.NewAdminUserHandler(adminUserUC),
		Cart:          handler.NewCartHandler(cartUC),
		Order:         handler.NewOrderHandler(orderUC),
		Fulfillment:   handler.NewFulfillmentHandler(fulfillmentUC),
		Notification:  handler.NewNotificationHandler(notificationUC),
	}

	//Server起動
	e := server.New(cfg, log, handlers, userRepo)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
