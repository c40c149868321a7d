package main

import (
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/event"
	infraRepo "app/internal/infra/repository"
	"app/internal/search"
	"app/internal/server"
	"app/internal/usecase"
	auth "app/internal/usecase/auth_usecase"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func newJWTIssuer(secret string) *jwtIssuer {
	return &jwtIssuer{
		secret:    []byte(secret),
		accessTTL: 15 * time.Minute,
	}
}

func (i *jwtIssuer) Issue(subjectID int64, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  subjectID,
		"role": role,
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
	// .env is optional outside local dev.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Bakery{},
		&model.Category{},
		&model.Product{},
		&model.CartLine{},
		&model.Favorite{},
		&model.Order{},
		&model.OrderItem{},
		&model.InventoryAdjustment{},
		&model.AuditLog{},
	); err != nil {
		log.Fatal(err)
	}

	// repositories
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	bakeryRepo := infraRepo.NewBakeryGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	statsRepo := infraRepo.NewStatsGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// integrations; both degrade to no-ops when unconfigured
	var publisher event.Publisher = event.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := event.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
	}

	var indexer *search.Indexer
	if cfg.ElasticURL != "" {
		esClient, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.ElasticURL},
		})
		if err != nil {
			log.Fatal(err)
		}
		indexer = search.NewIndexer(esClient, cfg.ElasticIndex)
	}

	// auth plumbing
	hasher := auth.NewBcryptPasswordHasher(12)
	issuer := newJWTIssuer(cfg.JWTSecret)
	clock := auth.SystemClock{}

	// usecases
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher)
	loginUC := auth.NewLoginUsecase(userRepo, hasher, issuer, clock)
	bakeryAuthUC := auth.NewBakeryAuthUsecase(bakeryRepo, hasher, hasher, issuer, clock)

	userUC := usecase.NewUserUsecase(userRepo, hasher)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	favoriteUC := usecase.NewFavoriteUsecase(favoriteRepo, productRepo)

	fees := usecase.FeeSchedule{Delivery: cfg.DeliveryFee, Pickup: cfg.PickupFee}
	orderUC := usecase.NewOrderUsecase(txManager, fees, publisher)

	var searcher usecase.ProductSearcher
	var productIndexer usecase.ProductIndexer
	if indexer != nil {
		searcher = indexer
		productIndexer = indexer
	}
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo, bakeryRepo, searcher)
	bakeryProductUC := usecase.NewBakeryProductUsecase(txManager, productRepo, categoryRepo, statsRepo, productIndexer)
	bakeryOrderUC := usecase.NewBakeryOrderUsecase(txManager, orderRepo)

	// handlers
	h := server.Handlers{
		Auth:          handler.NewAuthHandler(registerUC, loginUC),
		User:          handler.NewUserHandler(userUC),
		Product:       handler.NewProductHandler(productUC),
		Cart:          handler.NewCartHandler(cartUC),
		Order:         handler.NewOrderHandler(orderUC),
		Favorite:      handler.NewFavoriteHandler(favoriteUC),
		BakeryAuth:    handler.NewBakeryAuthHandler(bakeryAuthUC),
		BakeryProduct: handler.NewBakeryProductHandler(bakeryProductUC),
		BakeryOrder:   handler.NewBakeryOrderHandler(bakeryOrderUC),
	}

	e := server.New(cfg, h)
	if err := server.Start(e, cfg); err != nil {
		log.Fatal(err)
	}
}
