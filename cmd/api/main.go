package main

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/auth"
	"app/internal/infra/client"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envはローカル用。無ければ環境変数をそのまま使う
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New("cart-service", cfg.GoEnv)

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("db migrate failed")
	}

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	lineRepo := infraRepo.NewCartLineGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//外部サービスのクライアント
	httpClient := &http.Client{Timeout: cfg.ClientTimeout}
	itemClient := client.NewItemHTTPClient(cfg.ItemServiceURL, httpClient)
	userClient := client.NewUserHTTPClient(cfg.UserServiceURL, httpClient)

	//token検証
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(txm, cartRepo, lineRepo, verifier, userClient, itemClient, log)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.WithField("addr", addr).Info("starting cart service")
	if err := server.Start(addr, cartH); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
