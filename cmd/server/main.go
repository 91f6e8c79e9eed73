package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"counter_backend/internal/app/router"
	authadapters "counter_backend/internal/feature/auth/adapters"
	authhandler "counter_backend/internal/feature/auth/transport/handler"
	authusecase "counter_backend/internal/feature/auth/usecase"
	counteradapters "counter_backend/internal/feature/counter/adapters"
	counterhandler "counter_backend/internal/feature/counter/transport/handler"
	counterusecase "counter_backend/internal/feature/counter/usecase"
	"counter_backend/internal/platform/cache"
	"counter_backend/internal/platform/db"
	jwtmw "counter_backend/internal/platform/jwt"
	infraredis "counter_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	gdb := db.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserGorm(gdb)
	counterRepo := counteradapters.NewCounterGorm(gdb)

	// Redisキャッシュでラップ（日付境界までのTTL）
	ttl := cache.TimeUntilNextUTCMidnight()
	cachedCounterRepo := cache.NewCachingCounterRepository(rdb, ttl, counterRepo, "counters")

	// Usecase
	tokens := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), jwtmw.DefaultExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	counterUC := counterusecase.NewCounterUsecase(cachedCounterRepo, userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	counterH := counterhandler.NewCounterHandler(counterUC)

	// ルータ生成
	router := router.NewRouter(authH, counterH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Login responses will omit the session token.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
