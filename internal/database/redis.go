package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CHH01/runipet/internal/config"
)

var Redis *redis.Client
var Ctx = context.Background()

// VerificationCodeTTL bounds how long an emailed code stays redeemable.
// Expired entries are rejected at confirmation time instead of lingering
// in an unbounded in-process map.
const VerificationCodeTTL = 10 * time.Minute

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Token revocation and email verification will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// --- Token blacklist (logout revocation) ---

func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return fmt.Errorf("redis not configured")
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	return Redis.Set(Ctx, key, "revoked", ttl).Err()
}

func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	exists, err := Redis.Exists(Ctx, key).Result()
	if err != nil {
		// Fail open: a Redis outage should not lock every user out.
		return false
	}
	return exists > 0
}

// --- Email verification codes ---

func SetVerificationCode(email, code string) error {
	if Redis == nil {
		return fmt.Errorf("redis not configured")
	}
	key := fmt.Sprintf("email_verification:%s", email)
	// SET overwrites: only the most recently sent code is redeemable.
	return Redis.Set(Ctx, key, code, VerificationCodeTTL).Err()
}

func GetVerificationCode(email string) (string, error) {
	if Redis == nil {
		return "", fmt.Errorf("redis not configured")
	}
	key := fmt.Sprintf("email_verification:%s", email)
	return Redis.Get(Ctx, key).Result()
}

func DeleteVerificationCode(email string) error {
	if Redis == nil {
		return nil
	}
	key := fmt.Sprintf("email_verification:%s", email)
	return Redis.Del(Ctx, key).Err()
}
