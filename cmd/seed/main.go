package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/config"
	"github.com/oksasatya/tradedocs-portal/internal/application"
	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
	"github.com/oksasatya/tradedocs-portal/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/tradedocs-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/tradedocs-portal/internal/infrastructure/search"
	"github.com/oksasatya/tradedocs-portal/internal/infrastructure/static"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

const demoPassword = "DemoPass123"

// seed creates one demo account per company role, copies the bundled
// templates into Postgres and, when Elasticsearch is configured, indexes them.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:    cfg.DBMaxConns,
		MinConns:    cfg.DBMinConns,
		MaxConnLife: cfg.DBMaxConnLife,
		AppName:     cfg.AppName + "-seed",
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	hash, err := helpers.HashPassword(demoPassword)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	for _, c := range entity.Companies() {
		for _, role := range c.Roles {
			u := &entity.User{
				Email:       demoEmail(c.Name, role),
				Password:    hash,
				Name:        role + " (" + c.Name + ")",
				CompanyName: c.Name,
				Role:        role,
			}
			err := users.Create(ctx, u)
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				logger.WithField("email", u.Email).Info("user exists, skipped")
			case err != nil:
				log.Fatalf("failed to seed user %s: %v", u.Email, err)
			default:
				logger.WithFields(logrus.Fields{"id": u.ID, "email": u.Email}).Info("seeded user")
			}
		}
	}
	fmt.Printf("demo users ready, password=%s\n", demoPassword)

	bundled, err := static.NewTemplateRepository()
	if err != nil {
		log.Fatalf("failed to load bundled templates: %v", err)
	}
	list, err := bundled.List(ctx)
	if err != nil {
		log.Fatalf("failed to list bundled templates: %v", err)
	}
	store := pginfra.NewTemplateRepository(pool)
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	cached := cache.NewTemplateCache(store, rdb, cfg.TemplateCacheTTL, logger)
	for i := range list {
		if err := static.CheckFields(&list[i]); err != nil {
			log.Fatalf("bundled template rejected: %v", err)
		}
		if err := store.Upsert(ctx, &list[i]); err != nil {
			log.Fatalf("failed to upsert template %s: %v", list[i].ID, err)
		}
		if err := cached.Invalidate(ctx, list[i].ID); err != nil {
			logger.WithError(err).WithField("template_id", list[i].ID).Warn("template cache invalidate failed")
		}
	}
	fmt.Printf("templates upserted: %d\n", len(list))

	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return
	}
	es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch: %v", err)
	}
	svc := application.NewTemplateService(store, search.NewTemplateIndex(es, cfg.ESTemplatesIndex), logger)
	n, err := svc.Reindex(ctx)
	if err != nil {
		log.Fatalf("reindex failed after %d templates: %v", n, err)
	}
	fmt.Printf("templates indexed: %d\n", n)
}

// demoEmail builds e.g. clearanceagent.documentationdepartment@demo.test.
func demoEmail(company, role string) string {
	squash := func(s string) string { return strings.ToLower(strings.ReplaceAll(s, " ", "")) }
	return squash(company) + "." + squash(role) + "@demo.test"
}
