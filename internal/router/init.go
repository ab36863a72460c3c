package router

import (
	"fmt"

	"github.com/oksasatya/tradedocs-portal/config"
	"github.com/oksasatya/tradedocs-portal/internal/application"
	"github.com/oksasatya/tradedocs-portal/internal/container"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
	"github.com/oksasatya/tradedocs-portal/internal/infrastructure/cache"
	gcsinfra "github.com/oksasatya/tradedocs-portal/internal/infrastructure/gcs"
	pginfra "github.com/oksasatya/tradedocs-portal/internal/infrastructure/postgres"
	"github.com/oksasatya/tradedocs-portal/internal/infrastructure/search"
	"github.com/oksasatya/tradedocs-portal/internal/infrastructure/static"
	handlers "github.com/oksasatya/tradedocs-portal/internal/interface/http"
	"github.com/oksasatya/tradedocs-portal/internal/router/modules"
	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
)

// buildTemplateRepo picks the template source and puts the Redis cache in
// front of it when Redis is available.
func buildTemplateRepo() (repository.TemplateRepository, error) {
	cfg := container.GetConfig()

	var base repository.TemplateRepository
	switch cfg.TemplateSource {
	case "postgres":
		if container.GetPGPool() == nil {
			return nil, fmt.Errorf("TEMPLATE_SOURCE=postgres requires a database")
		}
		base = pginfra.NewTemplateRepository(container.GetPGPool())
	case "", "static":
		repo, err := static.NewTemplateRepository()
		if err != nil {
			return nil, err
		}
		base = repo
	default:
		return nil, fmt.Errorf("unknown TEMPLATE_SOURCE %q", cfg.TemplateSource)
	}

	if rdb := container.GetRedis(); rdb != nil {
		return cache.NewTemplateCache(base, rdb, cfg.TemplateCacheTTL, container.GetLogger()), nil
	}
	return base, nil
}

func buildTemplateService() (*application.TemplateService, error) {
	repo, err := buildTemplateRepo()
	if err != nil {
		return nil, err
	}
	var index repository.TemplateIndex
	if es := container.GetES(); es != nil {
		index = search.NewTemplateIndex(es, container.GetConfig().ESTemplatesIndex)
	}
	return application.NewTemplateService(repo, index, container.GetLogger()), nil
}

func buildDocumentService(templates *application.TemplateService) *application.DocumentService {
	cfg := container.GetConfig()
	mail := config.LoadMailSettings()
	dispatcher := mailer.NewDispatcher(container.GetMailSelector(), mailer.DispatcherConfig{
		From:        mail.From,
		Production:  cfg.IsProduction(),
		SendTimeout: mail.SendTimeout,
	}, container.GetLogger())

	svc := application.NewDocumentService(templates, dispatcher, cfg.AllowedSendRoles(), container.GetLogger())
	if pub := container.GetRabbitPub(); pub != nil {
		svc.Events = pub
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		svc.Archive = gcsinfra.NewDocumentArchive(gcs, cfg.GCSBucket)
	}
	return svc
}

// InitModules builds every module from the container singletons and adds
// them to the registry. Call once during startup.
func InitModules(r *Registry) error {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	users := application.NewUserService(pginfra.NewUserRepository(container.GetPGPool()), jwt, container.GetRedis(), logger)
	r.Add(modules.NewAuthModule(handlers.NewUserHandler(users, logger, cfg.CookieDomain, cfg.CookieSecure), jwt, users))
	r.Add(modules.NewDataModule(handlers.NewDataHandler(logger), jwt, users))

	templates, err := buildTemplateService()
	if err != nil {
		return err
	}
	docs := buildDocumentService(templates)
	r.Add(modules.NewDocumentModule(handlers.NewTemplateHandler(templates, docs, logger, cfg.MaxUploadBytes), jwt, users))

	selector := container.GetMailSelector()
	r.Add(modules.NewMailModule(
		handlers.NewMailboxHandler(selector, cfg.AppName, logger),
		&handlers.HealthHandler{Mail: selector},
	))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return nil
}
