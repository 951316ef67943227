package container

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	mediahandler "blog-backend/internal/domains/media/handler"
	mediaservice "blog-backend/internal/domains/media/service"
	posthandler "blog-backend/internal/domains/post/handler"
	postrepo "blog-backend/internal/domains/post/repository"
	postservice "blog-backend/internal/domains/post/service"
	userhandler "blog-backend/internal/domains/user/handler"
	userrepo "blog-backend/internal/domains/user/repository"
	userservice "blog-backend/internal/domains/user/service"
	infracache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/internal/localstore"
	"blog-backend/internal/prefs"
	"blog-backend/internal/session"
	"blog-backend/internal/viewcount"
	pkgjwt "blog-backend/pkg/jwt"
)

// Container owns every long-lived dependency of the API process and wires
// the domain layers together in one place.
type Container struct {
	Config *config.Config

	DB          *database.PostgresDB
	Cache       *infracache.RedisCache
	Storage     *storage.MinIOStorage
	AsynqClient *asynq.Client
	JWTManager  *pkgjwt.Manager
	LocalStore  *localstore.Store
	ViewCounter *viewcount.Counter
	Preferences *prefs.Manager
	Sessions    *session.Broadcaster

	PostHandler  *posthandler.PostHandler
	UserHandler  *userhandler.UserHandler
	MediaHandler *mediahandler.MediaHandler

	sessionUnsub func()
}

// NewContainer builds the full dependency graph: config, infrastructure,
// repositories, services, handlers, in that order.
func NewContainer() (*Container, error) {
	c := &Container{}

	if err := c.initConfig(); err != nil {
		return nil, err
	}
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initDomains()

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	return nil
}

func (c *Container) initInfrastructure() error {
	ctx := context.Background()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	c.Cache = infracache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.Storage, err = storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})

	c.JWTManager = pkgjwt.NewManager(
		c.Config.JWT.Secret,
		c.Config.JWT.AccessExpiry,
		c.Config.JWT.RefreshExpiry,
	)

	c.LocalStore, err = localstore.New(c.Config.Local.Dir)
	if err != nil {
		return fmt.Errorf("failed to init local store: %w", err)
	}
	c.ViewCounter = viewcount.NewCounter(c.LocalStore)
	c.Preferences = prefs.NewManager(c.LocalStore)

	c.Sessions = session.NewBroadcaster()
	c.sessionUnsub = c.Sessions.Subscribe(func(s *session.Session) {
		if s == nil {
			log.Info().Msg("Session cleared")
			return
		}
		log.Info().Str("email", s.Email).Msg("Session started")
	})

	return nil
}

func (c *Container) initDomains() {
	postRepository := postrepo.NewPostgresRepository(c.DB.Pool)
	postService := postservice.NewPostService(postRepository, c.Cache, c.Storage, c.AsynqClient, c.ViewCounter)
	c.PostHandler = posthandler.NewPostHandler(postService, c.ViewCounter)

	userRepository := userrepo.NewPostgresRepository(c.DB.Pool)
	userService := userservice.NewUserService(userRepository, c.JWTManager)
	c.UserHandler = userhandler.NewUserHandler(userService, c.Sessions, c.Preferences)

	mediaService := mediaservice.NewMediaService(c.Storage, c.Config.Gallery)
	c.MediaHandler = mediahandler.NewMediaHandler(mediaService)
}

// Cleanup releases every held resource. Safe to call once during shutdown.
func (c *Container) Cleanup() {
	if c.sessionUnsub != nil {
		c.sessionUnsub()
	}

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close asynq client")
		}
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis connection")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	log.Info().Msg("Container cleaned up")
}
