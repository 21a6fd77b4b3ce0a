package app

import (
	"hiring-api/config"
	"hiring-api/internal/notify"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Validator   *validator.Validate
	Log         *zap.SugaredLogger
	Dispatcher  notify.Dispatcher
}
