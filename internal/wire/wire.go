package wire

import (
	"Viralize/internal/api"
	"Viralize/internal/api/config"
	"Viralize/internal/api/handler"
	"Viralize/internal/job"
	"Viralize/internal/pkg/cron"
	"Viralize/internal/pkg/kafka"
	"Viralize/internal/pkg/processor"
	"Viralize/internal/repository"
	"Viralize/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router    *gin.Engine
	DB        *gorm.DB
	Publisher kafka.EventPublisher
	CronMgr   *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	usageRepo := repository.NewUsageRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)

	// kafka.enabled=false 时 publisher 为 nil，调用方按无事件流降级
	var publisher kafka.EventPublisher
	if cfg.Kafka.Enabled {
		p, err := kafka.NewEventPublisher(cfg)
		if err != nil {
			return nil, err
		}
		publisher = p
	} else {
		log.Info("Kafka disabled, prediction events will not be published")
	}

	analyzer := processor.NewViralityAnalyzer()

	userService := service.NewUserService(userRepo)
	predictionService := service.NewPredictionService(predictionRepo, usageRepo, analyzer, publisher)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userService),
		PredictHandler: handler.NewPredictHandler(predictionService),
	}

	router := api.SetupRouter(handlers)

	usageReportJob := job.NewUsageReportJob(usageRepo, publisher)
	cronMgr := cron.NewCronManager(usageReportJob)

	return &ApplicationContainer{
		Router:    router,
		DB:        db,
		Publisher: publisher,
		CronMgr:   cronMgr,
	}, nil
}
