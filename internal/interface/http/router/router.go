package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/library/docs" // 注册swagger文档
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/response"
)

// New 创建并配置Gin引擎
// 路由不加版本前缀，与既有客户端保持一致
func New(
	cfg *config.Config,
	log *logger.Logger,
	health *store.HealthChecker,
	bookHandler *handler.BookHandler,
	memberHandler *handler.MemberHandler,
	loanHandler *handler.LoanHandler,
) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	}
	dto.RegisterJSONTagNames()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Logger(log),
		middleware.Metrics(),
	)

	// 健康检查（同时检查数据库连接）
	r.GET("/ping", func(c *gin.Context) {
		if err := health.Check(c.Request.Context()); err != nil {
			response.Error(c, apperrors.Wrap(err, "database unavailable"))
			return
		}
		response.OK(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus抓取端点
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档：http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	books := r.Group("/books")
	{
		books.POST("", bookHandler.AddBook)
		books.GET("", bookHandler.ListBooks)
		books.GET("/:id", bookHandler.GetBook)
		books.PUT("/:id", bookHandler.UpdateBook)
		books.DELETE("/:id", bookHandler.DeleteBook)

		// 借阅状态迁移
		books.POST("/:id/borrow", loanHandler.BorrowBook)
		books.POST("/:id/return", loanHandler.ReturnBook)
	}

	members := r.Group("/members")
	{
		members.POST("", memberHandler.Register)
		members.GET("", memberHandler.ListMembers)
		members.GET("/:id", memberHandler.GetMember)
		members.PUT("/:id", memberHandler.UpdateMember)
		members.DELETE("/:id", memberHandler.DeleteMember)
	}

	return r
}
