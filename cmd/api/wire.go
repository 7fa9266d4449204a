//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链：Repository ← Service ← UseCase ← Handler ← gin.Engine

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appbook "github.com/xiebiao/library/internal/application/book"
	apploan "github.com/xiebiao/library/internal/application/loan"
	appmember "github.com/xiebiao/library/internal/application/member"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/member"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/logger"
)

// infrastructureSet 基础设施层依赖
// 配置和logger由main创建后传入，这里只负责数据库
var infrastructureSet = wire.NewSet(
	store.NewDB,            // 数据库连接（返回cleanup）
	store.NewTxManager,     // 事务管理器
	store.NewHealthChecker, // 健康检查
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	store.NewBookRepository,
	store.NewMemberRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
	member.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewAddBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,

	appmember.NewRegisterMemberUseCase,
	appmember.NewGetMemberUseCase,
	appmember.NewListMembersUseCase,
	appmember.NewUpdateMemberUseCase,
	appmember.NewDeleteMemberUseCase,

	apploan.NewBorrowBookUseCase,
	apploan.NewReturnBookUseCase,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewMemberHandler,
	handler.NewLoanHandler,
)

// InitializeApp 初始化整个应用
// 返回配置好的Gin引擎和cleanup（关闭数据库连接）
func InitializeApp(cfg *config.Config, log *logger.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		router.New,
	)
	return nil, nil, nil
}
