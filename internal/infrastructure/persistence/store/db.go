package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/logger"
)

// sqliteDriverName 注册了Unicode版lower()的sqlite驱动
// sqlite内置的LOWER只处理ASCII，图书搜索需要对"Über"这类书名做大小写折叠
const sqliteDriverName = "sqlite3_library"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2，支持mysql（生产）与sqlite（本地、测试）两种驱动
// 2. 开启TranslateError，唯一索引/外键冲突统一翻译为gorm.ErrDuplicatedKey/ErrForeignKeyViolated
// 3. debug模式打印SQL，其他模式静默
// 4. auto_migrate开启时自动建表
func NewDB(cfg *config.Config, log *logger.Logger) (*gorm.DB, func(), error) {
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := Open(cfg.Database, logLevel)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Error("关闭数据库连接失败", "error", err)
		}
	}

	log.Info("数据库连接成功", "driver", cfg.Database.Driver)

	if cfg.Database.AutoMigrate {
		if err := Migrate(db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, cleanup, nil
}

// Open 按驱动打开连接并配置连接池
func Open(cfg config.DatabaseConfig, logLevel gormlogger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.New(sqlite.Config{
			DriverName: sqliteDriverName,
			DSN:        cfg.DSN(),
		})
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// sqlite同一时刻只允许一个写者，单连接避免"database is locked"
	// 内存库每个连接都是独立的数据库，也必须单连接
	if cfg.Driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	return db, nil
}

// Migrate 自动迁移表结构
// 注意：AutoMigrate只会建表、加字段，不会删除或修改已有字段
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&MemberModel{},
		&BookModel{},
	)
}

// HealthChecker 数据库健康检查
type HealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Check 在超时时间内Ping数据库
func (h *HealthChecker) Check(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// MemberModel GORM会员模型
// Email有唯一索引，重复写入由数据库拒绝
type MemberModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (MemberModel) TableName() string {
	return "members"
}

// BookModel GORM图书模型
// 设计说明：
// 1. MemberID为借阅人外键，NULL表示在架
// 2. Member只用于声明外键约束（ON DELETE RESTRICT），读写时不加载关联
// 3. 没有DeletedAt字段，删除是物理删除
type BookModel struct {
	ID        uint         `gorm:"primaryKey"`
	Title     string       `gorm:"size:255;not null"`
	Author    string       `gorm:"size:255;not null"`
	Year      int          `gorm:"not null"`
	MemberID  *uint        `gorm:"index"`
	Member    *MemberModel `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
