// Package storetest 提供基于内存sqlite的测试数据库
package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/store"
)

// NewDB 创建已迁移的内存数据库，测试结束自动关闭
// 每次调用都是一个全新的库，测试之间互不影响
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := store.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   ":memory:",
	}, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
