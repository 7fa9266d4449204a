package store

import (
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MySQL错误码
const (
	mysqlErrDupEntry         = 1062 // Duplicate entry 'xxx' for key 'yyy'
	mysqlErrRowIsReferenced  = 1451 // 删除被引用的父行
	mysqlErrNoReferencedRow  = 1452 // 子行引用的父行不存在
	mysqlErrRowIsReferenced2 = 1217
	mysqlErrNoReferencedRow2 = 1216
)

// isDuplicateError 判断是否为唯一索引冲突
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlErrDupEntry
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	// 兼容检查：错误信息
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// isForeignKeyError 判断是否为外键约束冲突
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlErrRowIsReferenced, mysqlErrNoReferencedRow, mysqlErrRowIsReferenced2, mysqlErrNoReferencedRow2:
			return true
		}
		return false
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// lockForUpdate 为查询加行锁
// sqlite不支持SELECT FOR UPDATE，它的写事务本身是串行的
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// likePattern 生成子串匹配模式，转义LIKE通配符（转义字符为!）
// 不在Go里转小写，由SQL两侧同一个LOWER()处理，保证大小写折叠规则一致
func likePattern(keyword string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(keyword) + "%"
}
