package db

import (
	"fmt"
	"strings"

	"snippetapi/internal/config"
	"snippetapi/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(s config.DBSettings) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		// 一意制約・外部キー違反を gorm.ErrDuplicatedKey などに変換させる
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	switch s.Driver {
	case config.DriverPostgres:
		gdb, err := gorm.Open(postgres.Open(s.DSN()), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return gdb, nil

	case config.DriverSQLite:
		gdb, err := gorm.Open(sqlite.Open(sqliteDSN(s.SQLitePath)), gcfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if isMemory(s.SQLitePath) {
			// :memory: は接続ごとに別DBになる
			sqlDB, err := gdb.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		return gdb, nil

	default:
		return nil, fmt.Errorf("unsupported db driver: %s", s.Driver)
	}
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&model.User{},
		&model.UserProfile{},
		&model.RefreshToken{},
		&model.SnippetCategory{},
		&model.Snippet{},
		&model.SnippetTag{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	}
}

func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=1"
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
