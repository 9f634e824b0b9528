package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed sql/post_automigrate.sql
var postAutoMigrateSQL string

func autoMigrateModels() []any {
	return []any{
		&alertModel{},
	}
}

func (p *Pool) autoMigrate(ctx context.Context) error {
	if err := p.gdb.WithContext(ctx).AutoMigrate(autoMigrateModels()...); err != nil {
		return fmt.Errorf("gorm auto-migrate models: %w", err)
	}

	trimmed := strings.TrimSpace(postAutoMigrateSQL)
	if trimmed == "" {
		return nil
	}
	if err := p.gdb.WithContext(ctx).Exec(trimmed).Error; err != nil {
		return fmt.Errorf("execute post-auto-migrate SQL: %w", err)
	}

	return nil
}
