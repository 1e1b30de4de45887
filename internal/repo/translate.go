package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"artisan-market-api/internal/domain"
)

// translate 把 gorm/驱动错误归一到业务错误分类
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: duplicate key", domain.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: still referenced", domain.ErrConflict)
	}
	// 兜底：不同驱动/版本的文案差异
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") {
		return fmt.Errorf("%w: duplicate key", domain.ErrConflict)
	}
	if strings.Contains(msg, "foreign key") {
		return fmt.Errorf("%w: still referenced", domain.ErrConflict)
	}
	return err
}

// listingSortColumns 列表排序白名单
var listingSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"price":     "price",
}

func orderClause(sortBy, sortOrder string) string {
	col, ok := listingSortColumns[sortBy]
	if !ok {
		col = "created_at"
	}
	dir := "desc"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "asc"
	}
	return col + " " + dir
}
