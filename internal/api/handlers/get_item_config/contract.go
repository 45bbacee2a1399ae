package get_item_config

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/itemconfig/models"
)

type ConfigService interface {
	GetEffective(ctx context.Context, itemID int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
