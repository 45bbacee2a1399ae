package update_item_config

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/service/itemconfig/models"
)

type ConfigService interface {
	Update(ctx context.Context, itemID *int64, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
