package itemconfig

import "github.com/m04kA/SMC-RentalService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
