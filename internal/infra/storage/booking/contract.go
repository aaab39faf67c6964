package booking

import "github.com/areninha/booking-service/pkg/dbmetrics"

// DBExecutor выполняет запросы (*sql.DB, *dbmetrics.DB или транзакция из контекста)
type DBExecutor = dbmetrics.DBExecutor
