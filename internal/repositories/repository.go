package repositories

import "telemora/internal/config"

var log = config.InitLogger()
