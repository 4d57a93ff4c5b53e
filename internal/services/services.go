package services

import "telemora/internal/config"

var log = config.InitLogger()
