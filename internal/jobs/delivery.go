package jobs

import "github.com/labstack/echo/v4"

type Handlers interface {
	RegisterVideo() echo.HandlerFunc
	GetJobStatus() echo.HandlerFunc
	ListJobs() echo.HandlerFunc
}
