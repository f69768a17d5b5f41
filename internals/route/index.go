// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	"library_backend/internals/helpers/dbtime"
	routeDetails "library_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	today := dbtime.TodayFunc(configs.LibraryLocation())
	routeDetails.LibraryRoutes(app, db, today, configs.LoanPeriodDays)
}
