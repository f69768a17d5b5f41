package details

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookRoute "library_backend/internals/features/library/books/route"
	bookService "library_backend/internals/features/library/books/service"
	loanRoute "library_backend/internals/features/library/loans/route"
	loanService "library_backend/internals/features/library/loans/service"
	patronRoute "library_backend/internals/features/library/patrons/route"
	patronService "library_backend/internals/features/library/patrons/service"
	"library_backend/internals/helpers/dbtime"
)

// LibraryRoutes mounts books, patrons and loans. today decides overdue status
// and the default loan dates.
func LibraryRoutes(r fiber.Router, db *gorm.DB, today func() dbtime.Date, loanPeriodDays int) {
	log.Println("[INFO] Mounting books routes...")
	bookRoute.BookRoutes(r, bookService.New(db, today))

	log.Println("[INFO] Mounting patrons routes...")
	patronRoute.PatronRoutes(r, patronService.New(db, today))

	log.Println("[INFO] Mounting loans routes...")
	loanRoute.LoanRoutes(r, loanService.New(db, today, loanPeriodDays))
}
