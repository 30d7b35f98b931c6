package main

import (
	"coachly/config"
	authController "coachly/controllers/auth"
	bookingController "coachly/controllers/booking"
	courseController "coachly/controllers/course"
	planController "coachly/controllers/plans"
	slotController "coachly/controllers/slots"
	"coachly/database"
	authRoutes "coachly/routers/authRoutes"
	bookingRoutes "coachly/routers/bookingRoutes"
	courseRoutes "coachly/routers/courseRoutes"
	planRoutes "coachly/routers/planRoutes"
	slotRoutes "coachly/routers/slotRoutes"
	"coachly/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	mail := utils.EmailNotifier{}
	rooms := utils.NewRoomClient()

	authRoutes.SetupAuthRoutes(app, authController.NewHandler(db))
	slotRoutes.SetupSlotRoutes(app, slotController.NewHandler(db, mail), db)
	bookingRoutes.SetupBookingRoutes(app, bookingController.NewHandler(db, mail, rooms), db)
	planRoutes.SetupPlanRoutes(app, planController.NewHandler(db), db)
	courseRoutes.SetupCourseRoutes(app, courseController.NewHandler(db), db)

	utils.InitializeBookingScheduler(db)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
