package router

import (
	"github.com/ardiansyahdev/mechanic-shop/controllers"
	"github.com/ardiansyahdev/mechanic-shop/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Metrics())

	customerCtrl := controllers.NewCustomerController(db)
	mechanicCtrl := controllers.NewMechanicController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	ticketCtrl := controllers.NewServiceTicketController(db)
	serviceAssignCtrl := controllers.NewServiceAssignmentController(db)
	inventoryAssignCtrl := controllers.NewInventoryAssignmentController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ----------------------------------------------------------------
	//                      CUSTOMER
	// ----------------------------------------------------------------
	customer := r.Group("/customer")
	{
		login := customer.Group("/")
		login.Use(middlewares.NewStrictRateLimiter())
		{
			login.POST("/", customerCtrl.Register)
			login.POST("/login", customerCtrl.Login)
		}

		customer.GET("/", customerCtrl.GetAllCustomers)

		self := customer.Group("/")
		self.Use(middlewares.AuthMiddleware())
		{
			self.GET("/my-tickets", customerCtrl.MyTickets)
			self.PUT("/:customer_id", customerCtrl.UpdateCustomer)
			self.DELETE("/:customer_id", customerCtrl.DeleteCustomer)
		}

		customer.GET("/:customer_id", customerCtrl.GetCustomerByID)
	}

	// ----------------------------------------------------------------
	//                      MECHANIC
	// ----------------------------------------------------------------
	mechanic := r.Group("/mechanic")
	{
		login := mechanic.Group("/")
		login.Use(middlewares.NewStrictRateLimiter())
		{
			login.POST("/", mechanicCtrl.Register)
			login.POST("/login", mechanicCtrl.Login)
		}

		mechanic.GET("/", mechanicCtrl.GetAllMechanics)
		mechanic.GET("/rankings", mechanicCtrl.GetRankings)

		self := mechanic.Group("/")
		self.Use(middlewares.AuthMiddleware())
		{
			self.GET("/:mechanic_id", mechanicCtrl.GetMechanicByID)
			self.PUT("/:mechanic_id", mechanicCtrl.UpdateMechanic)
			self.DELETE("/:mechanic_id", mechanicCtrl.DeleteMechanic)
		}
	}

	// ----------------------------------------------------------------
	//                      MECHANIC-ONLY RESOURCES
	// ----------------------------------------------------------------
	inventory := r.Group("/inventory")
	inventory.Use(middlewares.AuthMiddleware(), middlewares.MechanicOnly())
	{
		inventory.GET("/", inventoryCtrl.GetAllItems)
		inventory.POST("/", inventoryCtrl.CreateItem)
		inventory.GET("/:item_id", inventoryCtrl.GetItemByID)
		inventory.PUT("/:item_id", inventoryCtrl.UpdateItem)
		inventory.DELETE("/:item_id", inventoryCtrl.DeleteItem)
	}

	ticket := r.Group("/service_ticket")
	ticket.Use(middlewares.AuthMiddleware(), middlewares.MechanicOnly())
	{
		ticket.POST("/", ticketCtrl.CreateTicket)
		ticket.GET("/", ticketCtrl.GetAllTickets)
		ticket.GET("/:ticket_id", ticketCtrl.GetTicketByID)
		ticket.PUT("/:ticket_id", ticketCtrl.UpdateTicket)
		ticket.DELETE("/:ticket_id", ticketCtrl.DeleteTicket)
		ticket.POST("/:ticket_id/add-part", ticketCtrl.AddPart)
		ticket.GET("/:ticket_id/mechanics", ticketCtrl.GetTicketMechanics)
	}

	serviceAssignment := r.Group("/service_assignment")
	serviceAssignment.Use(middlewares.AuthMiddleware(), middlewares.MechanicOnly())
	{
		serviceAssignment.POST("/", serviceAssignCtrl.CreateAssignment)
		serviceAssignment.GET("/", serviceAssignCtrl.GetAllAssignments)
		serviceAssignment.DELETE("/", serviceAssignCtrl.DeleteAssignment)
	}

	inventoryAssignment := r.Group("/inventory_assignment")
	inventoryAssignment.Use(middlewares.AuthMiddleware(), middlewares.MechanicOnly())
	{
		inventoryAssignment.POST("/", inventoryAssignCtrl.CreateAssignment)
		inventoryAssignment.GET("/", inventoryAssignCtrl.GetAllAssignments)
		inventoryAssignment.PUT("/", inventoryAssignCtrl.UpdateAssignment)
		inventoryAssignment.DELETE("/", inventoryAssignCtrl.DeleteAssignment)
	}

	return r
}
