package api

import (
	"net/http"

	_ "github.com/Domenick1991/flightinventory/docs"
	"github.com/Domenick1991/flightinventory/internal/logger"
	"github.com/Domenick1991/flightinventory/internal/service/booking"
	"github.com/Domenick1991/flightinventory/internal/service/flights"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const basePath = "/api/v1.0/flight"

type RouterOptions struct {
	Swagger bool
	Metrics http.Handler
}

func NewRouter(flightService flights.FlightUseCase, bookingService booking.BookingUseCase, log logger.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}
	if opts.Swagger {
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	group := router.Group(basePath)
	NewFlightHandler(flightService).Register(group)
	NewBookingHandler(bookingService).Register(group)
	return router
}
