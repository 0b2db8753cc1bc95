package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type passengerRequest struct {
	Name       string `json:"name" binding:"required"`
	Gender     string `json:"gender" binding:"required"`
	Age        int    `json:"age" binding:"min=0"`
	SeatNumber string `json:"seat_number" binding:"required"`
}

type createBookingRequest struct {
	Name         string             `json:"name" binding:"required"`
	Email        string             `json:"email" binding:"required,email"`
	MobileNumber string             `json:"mobile_number" binding:"required,len=10,numeric"`
	Meal         string             `json:"meal" binding:"required,oneof=Veg NonVeg"`
	Passengers   []passengerRequest `json:"passengers" binding:"required,min=1,dive"`
}

type passengerResponse struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	SeatNumber string `json:"seat_number,omitempty"`
}

type bookingResponse struct {
	PNR            string              `json:"pnr"`
	FlightID       string              `json:"flight_id"`
	Name           string              `json:"name"`
	Email          string              `json:"email"`
	MobileNumber   string              `json:"mobile_number"`
	Meal           string              `json:"meal"`
	BookingDate    string              `json:"booking_date"`
	JourneyDate    string              `json:"journey_date"`
	NumberOfSeats  int                 `json:"number_of_seats"`
	TotalCostCents int64               `json:"total_cost_cents"`
	Passengers     []passengerResponse `json:"passengers"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/booking/:flightId", h.create)
	router.GET("/ticket/:pnr", h.ticket)
	router.GET("/booking/history/:emailId", h.history)
	router.DELETE("/booking/cancel/:pnr", h.cancel)
}

// create godoc
// @Summary Book seats on a flight
// @Tags bookings
// @Accept json
// @Produce json
// @Param flightId path string true "Flight ID"
// @Param request body createBookingRequest true "Booking"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /booking/{flightId} [post]
func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	passengers := make([]domain.Passenger, 0, len(req.Passengers))
	for _, p := range req.Passengers {
		passengers = append(passengers, domain.Passenger{Name: p.Name, Gender: p.Gender, Age: p.Age, SeatLabel: p.SeatNumber})
	}

	code, err := h.service.Book(c.Request.Context(), c.Param("flightId"), booking.BookingRequest{
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		CustomerPhone: req.MobileNumber,
		Meal:          domain.Meal(req.Meal),
		Passengers:    passengers,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pnr": code})
}

// ticket godoc
// @Summary Get a booking by reservation code
// @Tags bookings
// @Produce json
// @Param pnr path string true "Reservation code"
// @Success 200 {object} bookingResponse
// @Failure 404 {object} errorResponse
// @Router /ticket/{pnr} [get]
func (h *BookingHandler) ticket(c *gin.Context) {
	b, err := h.service.GetByCode(c.Request.Context(), c.Param("pnr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(*b))
}

// history godoc
// @Summary Booking history of a customer, newest first
// @Tags bookings
// @Produce json
// @Param emailId path string true "Customer email"
// @Success 200 {array} bookingResponse
// @Router /booking/history/{emailId} [get]
func (h *BookingHandler) history(c *gin.Context) {
	bookings, err := h.service.GetHistoryByEmail(c.Request.Context(), c.Param("emailId"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

// cancel godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Param pnr path string true "Reservation code"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /booking/cancel/{pnr} [delete]
func (h *BookingHandler) cancel(c *gin.Context) {
	code := c.Param("pnr")
	if err := h.service.Cancel(c.Request.Context(), code); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pnr": code, "message": "booking cancelled"})
}

func toBookingResponse(b domain.Booking) bookingResponse {
	passengers := make([]passengerResponse, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		passengers = append(passengers, passengerResponse{Name: p.Name, Gender: p.Gender, Age: p.Age, SeatNumber: p.SeatLabel})
	}
	return bookingResponse{
		PNR:            b.Code,
		FlightID:       b.FlightID,
		Name:           b.CustomerName,
		Email:          b.CustomerEmail,
		MobileNumber:   b.CustomerPhone,
		Meal:           string(b.Meal),
		BookingDate:    b.BookedAt.UTC().Format(time.RFC3339),
		JourneyDate:    b.JourneyDate.Format(dateLayout),
		NumberOfSeats:  b.SeatCount,
		TotalCostCents: b.TotalCostCents,
		Passengers:     passengers,
	}
}
