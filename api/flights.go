package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/Domenick1991/flightinventory/internal/service/flights"
	"github.com/gin-gonic/gin"
)

const dateLayout = time.DateOnly

type FlightHandler struct {
	service flights.FlightUseCase
}

type addFlightRequest struct {
	AirlineName   string `json:"airline_name" binding:"required"`
	FromPlace     string `json:"from_place" binding:"required"`
	ToPlace       string `json:"to_place" binding:"required"`
	ScheduleDate  string `json:"schedule_date" binding:"required"`
	DepartureTime string `json:"departure_time" binding:"required"`
	ArrivalTime   string `json:"arrival_time" binding:"required"`
	PriceCents    int64  `json:"price_cents" binding:"min=0"`
	TotalSeats    int    `json:"total_seats" binding:"required,min=1"`
}

type searchRequest struct {
	FromPlace string `json:"from_place" binding:"required"`
	ToPlace   string `json:"to_place" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

type flightResponse struct {
	ID             string `json:"id"`
	AirlineName    string `json:"airline_name"`
	FromPlace      string `json:"from_place"`
	ToPlace        string `json:"to_place"`
	ScheduleDate   string `json:"schedule_date"`
	DepartureTime  string `json:"departure_time"`
	ArrivalTime    string `json:"arrival_time"`
	PriceCents     int64  `json:"price_cents"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.POST("/airline/inventory/add", h.add)
	router.GET("/airline/inventory", h.list)
	router.POST("/search", h.search)
	router.GET("/:id", h.get)
}

// add godoc
// @Summary Add flight inventory
// @Tags flights
// @Accept json
// @Produce json
// @Param request body addFlightRequest true "Flight"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errorResponse
// @Router /airline/inventory/add [post]
func (h *FlightHandler) add(c *gin.Context) {
	var req addFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	flight, err := req.toDomain()
	if err != nil {
		writeError(c, err)
		return
	}

	id, err := h.service.Add(c.Request.Context(), flight)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *FlightHandler) list(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(result))
}

// search godoc
// @Summary Search flights with free seats
// @Tags flights
// @Accept json
// @Produce json
// @Param request body searchRequest true "Route and date"
// @Success 200 {array} flightResponse
// @Failure 404 {object} errorResponse
// @Router /search [post]
func (h *FlightHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(c, domain.ValidationError{Field: "date", Msg: fmt.Sprintf("expected %s", dateLayout)})
		return
	}

	result, err := h.service.Search(c.Request.Context(), req.FromPlace, req.ToPlace, date)
	if err != nil {
		writeError(c, err)
		return
	}
	if len(result) == 0 {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no flights found", RequestID: GetRequestID(c)})
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(result))
}

// get godoc
// @Summary Get flight by id
// @Tags flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} flightResponse
// @Failure 404 {object} errorResponse
// @Router /{id} [get]
func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(*flight))
}

func (r addFlightRequest) toDomain() (*domain.Flight, error) {
	date, err := time.Parse(dateLayout, r.ScheduleDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "schedule_date", Msg: fmt.Sprintf("expected %s", dateLayout)}
	}
	departure, err := domain.ParseTimeOfDay(r.DepartureTime)
	if err != nil {
		return nil, domain.ValidationError{Field: "departure_time", Msg: err.Error()}
	}
	arrival, err := domain.ParseTimeOfDay(r.ArrivalTime)
	if err != nil {
		return nil, domain.ValidationError{Field: "arrival_time", Msg: err.Error()}
	}
	return &domain.Flight{
		AirlineName:   r.AirlineName,
		Origin:        r.FromPlace,
		Destination:   r.ToPlace,
		ScheduleDate:  date,
		DepartureTime: departure,
		ArrivalTime:   arrival,
		PriceCents:    r.PriceCents,
		TotalSeats:    r.TotalSeats,
	}, nil
}

func toFlightResponse(f domain.Flight) flightResponse {
	return flightResponse{
		ID:             f.ID,
		AirlineName:    f.AirlineName,
		FromPlace:      f.Origin,
		ToPlace:        f.Destination,
		ScheduleDate:   f.ScheduleDate.Format(dateLayout),
		DepartureTime:  f.DepartureTime.String(),
		ArrivalTime:    f.ArrivalTime.String(),
		PriceCents:     f.PriceCents,
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
	}
}

func toFlightResponses(list []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFlightResponse(f))
	}
	return out
}
