package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Domenick1991/flightinventory/internal/domain"
)

func TestFlightDocumentConversion(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	f := newTestFlight(10, 4)
	f.ID = "f1"
	f.ScheduleDate = time.Date(2026, 12, 1, 0, 0, 0, 0, loc)

	doc := toFlightDocument(f)
	assert.Equal(t, "f1", doc.ID)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), doc.ScheduleDate)
	assert.Equal(t, 36000, doc.DepartureTime)

	back := doc.toDomain()
	assert.Equal(t, f.Origin, back.Origin)
	assert.Equal(t, f.ArrivalTime, back.ArrivalTime)
	assert.Equal(t, 4, back.AvailableSeats)
}

func TestBookingDocumentConversion(t *testing.T) {
	b := &domain.Booking{
		Code:          "FLABCDEF12",
		FlightID:      "f1",
		CustomerEmail: "a@example.com",
		Meal:          domain.MealVeg,
		BookedAt:      time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC),
		JourneyDate:   time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		SeatCount:     1,
		Passengers:    []domain.Passenger{{Name: "A", Gender: "F", Age: 30, SeatLabel: "12A"}},
	}

	doc := toBookingDocument(b)
	assert.Equal(t, "FLABCDEF12", doc.PNR)
	assert.Equal(t, "Veg", doc.MealOpted)
	assert.Equal(t, "12A", doc.Passengers[0].SeatNumber)

	assert.Equal(t, b, doc.toDomain())
}

func TestSeatUpdateFilter(t *testing.T) {
	filter := seatUpdateFilter("f1", 2, -2)
	assert.Equal(t, "f1", filter["_id"])
	assert.Equal(t, bson.M{"$gte": 2}, filter["availableSeats"])
	assert.Contains(t, filter, "$expr")
}

func TestCaseInsensitive(t *testing.T) {
	assert.Equal(t, bson.M{"$regex": `^New York\.$`, "$options": "i"}, caseInsensitive("New York."))
}

func TestMongoRepositories_IndexFailure(t *testing.T) {
	opts := options.Client().ApplyURI("mongodb://127.0.0.1:1").SetServerSelectionTimeout(200 * time.Millisecond)
	client, err := mongo.Connect(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	db := client.Database("flightinventory_test")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flights, err := NewMongoFlightRepository(ctx, db)
	assert.Error(t, err)
	assert.Nil(t, flights)
	assert.Contains(t, err.Error(), "create flights index")

	bookings, err := NewMongoBookingRepository(ctx, db)
	assert.Error(t, err)
	assert.Nil(t, bookings)
	assert.Contains(t, err.Error(), "create bookings indexes")
}
