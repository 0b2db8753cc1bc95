package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// bookingDocument keeps passengers embedded, keyed by the reservation code.
type bookingDocument struct {
	PNR          string              `bson:"_id"`
	FlightID     string              `bson:"flightId"`
	UserName     string              `bson:"userName"`
	UserEmail    string              `bson:"userEmail"`
	MobileNumber string              `bson:"mobileNumber"`
	MealOpted    string              `bson:"mealOpted"`
	BookingDate  time.Time           `bson:"bookingDate"`
	JourneyDate  time.Time           `bson:"journeyDate"`
	Seats        int                 `bson:"numberOfSeats"`
	TotalCost    int64               `bson:"totalCostCents"`
	Passengers   []passengerDocument `bson:"passengers"`
}

type passengerDocument struct {
	Name       string `bson:"name"`
	Gender     string `bson:"gender"`
	Age        int    `bson:"age"`
	SeatNumber string `bson:"seatNumber"`
}

type MongoBookingRepository struct {
	collection *mongo.Collection
}

func NewMongoBookingRepository(ctx context.Context, db *mongo.Database) (BookingRepository, error) {
	collection := db.Collection("bookings")

	historyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userEmail", Value: 1},
			{Key: "bookingDate", Value: -1},
		},
	}
	flightIndex := mongo.IndexModel{
		Keys: bson.M{"flightId": 1},
	}
	if _, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{historyIndex, flightIndex}); err != nil {
		return nil, fmt.Errorf("create bookings indexes: %w", err)
	}

	return &MongoBookingRepository{collection: collection}, nil
}

func (r *MongoBookingRepository) Save(ctx context.Context, booking *domain.Booking) error {
	_, err := r.collection.InsertOne(ctx, toBookingDocument(booking))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MongoBookingRepository) FindByCode(ctx context.Context, code string) (*domain.Booking, error) {
	var doc bookingDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MongoBookingRepository) FindByCustomerEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": email},
		options.Find().SetSort(bson.D{{Key: "bookingDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bookingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	bookings := make([]domain.Booking, 0, len(docs))
	for _, doc := range docs {
		bookings = append(bookings, *doc.toDomain())
	}
	return bookings, nil
}

func (r *MongoBookingRepository) Delete(ctx context.Context, booking *domain.Booking) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": booking.Code})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepository) SeatsByFlight(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$flightId"},
			{Key: "seats", Value: bson.D{{Key: "$sum", Value: "$numberOfSeats"}}},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []struct {
		FlightID string `bson:"_id"`
		Seats    int    `bson:"seats"`
	}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}

	seats := make(map[string]int, len(groups))
	for _, g := range groups {
		seats[g.FlightID] = g.Seats
	}
	return seats, nil
}

func toBookingDocument(b *domain.Booking) bookingDocument {
	passengers := make([]passengerDocument, 0, len(b.Passengers))
	for _, p := range b.Passengers {
		passengers = append(passengers, passengerDocument{Name: p.Name, Gender: p.Gender, Age: p.Age, SeatNumber: p.SeatLabel})
	}
	return bookingDocument{
		PNR:          b.Code,
		FlightID:     b.FlightID,
		UserName:     b.CustomerName,
		UserEmail:    b.CustomerEmail,
		MobileNumber: b.CustomerPhone,
		MealOpted:    string(b.Meal),
		BookingDate:  b.BookedAt.UTC(),
		JourneyDate:  scheduleDay(b.JourneyDate),
		Seats:        b.SeatCount,
		TotalCost:    b.TotalCostCents,
		Passengers:   passengers,
	}
}

func (d bookingDocument) toDomain() *domain.Booking {
	passengers := make([]domain.Passenger, 0, len(d.Passengers))
	for _, p := range d.Passengers {
		passengers = append(passengers, domain.Passenger{Name: p.Name, Gender: p.Gender, Age: p.Age, SeatLabel: p.SeatNumber})
	}
	return &domain.Booking{
		Code:           d.PNR,
		FlightID:       d.FlightID,
		CustomerName:   d.UserName,
		CustomerEmail:  d.UserEmail,
		CustomerPhone:  d.MobileNumber,
		Meal:           domain.Meal(d.MealOpted),
		BookedAt:       d.BookingDate,
		JourneyDate:    scheduleDay(d.JourneyDate),
		SeatCount:      d.Seats,
		TotalCostCents: d.TotalCost,
		Passengers:     passengers,
	}
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
