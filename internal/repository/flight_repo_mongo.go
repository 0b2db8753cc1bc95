package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/Domenick1991/flightinventory/internal/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type flightDocument struct {
	ID             string    `bson:"_id"`
	AirlineName    string    `bson:"airlineName"`
	FromPlace      string    `bson:"fromPlace"`
	ToPlace        string    `bson:"toPlace"`
	ScheduleDate   time.Time `bson:"scheduleDate"`
	DepartureTime  int       `bson:"departureTime"`
	ArrivalTime    int       `bson:"arrivalTime"`
	PriceCents     int64     `bson:"priceCents"`
	TotalSeats     int       `bson:"totalSeats"`
	AvailableSeats int       `bson:"availableSeats"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

// MongoFlightRepository stores flights in the "flights" collection.
type MongoFlightRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightRepository ensures the route search index exists.
func NewMongoFlightRepository(ctx context.Context, db *mongo.Database) (FlightRepository, error) {
	collection := db.Collection("flights")

	searchIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "fromPlace", Value: 1},
			{Key: "toPlace", Value: 1},
			{Key: "scheduleDate", Value: 1},
		},
	}
	if _, err := collection.Indexes().CreateOne(ctx, searchIndex); err != nil {
		return nil, fmt.Errorf("create flights index: %w", err)
	}

	return &MongoFlightRepository{collection: collection}, nil
}

func (r *MongoFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	flight.CreatedAt, flight.UpdatedAt = now, now

	_, err := r.collection.InsertOne(ctx, toFlightDocument(flight))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var doc flightDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// ConditionalUpdateAvailableSeats applies $inc under a filter that encodes
// the seat bounds; a single-document FindOneAndUpdate is atomic.
func (r *MongoFlightRepository) ConditionalUpdateAvailableSeats(ctx context.Context, id string, minimum, delta int) (*domain.Flight, error) {
	filter := seatUpdateFilter(id, minimum, delta)
	update := bson.M{
		"$inc": bson.M{"availableSeats": delta},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc flightDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}
	return nil, ErrConflict
}

func (r *MongoFlightRepository) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	filter := bson.M{
		"fromPlace":      caseInsensitive(origin),
		"toPlace":        caseInsensitive(destination),
		"scheduleDate":   scheduleDay(date),
		"availableSeats": bson.M{"$gt": 0},
	}
	return r.find(ctx, filter, bson.D{{Key: "departureTime", Value: 1}})
}

func (r *MongoFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.find(ctx, bson.M{}, bson.D{{Key: "scheduleDate", Value: 1}, {Key: "departureTime", Value: 1}})
}

func (r *MongoFlightRepository) find(ctx context.Context, filter bson.M, sort bson.D) ([]domain.Flight, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []flightDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	flights := make([]domain.Flight, 0, len(docs))
	for _, doc := range docs {
		flights = append(flights, *doc.toDomain())
	}
	return flights, nil
}

func seatUpdateFilter(id string, minimum, delta int) bson.M {
	return bson.M{
		"_id":            id,
		"availableSeats": bson.M{"$gte": seatBounds(minimum, delta)},
		"$expr": bson.M{
			"$lte": bson.A{bson.M{"$add": bson.A{"$availableSeats", delta}}, "$totalSeats"},
		},
	}
}

func caseInsensitive(s string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(s) + "$", "$options": "i"}
}

func toFlightDocument(f *domain.Flight) flightDocument {
	return flightDocument{
		ID:             f.ID,
		AirlineName:    f.AirlineName,
		FromPlace:      f.Origin,
		ToPlace:        f.Destination,
		ScheduleDate:   scheduleDay(f.ScheduleDate),
		DepartureTime:  int(f.DepartureTime),
		ArrivalTime:    int(f.ArrivalTime),
		PriceCents:     f.PriceCents,
		TotalSeats:     f.TotalSeats,
		AvailableSeats: f.AvailableSeats,
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
}

func (d flightDocument) toDomain() *domain.Flight {
	return &domain.Flight{
		ID:             d.ID,
		AirlineName:    d.AirlineName,
		Origin:         d.FromPlace,
		Destination:    d.ToPlace,
		ScheduleDate:   scheduleDay(d.ScheduleDate),
		DepartureTime:  domain.TimeOfDay(d.DepartureTime),
		ArrivalTime:    domain.TimeOfDay(d.ArrivalTime),
		PriceCents:     d.PriceCents,
		TotalSeats:     d.TotalSeats,
		AvailableSeats: d.AvailableSeats,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

var _ FlightRepository = (*MongoFlightRepository)(nil)
