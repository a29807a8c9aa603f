package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"archatara/internal/domain/reservation"
)

// BookingsCollection is the fixed collection name for reservations;
// an environment-dependent prefix may be prepended.
const BookingsCollection = "archatara_bookings"

type ReservationRepository struct {
	col *mongo.Collection
}

// NewReservationRepository binds the repository to the prefixed
// bookings collection.
func NewReservationRepository(db *mongo.Database, prefix string) *ReservationRepository {
	return &ReservationRepository{col: db.Collection(prefix + BookingsCollection)}
}

// Create inserts the record, stamping a store-assigned identifier and a
// server-side creation timestamp.
func (r *ReservationRepository) Create(ctx context.Context, rec reservation.Reservation) (reservation.Reservation, error) {
	rec.ID = primitive.NewObjectID().Hex()
	rec.CreatedAt = time.Now().UTC()
	if _, err := r.col.InsertOne(ctx, newReservationDocument(rec)); err != nil {
		return reservation.Reservation{}, err
	}
	return rec, nil
}

// SetStatus overwrites the status field of one document.
func (r *ReservationRepository) SetStatus(ctx context.Context, id string, status reservation.Status) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return reservation.ErrNotFound
	}
	return nil
}

// UpdateFields applies an admin edit of the customer contact fields.
func (r *ReservationRepository) UpdateFields(ctx context.Context, id string, update reservation.FieldUpdate) error {
	set := bson.M{}
	if update.CustomerName != nil {
		set["customerName"] = *update.CustomerName
	}
	if update.CustomerPhone != nil {
		set["customerPhone"] = *update.CustomerPhone
	}
	if update.CustomerEmail != nil {
		set["customerEmail"] = *update.CustomerEmail
	}
	if len(set) == 0 {
		return reservation.ErrNothingToUpdate
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return reservation.ErrNotFound
	}
	return nil
}

// Delete removes one document.
func (r *ReservationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return reservation.ErrNotFound
	}
	return nil
}

// DeleteAll removes every reservation document.
func (r *ReservationRepository) DeleteAll(ctx context.Context) error {
	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}

// List returns all reservations ordered by creation time descending,
// the same default ordering the live feed delivers.
func (r *ReservationRepository) List(ctx context.Context) ([]reservation.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []reservation.Reservation
	for cur.Next(ctx) {
		var doc reservationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toRecord())
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ByID fetches one reservation document.
func (r *ReservationRepository) ByID(ctx context.Context, id string) (reservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return reservation.Reservation{}, reservation.ErrNotFound
		}
		return reservation.Reservation{}, err
	}
	return doc.toRecord(), nil
}

type reservationDocument struct {
	ID            string `bson:"_id"`
	Date          string `bson:"date"`
	TypeID        string `bson:"type"`
	UnitID        string `bson:"unitId"`
	CustomerName  string `bson:"customerName"`
	CustomerPhone string `bson:"customerPhone"`
	CustomerEmail string `bson:"customerEmail,omitempty"`
	HasExtraBed   bool   `bson:"hasExtraBed"`
	SlipImage     string `bson:"slipImage,omitempty"`
	Status        string `bson:"status"`
	CreatedAt     int64  `bson:"createdAt"`
}

func newReservationDocument(rec reservation.Reservation) reservationDocument {
	return reservationDocument{
		ID:            rec.ID,
		Date:          rec.Date,
		TypeID:        rec.TypeID,
		UnitID:        rec.UnitID,
		CustomerName:  rec.CustomerName,
		CustomerPhone: rec.CustomerPhone,
		CustomerEmail: rec.CustomerEmail,
		HasExtraBed:   rec.HasExtraBed,
		SlipImage:     rec.SlipImage,
		Status:        string(rec.Status),
		CreatedAt:     rec.CreatedAt.UnixMilli(),
	}
}

func (d reservationDocument) toRecord() reservation.Reservation {
	return reservation.Reservation{
		ID:            d.ID,
		Date:          d.Date,
		TypeID:        d.TypeID,
		UnitID:        d.UnitID,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		CustomerEmail: d.CustomerEmail,
		HasExtraBed:   d.HasExtraBed,
		SlipImage:     d.SlipImage,
		Status:        reservation.Status(d.Status),
		CreatedAt:     time.UnixMilli(d.CreatedAt).UTC(),
	}
}
