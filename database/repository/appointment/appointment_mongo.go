package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lexaid/database"
	"lexaid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotFound is returned when no appointment matches the lookup.
	ErrNotFound = errors.New("appointment not found")
	// ErrStatusConflict is returned when a guarded update finds the document
	// no longer in the expected status.
	ErrStatusConflict = errors.New("appointment status changed concurrently")
	// ErrSlotTaken is returned when the unique slot index rejects a write
	// because another scheduled appointment already occupies the same
	// lawyer/date-time combination.
	ErrSlotTaken = errors.New("slot already taken")
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

// NewMongoAppointmentRepo creates a new AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &MongoAppointmentRepo{
		coll:     db.Collection("appointments"),
		counters: db.Collection("counters"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "controlNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdDate", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "assignedLawyer", Value: 1}, {Key: "appointmentDate", Value: 1}},
			// Unique only while scheduled, so a slot frees up when the
			// consultation completes or the request is re-triaged. This is
			// the commit-time guard against two sessions booking the same
			// lawyer minute.
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"appointmentStatus": models.StatusScheduled}),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new appointment document.
func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		return fmt.Errorf("error creating appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its ID.
func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", id, err)
	}
	return &appt, nil
}

// GetByControlNumber retrieves an appointment by its control number. Used by
// the front-desk QR check-in flow.
func (r *MongoAppointmentRepo) GetByControlNumber(ctx context.Context, controlNumber string) (*models.Appointment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"controlNumber": controlNumber}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment %s: %w", controlNumber, err)
	}
	return &appt, nil
}

// UpdateFields applies a partial update guarded on the current status.
func (r *MongoAppointmentRepo) UpdateFields(ctx context.Context, id, expectedStatus string, fields bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "appointmentStatus": expectedStatus}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to update appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

// AppendReschedule pushes one reschedule history entry and applies the
// accompanying field updates in a single guarded write.
func (r *MongoAppointmentRepo) AppendReschedule(ctx context.Context, id string, entry models.RescheduleEntry, fields bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "appointmentStatus": models.StatusScheduled}
	update := bson.M{
		"$set":  fields,
		"$push": bson.M{"rescheduleHistory": entry},
	}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to reschedule appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

// ListScheduledBetween returns scheduled appointments dated inside [from, to),
// across all lawyers.
func (r *MongoAppointmentRepo) ListScheduledBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"appointmentStatus": models.StatusScheduled,
		"appointmentDate":   bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("failed to decode scheduled appointments: %w", err)
	}
	return appts, nil
}

// NextControlNumber issues the next sequential control number from the
// counters collection, scoped per calendar year.
func (r *MongoAppointmentRepo) NextControlNumber(ctx context.Context) (string, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	year := time.Now().Year()
	filter := bson.M{"_id": fmt.Sprintf("appointments-%d", year)}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return "", fmt.Errorf("failed to issue control number: %w", err)
	}
	return fmt.Sprintf("IBP-%d-%06d", year, counter.Seq), nil
}
