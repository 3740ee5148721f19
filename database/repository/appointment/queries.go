// File: database/repository/appointment/queries.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"lexaid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// searchSentinel closes the prefix range for search queries. The store only
// supports range scans, so substring matching happens as a post-filter over
// the fetched page (see services/appointment); matches outside the page are
// not returned.
const searchSentinel = "￿"

// buildFilter translates an AppointmentFilter into a Mongo filter document.
func buildFilter(filter models.AppointmentFilter) bson.M {
	q := bson.M{}
	if filter.Status != "" && filter.Status != "all" {
		q["appointmentStatus"] = filter.Status
	}
	if filter.Category != "" {
		q["request.category"] = filter.Category
	}
	if filter.AssignedLawyer != "" {
		q["assignedLawyer"] = filter.AssignedLawyer
	}
	if filter.ApplicantID != "" {
		q["applicantId"] = filter.ApplicantID
	}
	if filter.Search != "" {
		prefix := bson.M{"$gte": filter.Search, "$lte": filter.Search + searchSentinel}
		q["$or"] = []bson.M{
			{"applicant.fullName": prefix},
			{"applicant.address": prefix},
			{"applicant.contactNumber": prefix},
		}
	}
	return q
}

// List returns one page of appointments plus the unpaginated total for the
// same filter. The total is a second read, so page and total can disagree
// transiently under concurrent writes.
func (r *MongoAppointmentRepo) List(ctx context.Context, filter models.AppointmentFilter, page models.PageRequest) ([]models.Appointment, int64, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	q := buildFilter(filter)

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count appointments: %w", err)
	}

	sortBy := page.SortBy
	if sortBy == "" {
		sortBy = models.SortCreatedDesc
	}
	if page.Size <= 0 {
		page.Size = 10
	}

	// The cursor is the sort key of the last item of the previous page.
	// Backward paging re-queries past the cursor in the opposite direction
	// and reverses the page afterwards, per the behavior of the original
	// views; it is an approximation, not an exact inverse of forward paging.
	var sort bson.D
	reversed := false
	switch sortBy {
	case models.SortControlNumber:
		if page.Cursor != "" {
			if page.Backward {
				q["controlNumber"] = bson.M{"$lt": page.Cursor}
			} else {
				q["controlNumber"] = bson.M{"$gt": page.Cursor}
			}
		}
		if page.Backward {
			sort = bson.D{{Key: "controlNumber", Value: -1}}
			reversed = true
		} else {
			sort = bson.D{{Key: "controlNumber", Value: 1}}
		}
	default: // createdDate, newest first
		if page.Cursor != "" {
			at, perr := time.Parse(time.RFC3339Nano, page.Cursor)
			if perr != nil {
				return nil, 0, fmt.Errorf("invalid page cursor %q: %w", page.Cursor, perr)
			}
			if page.Backward {
				q["createdDate"] = bson.M{"$gt": at}
			} else {
				q["createdDate"] = bson.M{"$lt": at}
			}
		}
		if page.Backward {
			sort = bson.D{{Key: "createdDate", Value: 1}}
			reversed = true
		} else {
			sort = bson.D{{Key: "createdDate", Value: -1}}
		}
	}

	opts := options.Find().SetSort(sort).SetLimit(page.Size)
	cursor, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Appointment
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("failed to decode appointments: %w", err)
	}

	if reversed {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	return items, total, nil
}
