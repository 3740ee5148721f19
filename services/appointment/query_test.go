package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lexaid/models"
)

func seedListing(t *testing.T, env *testEnv, n int) []string {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var controlNumbers []string
	for i := 0; i < n; i++ {
		cn := fmt.Sprintf("IBP-2026-%06d", i+1)
		appt := &models.Appointment{
			ID:            fmt.Sprintf("A%d", i+1),
			ControlNumber: cn,
			ApplicantID:   "C1",
			Applicant: models.ApplicantProfile{
				FullName:      fmt.Sprintf("Applicant %02d", i+1),
				Address:       "Quezon City",
				ContactNumber: fmt.Sprintf("0917%07d", i+1),
			},
			AppointmentStatus: models.StatusPending,
			CreatedDate:       base.Add(time.Duration(i) * time.Hour),
			UpdatedTime:       base.Add(time.Duration(i) * time.Hour),
		}
		if err := env.repo.Create(ctx, appt); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		controlNumbers = append(controlNumbers, cn)
	}
	return controlNumbers
}

func TestList_ControlNumberPagination(t *testing.T) {
	env := newTestEnv()
	controlNumbers := seedListing(t, env, 10)
	ctx := context.Background()

	page, err := env.svc.List(ctx, env.head(), models.AppointmentFilter{Status: models.StatusPending},
		models.PageRequest{Size: 7, SortBy: models.SortControlNumber})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Items) != 7 {
		t.Fatalf("first page size = %d, want 7", len(page.Items))
	}
	if page.Total != 10 {
		t.Errorf("total = %d, want 10", page.Total)
	}
	for i, item := range page.Items {
		if item.ControlNumber != controlNumbers[i] {
			t.Errorf("item %d control number = %q, want %q", i, item.ControlNumber, controlNumbers[i])
		}
	}
	if page.NextCursor != controlNumbers[6] {
		t.Errorf("next cursor = %q, want %q", page.NextCursor, controlNumbers[6])
	}

	second, err := env.svc.List(ctx, env.head(), models.AppointmentFilter{Status: models.StatusPending},
		models.PageRequest{Size: 7, SortBy: models.SortControlNumber, Cursor: page.NextCursor})
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(second.Items) != 3 {
		t.Fatalf("second page size = %d, want 3", len(second.Items))
	}
	if second.Items[0].ControlNumber != controlNumbers[7] {
		t.Errorf("second page starts at %q, want %q", second.Items[0].ControlNumber, controlNumbers[7])
	}
}

func TestList_BackwardPaging(t *testing.T) {
	env := newTestEnv()
	controlNumbers := seedListing(t, env, 10)
	ctx := context.Background()
	filter := models.AppointmentFilter{Status: models.StatusPending}

	first, err := env.svc.List(ctx, env.head(), filter,
		models.PageRequest{Size: 3, SortBy: models.SortControlNumber})
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	second, err := env.svc.List(ctx, env.head(), filter,
		models.PageRequest{Size: 3, SortBy: models.SortControlNumber, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}
	if len(second.Items) != 3 || second.Items[0].ControlNumber != controlNumbers[3] {
		t.Fatalf("second page starts at %q, want %q", second.Items[0].ControlNumber, controlNumbers[3])
	}

	// Paging backward from the top of the second page lands on the first
	// page again, in forward order.
	back, err := env.svc.List(ctx, env.head(), filter,
		models.PageRequest{Size: 3, SortBy: models.SortControlNumber,
			Cursor: second.Items[0].ControlNumber, Backward: true})
	if err != nil {
		t.Fatalf("backward page failed: %v", err)
	}
	if len(back.Items) != 3 {
		t.Fatalf("backward page size = %d, want 3", len(back.Items))
	}
	for i, item := range back.Items {
		if item.ControlNumber != controlNumbers[i] {
			t.Errorf("backward item %d = %q, want %q", i, item.ControlNumber, controlNumbers[i])
		}
	}
}

func TestList_BackwardPagingByCreatedDate(t *testing.T) {
	env := newTestEnv()
	seedListing(t, env, 9)
	ctx := context.Background()
	filter := models.AppointmentFilter{Status: models.StatusPending}

	first, err := env.svc.List(ctx, env.head(), filter, models.PageRequest{Size: 3})
	if err != nil {
		t.Fatalf("first page failed: %v", err)
	}
	second, err := env.svc.List(ctx, env.head(), filter,
		models.PageRequest{Size: 3, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("second page failed: %v", err)
	}

	back, err := env.svc.List(ctx, env.head(), filter,
		models.PageRequest{Size: 3, Backward: true,
			Cursor: second.Items[0].CreatedDate.Format(time.RFC3339Nano)})
	if err != nil {
		t.Fatalf("backward page failed: %v", err)
	}
	if len(back.Items) != len(first.Items) {
		t.Fatalf("backward page size = %d, want %d", len(back.Items), len(first.Items))
	}
	for i := range first.Items {
		if back.Items[i].ID != first.Items[i].ID {
			t.Errorf("backward item %d = %s, want %s", i, back.Items[i].ID, first.Items[i].ID)
		}
	}
}

func TestList_IsIdempotent(t *testing.T) {
	env := newTestEnv()
	seedListing(t, env, 10)
	ctx := context.Background()
	req := models.PageRequest{Size: 7, SortBy: models.SortControlNumber}
	filter := models.AppointmentFilter{Status: models.StatusPending}

	first, err := env.svc.List(ctx, env.head(), filter, req)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	again, err := env.svc.List(ctx, env.head(), filter, req)
	if err != nil {
		t.Fatalf("repeated list failed: %v", err)
	}
	if len(first.Items) != len(again.Items) || first.NextCursor != again.NextCursor || first.Total != again.Total {
		t.Fatal("repeating the same query must return the same page")
	}
	for i := range first.Items {
		if first.Items[i].ID != again.Items[i].ID {
			t.Fatalf("item %d differs between identical queries", i)
		}
	}
}

func TestList_CreatedDateDescending(t *testing.T) {
	env := newTestEnv()
	seedListing(t, env, 5)
	ctx := context.Background()

	page, err := env.svc.List(ctx, env.head(), models.AppointmentFilter{},
		models.PageRequest{Size: 10, SortBy: models.SortCreatedDesc})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].CreatedDate.After(page.Items[i-1].CreatedDate) {
			t.Fatal("items must come back newest first")
		}
	}
}

func TestList_RoleScoping(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	appts := []*models.Appointment{
		{ID: "A1", ControlNumber: "IBP-2026-000001", ApplicantID: "C1", AssignedLawyer: "L1", AppointmentStatus: models.StatusApproved, CreatedDate: time.Now()},
		{ID: "A2", ControlNumber: "IBP-2026-000002", ApplicantID: "C2", AssignedLawyer: "L2", AppointmentStatus: models.StatusApproved, CreatedDate: time.Now()},
		{ID: "A3", ControlNumber: "IBP-2026-000003", ApplicantID: "C1", AppointmentStatus: models.StatusPending, CreatedDate: time.Now()},
	}
	for _, a := range appts {
		if err := env.repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}

	lawyerPage, err := env.svc.List(ctx, env.lawyer(), models.AppointmentFilter{}, models.PageRequest{Size: 10})
	if err != nil {
		t.Fatalf("lawyer list failed: %v", err)
	}
	if len(lawyerPage.Items) != 1 || lawyerPage.Items[0].ID != "A1" {
		t.Errorf("lawyer must see only assigned appointments, got %d items", len(lawyerPage.Items))
	}

	client := env.users.users["C1"]
	clientPage, err := env.svc.List(ctx, client, models.AppointmentFilter{}, models.PageRequest{Size: 10})
	if err != nil {
		t.Fatalf("client list failed: %v", err)
	}
	if len(clientPage.Items) != 2 {
		t.Errorf("client must see own appointments only, got %d items", len(clientPage.Items))
	}

	headPage, err := env.svc.List(ctx, env.head(), models.AppointmentFilter{}, models.PageRequest{Size: 10})
	if err != nil {
		t.Fatalf("head list failed: %v", err)
	}
	if len(headPage.Items) != 3 {
		t.Errorf("staff see everything, got %d items", len(headPage.Items))
	}
}

func TestList_SearchPostFilter(t *testing.T) {
	env := newTestEnv()
	seedListing(t, env, 10)
	ctx := context.Background()

	page, err := env.svc.List(ctx, env.head(),
		models.AppointmentFilter{Status: models.StatusPending, Search: "applicant 03"},
		models.PageRequest{Size: 10, SortBy: models.SortControlNumber})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Applicant.FullName != "Applicant 03" {
		t.Fatalf("case-insensitive substring match failed, got %d items", len(page.Items))
	}
	// The cursor tracks the page before the post-filter, so paging resumes
	// from the last stored row, not the last match.
	if page.NextCursor == "" {
		t.Error("search pages still carry a resume cursor")
	}
}

func TestGet_Visibility(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	appt := &models.Appointment{ID: "A1", ControlNumber: "IBP-2026-000001", ApplicantID: "C1", AssignedLawyer: "L1", AppointmentStatus: models.StatusApproved}
	if err := env.repo.Create(ctx, appt); err != nil {
		t.Fatal(err)
	}
	other := &models.Appointment{ID: "A2", ControlNumber: "IBP-2026-000002", ApplicantID: "C2", AssignedLawyer: "L2", AppointmentStatus: models.StatusApproved}
	if err := env.repo.Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	if _, err := env.svc.Get(ctx, env.users.users["C1"], "A1"); err != nil {
		t.Errorf("client must read their own appointment: %v", err)
	}
	if _, err := env.svc.Get(ctx, env.users.users["C1"], "A2"); err == nil {
		t.Error("client must not read another applicant's appointment")
	}
	if _, err := env.svc.Get(ctx, env.lawyer(), "A2"); err == nil {
		t.Error("lawyer must not read an unassigned appointment")
	}
	if _, err := env.svc.Get(ctx, env.head(), "A2"); err != nil {
		t.Errorf("head reads any appointment: %v", err)
	}

	got, err := env.svc.GetByControlNumber(ctx, "IBP-2026-000002")
	if err != nil || got.ID != "A2" {
		t.Errorf("control number lookup = (%v, %v), want A2", got, err)
	}
}
