package models

// Sort orders supported by the appointment listing.
const (
	SortCreatedDesc   = "createdDate"   // newest first
	SortControlNumber = "controlNumber" // ascending
)

// AppointmentFilter narrows an appointment listing. Zero values mean "no
// constraint"; Status "all" is treated the same as empty.
type AppointmentFilter struct {
	Status         string `json:"status,omitempty"`
	Category       string `json:"category,omitempty"`
	Search         string `json:"search,omitempty"`
	AssignedLawyer string `json:"assignedLawyer,omitempty"`
	ApplicantID    string `json:"applicantId,omitempty"`
}

// PageRequest is a cursor-paged read. Cursor is the sort key of the last item
// of the previous page; empty means "first page". Backward re-queries in the
// opposite direction from the cursor.
type PageRequest struct {
	Cursor   string `json:"cursor,omitempty"`
	Size     int64  `json:"size"`
	SortBy   string `json:"sortBy,omitempty"`
	Backward bool   `json:"backward,omitempty"`
}

// AppointmentPage is one page of results plus the resume cursor and an
// unpaginated total. The total comes from a second count read, so it can be
// transiently inconsistent with the page contents under concurrent writes.
type AppointmentPage struct {
	Items      []Appointment `json:"items"`
	NextCursor string        `json:"nextCursor,omitempty"`
	Total      int64         `json:"total"`
}
