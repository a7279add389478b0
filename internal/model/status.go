package model

// StatusID enumerates the closed set of account statuses. The numeric
// values match the `user_statuses` table, which exists only as a foreign
// key target; this enumeration is the source of truth for labels,
// display order and assignability.
type StatusID uint8

const (
	StatusActive   StatusID = 1
	StatusInactive StatusID = 2
	StatusTrashed  StatusID = 99
)

// UserStatus mirrors a row of the `user_statuses` directory table.
type UserStatus struct {
	ID          StatusID `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	IsSystem    bool     `json:"is_system"`
}

// statusDirectory lists the members in display order. The sequence
// (Active, Inactive, Trashed) is fixed by product, not numeric order.
var statusDirectory = []UserStatus{
	{ID: StatusActive, Label: "Active", Description: "Account can sign in and use the system", IsSystem: true},
	{ID: StatusInactive, Label: "Inactive", Description: "Account is disabled but visible", IsSystem: true},
	{ID: StatusTrashed, Label: "Trashed", Description: "Account is soft-deleted", IsSystem: true},
}

// AllStatuses returns every status in display order.
func AllStatuses() []UserStatus {
	out := make([]UserStatus, len(statusDirectory))
	copy(out, statusDirectory)
	return out
}

// AssignableStatuses returns the statuses an admin may pick on the
// create/edit forms. Trashed is reachable only through the trash
// transition and is never offered directly.
func AssignableStatuses() []UserStatus {
	out := make([]UserStatus, 0, len(statusDirectory)-1)
	for _, s := range statusDirectory {
		if s.ID != StatusTrashed {
			out = append(out, s)
		}
	}
	return out
}

// ValidStatus reports whether id names a defined status.
func ValidStatus(id StatusID) bool {
	for _, s := range statusDirectory {
		if s.ID == id {
			return true
		}
	}
	return false
}

// StatusByID returns the directory entry for id.
func StatusByID(id StatusID) (UserStatus, bool) {
	for _, s := range statusDirectory {
		if s.ID == id {
			return s, true
		}
	}
	return UserStatus{}, false
}
