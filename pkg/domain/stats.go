package domain

// TableCounts is a point-in-time snapshot of the row counts of the four core
// tables. Counts are read fresh on every request, never cached.
type TableCounts struct {
	Users     int64 `json:"users"`
	Profiles  int64 `json:"profiles"`
	Products  int64 `json:"products"`
	Companies int64 `json:"companies"`
}
