package domain

// SessionStats is a point-in-time view of the session store.
type SessionStats struct {
	Queued    int `json:"queued"`
	Rooms     int `json:"rooms"`
	Connected int `json:"connected"`
}
