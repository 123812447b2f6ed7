package candidate

import "time"

type Candidate struct {
	ID        string
	Name      string
	Email     string
	Position  string
	CVPath    string
	AppliedOn time.Time
}
