package sessions

// Repo is the durable holder of session records, keyed by session ID.
// The core treats it as a plain get/put collaborator: read current record,
// write updated record.
type Repo interface {
	Upsert(sessionID string, record *Record) error
	Get(sessionID string) (*Record, error)
	Delete(sessionID string) error
}
