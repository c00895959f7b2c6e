package normalize

// Job is the canonical representation of a capture or republish job.
type Job struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind,omitempty"`
	Active       bool     `json:"active"`
	StatusLabel  string   `json:"statusLabel"`
	AccountID    string   `json:"accountId,omitempty"`
	StartedAt    string   `json:"startedAt,omitempty"`
	FinishedAt   string   `json:"finishedAt,omitempty"`
	Attempts     *float64 `json:"attempts,omitempty"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
}

var (
	jobIDKeys          = []string{"id", "_id", "uuid", "jobId", "job_id"}
	jobKindKeys        = []string{"jobType", "job_type", "type", "kind"}
	jobStatusKeys      = []string{"status", "jobStatus", "job_status", "state"}
	jobAccountRelKeys  = []string{"account", "profile"}
	jobAccountIDKeys   = []string{"id", "_id", "uuid"}
	jobAccountFlatKeys = []string{"accountId", "account_id"}
	jobStartedKeys     = []string{"startedAt", "started_at", "startTime", "start_time"}
	jobFinishedKeys    = []string{"finishedAt", "finished_at", "completedAt", "completed_at", "endTime"}
	jobAttemptKeys     = []string{"attempts", "retryCount", "retry_count", "tries"}
	jobErrorRelKeys    = []string{"error", "lastError", "last_error"}
	jobErrorKeys       = []string{"errorMessage", "error_message", "message"}
)

// NormalizeJob converts a raw backend record into a Job, or nil when the
// input is not an object or carries no identity.
func NormalizeJob(raw any) *Job {
	rec, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	id := AsID(Field(rec, jobIDKeys...))
	if id == "" {
		return nil
	}

	active, label := Status(Field(rec, jobStatusKeys...))
	job := &Job{
		ID:           id,
		Kind:         AsString(Field(rec, jobKindKeys...)),
		Active:       active,
		StatusLabel:  label,
		StartedAt:    ISOTime(Field(rec, jobStartedKeys...)),
		FinishedAt:   ISOTime(Field(rec, jobFinishedKeys...)),
		ErrorMessage: AsString(NestedField(rec, jobErrorRelKeys, jobErrorKeys)),
	}
	// The generic nested fallback would resolve the job's own id as its
	// account id, so the relation lookup is explicit here.
	if rel, ok := Field(rec, jobAccountRelKeys...).(map[string]any); ok {
		job.AccountID = AsID(Field(rel, jobAccountIDKeys...))
	}
	if job.AccountID == "" {
		job.AccountID = AsID(Field(rec, jobAccountFlatKeys...))
	}
	if n, ok := AsNumber(Field(rec, jobAttemptKeys...)); ok {
		job.Attempts = &n
	}
	return job
}
