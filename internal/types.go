package internal

type JobStatus string

const (
	StatusNew    JobStatus = "new"
	StatusPosted JobStatus = "posted"
	StatusSkip   JobStatus = "skip"
)

// JobRecord is the canonical flat job listing. Source-derived fields are
// pointer-typed: nil means the feed carried nothing usable for that field.
type JobRecord struct {
	ID               int64
	JobTitle         *string
	PublicationDate  *string
	DepubDate        *string
	AccountNumber    *string
	AccountDate      *string
	CompanyINN       *string
	CompanyName      *string
	Phone            *string
	Email            *string
	Address          *string
	Conditions       *string
	Responsibilities *string
	Requirements     *string
	Schedule         *string
	Salary           *string
	ContactPerson    *string
	ExtraInfo        *string
	Status           JobStatus
	WallLink         *string
}

// JobGroup is one outbound publish batch. Transient: built by the grouping
// engine, consumed by the composer, never persisted.
type JobGroup struct {
	Key  string
	Jobs []JobRecord
}

type Credential struct {
	ID        int64
	Token     string
	OwnerID   string
	CreatedAt string
}

type RowIssue struct {
	Index  int
	Reason string
}

type GroupResult struct {
	Key    string
	Jobs   int
	Posted bool
	Link   string
	Error  string
}

// BatchResult accumulates per-row and per-group outcomes of one feed run.
// Nothing recorded here aborted the batch; fatal failures surface as an
// error from the pipeline instead.
type BatchResult struct {
	BatchID            string
	Parsed             int
	Normalized         int
	RowIssues          []RowIssue
	InsertedIDs        []int64
	UpdatedIDs         []int64
	SkippedDepublished int
	SkippedStale       int
	Groups             []GroupResult
}
