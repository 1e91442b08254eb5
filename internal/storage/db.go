package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"jobwall/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  jobTitle TEXT,
  publicationDate TEXT,
  depubDate TEXT,
  accountNumber TEXT,
  accountDate TEXT,
  companyInn TEXT,
  companyName TEXT,
  phone TEXT,
  email TEXT,
  address TEXT,
  conditions TEXT,
  responsibilities TEXT,
  requirements TEXT,
  schedule TEXT,
  salary TEXT,
  contactPerson TEXT,
  extraInfo TEXT,
  status TEXT NOT NULL DEFAULT 'new',
  wallLink TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_jobs_title ON jobs(jobTitle);
CREATE INDEX IF NOT EXISTS idx_jobs_account ON jobs(accountNumber);
CREATE INDEX IF NOT EXISTS idx_jobs_inn ON jobs(companyInn);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(status);

CREATE TABLE IF NOT EXISTS credentials (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  token TEXT NOT NULL,
  ownerId TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

const jobColumns = `id, jobTitle, publicationDate, depubDate, accountNumber, accountDate,
companyInn, companyName, phone, email, address,
conditions, responsibilities, requirements, schedule, salary, contactPerson, extraInfo,
status, wallLink`

// InsertJobs writes records in one transaction and returns the assigned
// identifiers in input order.
func (d *DB) InsertJobs(jobs []internal.JobRecord) ([]int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO jobs (
  jobTitle, publicationDate, depubDate, accountNumber, accountDate,
  companyInn, companyName, phone, email, address,
  conditions, responsibilities, requirements, schedule, salary, contactPerson, extraInfo,
  status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(jobs))
	for _, j := range jobs {
		status := j.Status
		if status == "" {
			status = internal.StatusNew
		}
		res, err := stmt.Exec(
			j.JobTitle, j.PublicationDate, j.DepubDate, j.AccountNumber, j.AccountDate,
			j.CompanyINN, j.CompanyName, j.Phone, j.Email, j.Address,
			j.Conditions, j.Responsibilities, j.Requirements, j.Schedule, j.Salary, j.ContactPerson, j.ExtraInfo,
			string(status),
		)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

var conflictColumns = map[string]func(internal.JobRecord) *string{
	"accountNumber": func(j internal.JobRecord) *string { return j.AccountNumber },
	"jobTitle":      func(j internal.JobRecord) *string { return j.JobTitle },
	"companyInn":    func(j internal.JobRecord) *string { return j.CompanyINN },
}

// UpsertJobsBy inserts or updates records keyed by the caller-specified
// conflict column pair. Records missing either key column fall back to a
// plain insert.
func (d *DB) UpsertJobsBy(jobs []internal.JobRecord, keyA, keyB string) (inserted, updated []int64, err error) {
	getA, okA := conflictColumns[keyA]
	getB, okB := conflictColumns[keyB]
	if !okA || !okB || keyA == keyB {
		return nil, nil, fmt.Errorf("unsupported conflict pair: %s, %s", keyA, keyB)
	}

	tx, err := d.conn.Begin()
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, j := range jobs {
		a, b := getA(j), getB(j)
		if a == nil || b == nil {
			id, err := insertJobTx(tx, j)
			if err != nil {
				return nil, nil, err
			}
			inserted = append(inserted, id)
			continue
		}

		var id int64
		// Column names come from the whitelist above.
		query := `SELECT id FROM jobs WHERE ` + keyA + ` = ? AND ` + keyB + ` = ?`
		scanErr := tx.QueryRow(query, *a, *b).Scan(&id)
		if errors.Is(scanErr, sql.ErrNoRows) {
			newID, err := insertJobTx(tx, j)
			if err != nil {
				return nil, nil, err
			}
			inserted = append(inserted, newID)
			continue
		}
		if scanErr != nil {
			return nil, nil, scanErr
		}
		if err := updateJobTx(tx, id, j); err != nil {
			return nil, nil, err
		}
		updated = append(updated, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return inserted, updated, nil
}

func insertJobTx(tx *sql.Tx, j internal.JobRecord) (int64, error) {
	status := j.Status
	if status == "" {
		status = internal.StatusNew
	}
	res, err := tx.Exec(`
INSERT INTO jobs (
  jobTitle, publicationDate, depubDate, accountNumber, accountDate,
  companyInn, companyName, phone, email, address,
  conditions, responsibilities, requirements, schedule, salary, contactPerson, extraInfo,
  status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		j.JobTitle, j.PublicationDate, j.DepubDate, j.AccountNumber, j.AccountDate,
		j.CompanyINN, j.CompanyName, j.Phone, j.Email, j.Address,
		j.Conditions, j.Responsibilities, j.Requirements, j.Schedule, j.Salary, j.ContactPerson, j.ExtraInfo,
		string(status),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func updateJobTx(tx *sql.Tx, id int64, j internal.JobRecord) error {
	_, err := tx.Exec(`
UPDATE jobs SET
  jobTitle = ?, publicationDate = ?, depubDate = ?, accountNumber = ?, accountDate = ?,
  companyInn = ?, companyName = ?, phone = ?, email = ?, address = ?,
  conditions = ?, responsibilities = ?, requirements = ?, schedule = ?, salary = ?,
  contactPerson = ?, extraInfo = ?, updatedAt = CURRENT_TIMESTAMP
WHERE id = ?
`,
		j.JobTitle, j.PublicationDate, j.DepubDate, j.AccountNumber, j.AccountDate,
		j.CompanyINN, j.CompanyName, j.Phone, j.Email, j.Address,
		j.Conditions, j.Responsibilities, j.Requirements, j.Schedule, j.Salary,
		j.ContactPerson, j.ExtraInfo,
		id,
	)
	return err
}

// UpdateJob rewrites a stored record's source-derived fields by
// identifier.
func (d *DB) UpdateJob(id int64, j internal.JobRecord) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := updateJobTx(tx, id, j); err != nil {
		return err
	}
	return tx.Commit()
}

func (d *DB) MarkJobPosted(id int64, link string) error {
	_, err := d.conn.Exec(
		`UPDATE jobs SET status = ?, wallLink = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`,
		string(internal.StatusPosted), link, id,
	)
	return err
}

func (d *DB) DeleteJobs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.TrimRight(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := d.conn.Exec(`DELETE FROM jobs WHERE id IN (`+placeholders+`)`, args...)
	return err
}

// DeleteJobsByDateRange removes records whose publication date falls
// inside the inclusive range.
func (d *DB) DeleteJobsByDateRange(from, to string) (int64, error) {
	res, err := d.conn.Exec(
		`DELETE FROM jobs WHERE publicationDate IS NOT NULL AND publicationDate >= ? AND publicationDate <= ?`,
		from, to,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type JobFilter struct {
	Status   string
	DateFrom string
	DateTo   string
	Search   string
	SortBy   string
	SortDesc bool
	Limit    int
	Offset   int
}

var sortColumns = map[string]string{
	"":                "id",
	"id":              "id",
	"jobTitle":        "jobTitle",
	"publicationDate": "publicationDate",
	"accountDate":     "accountDate",
	"companyName":     "companyName",
}

// ListJobs reads records filtered by status, publication date range and a
// free-text search across title, company and address.
func (d *DB) ListJobs(filter JobFilter) ([]internal.JobRecord, error) {
	where := []string{"1=1"}
	args := []any{}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.DateFrom != "" {
		where = append(where, "publicationDate >= ?")
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		where = append(where, "publicationDate <= ?")
		args = append(args, filter.DateTo)
	}
	if filter.Search != "" {
		where = append(where, "(jobTitle LIKE ? OR companyName LIKE ? OR address LIKE ?)")
		needle := "%" + filter.Search + "%"
		args = append(args, needle, needle, needle)
	}

	sortBy, ok := sortColumns[filter.SortBy]
	if !ok {
		return nil, fmt.Errorf("unsupported sort column: %s", filter.SortBy)
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ` + sortBy + ` ` + direction
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.JobRecord
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (d *DB) GetJob(id int64) (*internal.JobRecord, error) {
	row := d.conn.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (internal.JobRecord, error) {
	var j internal.JobRecord
	var status string
	err := r.Scan(
		&j.ID, &j.JobTitle, &j.PublicationDate, &j.DepubDate, &j.AccountNumber, &j.AccountDate,
		&j.CompanyINN, &j.CompanyName, &j.Phone, &j.Email, &j.Address,
		&j.Conditions, &j.Responsibilities, &j.Requirements, &j.Schedule, &j.Salary, &j.ContactPerson, &j.ExtraInfo,
		&status, &j.WallLink,
	)
	if err != nil {
		return internal.JobRecord{}, err
	}
	j.Status = internal.JobStatus(status)
	return j, nil
}

func (d *DB) AddCredential(token, ownerID string) (int64, error) {
	res, err := d.conn.Exec(`INSERT INTO credentials (token, ownerId) VALUES (?, ?)`, token, ownerID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LatestCredential returns the most recently created credential pair, or
// nil when none is configured.
func (d *DB) LatestCredential() (*internal.Credential, error) {
	var c internal.Credential
	err := d.conn.QueryRow(`
SELECT id, token, ownerId, createdAt FROM credentials ORDER BY id DESC LIMIT 1
`).Scan(&c.ID, &c.Token, &c.OwnerID, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
