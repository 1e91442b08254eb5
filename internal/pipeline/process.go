package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobwall/internal"
	"jobwall/internal/compose"
	"jobwall/internal/config"
	"jobwall/internal/feed"
	"jobwall/internal/grouping"
	"jobwall/internal/storage"
	"jobwall/internal/wall"
)

type Service struct {
	db   *storage.DB
	cfg  config.Config
	wall *wall.Client
}

func NewService(db *storage.DB, cfg config.Config, wallClient *wall.Client) *Service {
	return &Service{db: db, cfg: cfg, wall: wallClient}
}

type RunOptions struct {
	GroupMode string // "title" or "account"
	Publish   bool
	Now       time.Time
}

// ProcessFeed runs one feed buffer through the whole pipeline: decode,
// normalize, admit against persisted state, persist, group, compose,
// publish. Decode, structure and insert-phase failures abort the batch;
// row and group failures accumulate into the result and never abort
// siblings.
func (s *Service) ProcessFeed(ctx context.Context, raw []byte, opts RunOptions) (internal.BatchResult, error) {
	result := internal.BatchResult{BatchID: uuid.NewString()}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	rows, err := feed.DecodeRows(raw)
	if err != nil {
		return result, fmt.Errorf("decode feed: %w", err)
	}
	result.Parsed = len(rows)

	jobs, issues := feed.Normalize(rows, feed.Options{
		StrictPhones: s.cfg.StrictPhones,
		HomeAreaCode: s.cfg.HomeAreaCode,
	})
	result.Normalized = len(jobs)
	result.RowIssues = issues
	for _, issue := range issues {
		fmt.Printf("feed row skipped batch=%s row=%d reason=%q\n", result.BatchID, issue.Index, issue.Reason)
	}

	existing, err := s.db.ListJobs(storage.JobFilter{})
	if err != nil {
		return result, fmt.Errorf("load persisted jobs: %w", err)
	}

	admitted := make([]internal.JobRecord, 0, len(jobs))
	pendingInsert := make([]int, 0, len(jobs))
	for _, job := range jobs {
		decision, storedID := grouping.Admit(job, existing, now)
		switch decision {
		case grouping.RejectDepublished:
			result.SkippedDepublished++
		case grouping.RejectStale:
			result.SkippedStale++
		case grouping.AdmitUpdate:
			job.ID = storedID
			if err := s.db.UpdateJob(storedID, job); err != nil {
				return result, fmt.Errorf("update job %d: %w", storedID, err)
			}
			result.UpdatedIDs = append(result.UpdatedIDs, storedID)
			admitted = append(admitted, job)
		case grouping.AdmitInsert:
			pendingInsert = append(pendingInsert, len(admitted))
			admitted = append(admitted, job)
		}
	}

	if len(pendingInsert) > 0 {
		batch := make([]internal.JobRecord, 0, len(pendingInsert))
		for _, idx := range pendingInsert {
			batch = append(batch, admitted[idx])
		}
		ids, err := s.db.InsertJobs(batch)
		if err != nil {
			return result, fmt.Errorf("insert jobs: %w", err)
		}
		for i, idx := range pendingInsert {
			admitted[idx].ID = ids[i]
		}
		result.InsertedIDs = ids
	}

	var groups []internal.JobGroup
	switch opts.GroupMode {
	case "account":
		groups = grouping.GroupByAccount(admitted)
	default:
		groups = grouping.ClusterByTitle(admitted, s.cfg.TitleThreshold)
	}

	if !opts.Publish || len(admitted) == 0 {
		for _, g := range groups {
			result.Groups = append(result.Groups, internal.GroupResult{Key: g.Key, Jobs: len(g.Jobs)})
		}
		return result, nil
	}

	cred, err := s.db.LatestCredential()
	if err != nil {
		return result, fmt.Errorf("load credential: %w", err)
	}
	if cred == nil {
		return result, fmt.Errorf("no wall credential configured")
	}

	composeOpts := compose.Options{
		HideCompanyName: s.cfg.HideCompanyName,
		HideAddress:     s.cfg.HideAddress,
		HideEmail:       s.cfg.HideEmail,
		IncludeDetails:  s.cfg.IncludeDetails,
		MinSalary:       s.cfg.MinSalary,
		HashtagFooter:   s.cfg.HashtagFooter,
	}

	// Groups publish strictly one at a time; the client limiter keeps the
	// minimum interval between posts.
	for _, group := range groups {
		payload := compose.Compose(group, composeOpts)
		post := s.wall.PostToWall(ctx, *cred, payload)
		gr := internal.GroupResult{
			Key:    group.Key,
			Jobs:   len(group.Jobs),
			Posted: post.OK,
			Link:   post.Link,
			Error:  post.Message,
		}
		if post.OK {
			for _, job := range group.Jobs {
				if err := s.db.MarkJobPosted(job.ID, post.Link); err != nil {
					// The publish already happened; losing the status
					// update must not fail the batch.
					fmt.Printf("post-publish update failed batch=%s id=%d err=%v\n", result.BatchID, job.ID, err)
				}
			}
		} else {
			fmt.Printf("wall post failed batch=%s group=%q err=%s\n", result.BatchID, group.Key, post.Message)
		}
		result.Groups = append(result.Groups, gr)
	}

	return result, nil
}
