package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"jobwall/internal/config"
	"jobwall/internal/pipeline"
	"jobwall/internal/storage"
	"jobwall/internal/wall"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "feed:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "feed XML file (windows-1251)")
		groupBy := fs.String("group-by", cfg.GroupMode, "title|account")
		post := fs.Bool("post", false, "publish groups to the wall")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		raw, err := os.ReadFile(*input)
		must(err)

		svc := pipeline.NewService(db, cfg, wall.NewClient(cfg))
		result, err := svc.ProcessFeed(context.Background(), raw, pipeline.RunOptions{
			GroupMode: *groupBy,
			Publish:   *post,
		})
		must(err)
		posted := 0
		for _, g := range result.Groups {
			if g.Posted {
				posted++
			}
		}
		fmt.Printf("feed processed batch=%s parsed=%d normalized=%d inserted=%d updated=%d skipped_depub=%d skipped_stale=%d groups=%d posted=%d\n",
			result.BatchID, result.Parsed, result.Normalized,
			len(result.InsertedIDs), len(result.UpdatedIDs),
			result.SkippedDepublished, result.SkippedStale,
			len(result.Groups), posted)
	case "jobs:list":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		status := fs.String("status", "", "new|posted|skip")
		search := fs.String("search", "", "free-text across title/company/address")
		limit := fs.Int("limit", 50, "max rows")
		_ = fs.Parse(os.Args[2:])
		jobs, err := db.ListJobs(storage.JobFilter{
			Status: *status,
			Search: *search,
			SortBy: "id",
			Limit:  *limit,
		})
		must(err)
		for _, j := range jobs {
			fmt.Printf("%d\t%s\t%s\t%s\n", j.ID, deref(j.JobTitle), deref(j.CompanyName), string(j.Status))
		}
	case "jobs:export":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output xlsx path")
		status := fs.String("status", "", "optional status filter")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		jobs, err := db.ListJobs(storage.JobFilter{Status: *status, SortBy: "id"})
		must(err)
		must(pipeline.ExportJobsToXLSX(jobs, *out))
		fmt.Printf("exported %d jobs to %s\n", len(jobs), *out)
	case "jobs:delete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		ids := fs.String("ids", "", "comma-separated record ids")
		from := fs.String("from", "", "publication date range start (YYYY-MM-DD)")
		to := fs.String("to", "", "publication date range end (YYYY-MM-DD)")
		_ = fs.Parse(os.Args[2:])
		switch {
		case strings.TrimSpace(*ids) != "":
			parsed, err := parseIDs(*ids)
			must(err)
			must(db.DeleteJobs(parsed))
			fmt.Printf("deleted %d jobs\n", len(parsed))
		case *from != "" && *to != "":
			n, err := db.DeleteJobsByDateRange(*from, *to)
			must(err)
			fmt.Printf("deleted %d jobs in range %s..%s\n", n, *from, *to)
		default:
			must(fmt.Errorf("--ids or --from/--to are required"))
		}
	case "cred:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		token := fs.String("token", "", "wall API access token")
		owner := fs.String("owner", "", "wall owner id")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*token) == "" || strings.TrimSpace(*owner) == "" {
			must(fmt.Errorf("--token and --owner are required"))
		}
		id, err := db.AddCredential(*token, *owner)
		must(err)
		fmt.Printf("credential added id=%d owner=%s\n", id, *owner)
	default:
		usage()
		os.Exit(1)
	}
}

func parseIDs(input string) ([]int64, error) {
	parts := strings.Split(input, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q", p)
		}
		out = append(out, id)
	}
	return out, nil
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func usage() {
	fmt.Println("usage: jobwall <command>")
	fmt.Println("commands:")
	fmt.Println("  feed:process --input=feed.xml [--group-by=title|account] [--post]")
	fmt.Println("  jobs:list [--status=new|posted] [--search=...] [--limit=50]")
	fmt.Println("  jobs:export --out=./out/jobs.xlsx [--status=...]")
	fmt.Println("  jobs:delete --ids=1,2 | --from=YYYY-MM-DD --to=YYYY-MM-DD")
	fmt.Println("  cred:add --token=... --owner=-12345")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
