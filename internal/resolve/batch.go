// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"
	"time"

	"github.com/pdiddy/paperfetch/pkg/types"
)

// Downloader fetches the PDF for a finalized resolution, recording the
// outcome (Downloaded, PDFPath, DirectDownload, Err) on the result.
type Downloader interface {
	Download(ctx context.Context, result *types.ResolutionResult) error
}

// BatchSummary counts the outcomes of a batch run.
type BatchSummary struct {
	Total      int
	Resolved   int
	Downloaded int
	Failed     int
}

// HasFailures reports whether any papers went unresolved or failed to
// download.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// ResolveBatch resolves papers one at a time, in order, downloading each
// accepted match when dl is non-nil. A fixed pause separates consecutive
// papers: the repository and PDF hosts are rate-limited services, and
// parallel fan-out would risk throttling. Per-paper failures are recorded
// and do not abort the batch.
func (r *Resolver) ResolveBatch(ctx context.Context, papers []types.RequestedPaper, dl Downloader) ([]types.ResolutionResult, BatchSummary) {
	var results []types.ResolutionResult
	var summary BatchSummary

	for i, paper := range papers {
		if i > 0 {
			time.Sleep(r.cfg.PaperDelay)
		}
		fmt.Fprintf(r.w, "\nProcessing paper %d/%d: %s\n", i+1, len(papers), paper.Title)

		res := r.Resolve(ctx, paper)

		if dl != nil {
			if err := dl.Download(ctx, &res); err != nil {
				fmt.Fprintf(r.w, "warning: download failed: %v\n", err)
				if res.Err == "" {
					res.Err = fmt.Sprintf("download failed: %v", err)
				}
			}
		}

		summary.Total++
		if res.Resolved() {
			summary.Resolved++
		}
		if res.Downloaded {
			summary.Downloaded++
		}
		if res.Err != "" {
			summary.Failed++
		}

		results = append(results, res)
	}

	fmt.Fprintf(r.w, "\nBatch summary: %d resolved, %d downloaded, %d failed (total: %d)\n",
		summary.Resolved, summary.Downloaded, summary.Failed, summary.Total)
	return results, summary
}
