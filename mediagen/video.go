package mediagen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitVideo submits a video generation job and returns the job the remote
// service issued. Submission failures are fatal; there is no retry here.
func (c *Client) SubmitVideo(ctx context.Context, prompt string) (*VideoJob, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewError(ErrUpstream, "rate limiter wait interrupted").WithCause(err)
	}

	body := videoSubmitRequest{Prompt: prompt, Model: c.cfg.VideoModel}
	payload, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint("/v1/videos/generations"), bytes.NewReader(payload))
	if err != nil {
		return nil, NewError(ErrUpstream, "build video submit request").WithCause(err)
	}
	c.buildHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewError(ErrUpstream, "video submit request failed").WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(ErrUpstream, "read video submit response").WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapStatusError(resp.StatusCode, respBody)
	}

	var jResp videoJobResponse
	if err := json.Unmarshal(respBody, &jResp); err != nil {
		return nil, NewError(ErrUpstream, "video submit response malformed").WithCause(err)
	}
	if jResp.ID == "" {
		return nil, NewError(ErrEmptyResult, "video submit response has no job id")
	}

	c.logger.Info("video job submitted",
		zap.String("job_id", jResp.ID),
		zap.String("status", jResp.Status))

	return &VideoJob{ID: jResp.ID, Status: jResp.Status, URL: jResp.URL}, nil
}

// PollVideo issues a single status query for the given job.
func (c *Client) PollVideo(ctx context.Context, jobID string) (*VideoJob, error) {
	if c.pollObserver != nil {
		c.pollObserver()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint("/v1/videos/generations/"+jobID), nil)
	if err != nil {
		return nil, NewError(ErrUpstream, "build video poll request").WithCause(err)
	}
	c.buildHeaders(httpReq)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewError(ErrUpstream, "video poll request failed").WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewError(ErrUpstream, "read video poll response").WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, mapStatusError(resp.StatusCode, respBody)
	}

	var jResp videoJobResponse
	if err := json.Unmarshal(respBody, &jResp); err != nil {
		return nil, NewError(ErrUpstream, "video poll response malformed").WithCause(err)
	}

	return &VideoJob{ID: jobID, Status: jResp.Status, URL: jResp.URL}, nil
}

// AwaitVideo polls the job at the configured fixed interval until it reaches
// a terminal state or the attempt ceiling is exhausted. A failed status
// query is transient: it is logged, counts as an attempt, and polling
// continues. Cancelling ctx aborts the wait between polls.
//
// Terminal outcomes:
//   - status completed with a url: the job is returned, no further requests;
//   - status completed without a url: ErrEmptyResult;
//   - status failed: ErrGenerationFailed;
//   - ceiling exhausted: ErrTimeout.
func (c *Client) AwaitVideo(ctx context.Context, jobID string) (*VideoJob, error) {
	attempts := c.cfg.MaxPollAttempts
	if attempts <= 0 {
		attempts = 30
	}
	interval := c.cfg.PollInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}

	for i := 0; i < attempts; i++ {
		if err := c.sleep(ctx, interval); err != nil {
			return nil, NewError(ErrUpstream, "video poll cancelled").WithCause(err)
		}

		job, err := c.PollVideo(ctx, jobID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, NewError(ErrUpstream, "video poll cancelled").WithCause(ctx.Err())
			}
			c.logger.Warn("video status check failed, continuing to poll",
				zap.String("job_id", jobID),
				zap.Int("attempt", i+1),
				zap.Error(err))
			continue
		}

		switch job.Status {
		case StatusCompleted:
			if job.URL == "" {
				return nil, NewError(ErrEmptyResult, "video job completed without a result url")
			}
			c.logger.Info("video job completed",
				zap.String("job_id", jobID),
				zap.Int("polls", i+1))
			return job, nil
		case StatusFailed:
			return nil, NewError(ErrGenerationFailed,
				fmt.Sprintf("video job %s failed", jobID))
		}
		// submitted, polling: keep waiting.
	}

	return nil, NewError(ErrTimeout,
		fmt.Sprintf("video job %s did not finish within %d polls", jobID, attempts))
}

// Download fetches the job's result URL and writes it to the cache
// directory, creating the directory if absent. The filename combines a
// timestamp with a short random suffix to keep near-simultaneous downloads
// from colliding. Returns the local path.
func (c *Client) Download(ctx context.Context, job *VideoJob) (string, error) {
	if job == nil || job.URL == "" {
		return "", NewError(ErrDownload, "no result url to download")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, job.URL, nil)
	if err != nil {
		return "", NewError(ErrDownload, "build download request").WithCause(err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", NewError(ErrDownload, "download request failed").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", NewError(ErrDownload,
			fmt.Sprintf("download returned status %d", resp.StatusCode)).WithHTTPStatus(resp.StatusCode)
	}

	if err := os.MkdirAll(c.cfg.CacheDir, 0o755); err != nil {
		return "", NewError(ErrDownload, "create cache directory").WithCause(err)
	}

	name := fmt.Sprintf("video_%d_%s.mp4", time.Now().Unix(), uuid.NewString()[:8])
	path := filepath.Join(c.cfg.CacheDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", NewError(ErrDownload, "create video file").WithCause(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(path)
		return "", NewError(ErrDownload, "write video file").WithCause(err)
	}

	c.logger.Info("video downloaded",
		zap.String("job_id", job.ID),
		zap.String("path", path))

	return path, nil
}
