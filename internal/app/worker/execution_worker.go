package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"leetlab/internal/domain/model"
	"leetlab/internal/domain/repository"
	"leetlab/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

// ExecutionWorker drains the submission queue and hands each submission to
// the external judge over HTTP. Results come back asynchronously through the
// execution webhook; no judging happens in this process.
type ExecutionWorker struct {
	rdb            *redis.Client
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	httpClient     *http.Client
}

func NewExecutionWorker(rdb *redis.Client, subRepo repository.SubmissionRepository, probRepo repository.ProblemRepository) *ExecutionWorker {
	return &ExecutionWorker{
		rdb:            rdb,
		submissionRepo: subRepo,
		problemRepo:    probRepo,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}
}

// ExecutorRequest is the payload sent to the external judge.
type ExecutorRequest struct {
	SubmissionID string          `json:"submission_id"`
	Language     string          `json:"language"`
	SourceCode   json.RawMessage `json:"source_code"`
	Stdin        *string         `json:"stdin,omitempty"`
	Testcases    json.RawMessage `json:"testcases"`
	WebhookURL   string          `json:"webhook_url"`
}

func (w *ExecutionWorker) Start(ctx context.Context) {
	log.Println("Execution worker started, listening to queue:", config.AppConfig.ExecutionQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Execution worker stopping...")
			return
		default:
			popped, err := w.rdb.BRPop(ctx, 5*time.Second, config.AppConfig.ExecutionQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) {
					continue // timeout, nothing queued
				}
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", config.AppConfig.ExecutionQueueName, err)
				time.Sleep(5 * time.Second)
				continue
			}
			// BRPop returns [queueName, value].
			if len(popped) < 2 {
				continue
			}
			if err := w.dispatch(ctx, popped[1]); err != nil {
				log.Printf("ERROR: Failed to dispatch submission %s: %v", popped[1], err)
			}
		}
	}
}

func (w *ExecutionWorker) dispatch(ctx context.Context, submissionID string) error {
	submission, err := w.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return fmt.Errorf("load submission: %w", err)
	}
	problem, err := w.problemRepo.FindProblemByID(ctx, submission.ProblemID)
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}

	submission.Status = model.StatusProcessing
	if err := w.submissionRepo.UpdateSubmissionResult(ctx, nil, submission); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	payload := ExecutorRequest{
		SubmissionID: submission.ID,
		Language:     submission.Language,
		SourceCode:   submission.SourceCode,
		Stdin:        submission.Stdin,
		Testcases:    problem.Testcases,
		WebhookURL:   config.AppConfig.ExecutorWebhookURL,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal executor payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.ExecutorURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build executor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send to executor: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("executor returned status %d", resp.StatusCode)
	}
	log.Printf("Submission %s sent to executor.", submission.ID)
	return nil
}
