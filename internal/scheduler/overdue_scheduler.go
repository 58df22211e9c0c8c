package scheduler

import (
	"fmt"
	"time"

	"pms-be-svc/internal/models"
	"pms-be-svc/internal/repository"
	"pms-be-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// OverdueScheduler runs the periodic overdue-payment scan. The scan is
// read-only: overdue is derived from due dates at read time, so the job only
// counts and records, it never rewrites payment rows.
type OverdueScheduler struct {
	paymentRepo    repository.PaymentRepository
	jobLogRepo     repository.JobLogRepository
	logger         *logger.Logger
	cron           *cron.Cron
	cronExpression string
}

// NewOverdueScheduler creates a new overdue-scan scheduler
func NewOverdueScheduler(paymentRepo repository.PaymentRepository, jobLogRepo repository.JobLogRepository, logger *logger.Logger, cronExpression string) *OverdueScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &OverdueScheduler{
		paymentRepo:    paymentRepo,
		jobLogRepo:     jobLogRepo,
		logger:         logger,
		cron:           c,
		cronExpression: cronExpression,
	}
}

// Start initializes and starts all scheduled jobs
func (s *OverdueScheduler) Start() error {
	s.logger.Info("Starting overdue scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling overdue payment scan")
	_, err := s.cron.AddFunc(s.cronExpression, s.scanOverduePayments)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue payment scan: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Overdue scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *OverdueScheduler) Stop() {
	s.logger.Info("Stopping overdue scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Overdue scheduler stopped successfully")
}

// scanOverduePayments is the scheduled job that counts pending payments past
// their due date and records the result in the job log
func (s *OverdueScheduler) scanOverduePayments() {
	jobCode := "OVERDUE_PAYMENT_SCAN"
	now := time.Now()
	docID := uuid.New().String()

	s.logJob(jobCode, docID, "Starting overdue payment scan", "START")
	s.logger.Info("Starting overdue payment scan...")

	count, totalAmount, err := s.paymentRepo.CountOverdue(now)
	if err != nil {
		s.logJob(jobCode, docID, fmt.Sprintf("Overdue payment scan failed: %v", err), "FAILED")
		s.logger.WithError(err).Error("Overdue payment scan failed")
		return
	}

	successMessage := fmt.Sprintf("Overdue payment scan found %d overdue payments totaling %d", count, totalAmount)
	s.logJob(jobCode, docID, successMessage, "SUCCESS")

	s.logger.WithFields(map[string]interface{}{
		"overdue_count":  count,
		"overdue_amount": totalAmount,
	}).Info("Overdue payment scan completed")
}

// logJob creates a new audit entry in the job log table
func (s *OverdueScheduler) logJob(jobCode, documentID, message, status string) {
	entry := &models.JobLog{
		DocumentID: documentID,
		JobCode:    jobCode,
		Message:    message,
		Status:     status,
	}

	if err := s.jobLogRepo.CreateJobLog(entry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create job log entry")
	}
}
