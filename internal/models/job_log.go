package models

import (
	"time"
)

// JobLog represents the job_logs table, the audit trail of scheduled job runs
type JobLog struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	DocumentID string    `json:"document_id" gorm:"column:document_id"`
	JobCode    string    `json:"job_code" gorm:"column:job_code"`
	Message    string    `json:"message" gorm:"column:message"`
	Status     string    `json:"status" gorm:"column:status"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the insert table name for JobLog
func (JobLog) TableName() string {
	return "job_logs"
}
