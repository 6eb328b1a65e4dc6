package models

import "time"

// CheckInRecord holds one submission per student per calendar day. The
// uniqueness of (student_id, date) is enforced by the index: the handler's
// find-then-create is not atomic on its own.
type CheckInRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	StudentID  uint       `gorm:"not null;uniqueIndex:idx_checkins_student_date" json:"studentId"`
	Date       time.Time  `gorm:"type:date;not null;uniqueIndex:idx_checkins_student_date" json:"date"`
	Status     string     `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	ApprovedBy *uint      `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}
