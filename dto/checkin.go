package dto

import "time"

type CheckInResponse struct {
	ID         uint       `json:"id"`
	StudentID  uint       `json:"studentId"`
	Date       string     `json:"date"`
	Status     string     `json:"status"`
	ApprovedBy *uint      `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CheckInStatusRequest aprova ou rejeita um check-in pendente.
type CheckInStatusRequest struct {
	CheckInID uint   `json:"checkInId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=approved rejected"`
}

// PendingCheckIn é a linha da fila de aprovação do instrutor.
type PendingCheckIn struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"studentId"`
	StudentName string    `json:"studentName"`
	Belt        string    `json:"belt"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}
