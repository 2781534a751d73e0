package model

import "time"

type PatientFeedback struct {
	ID           int64     `db:"feedback_id" json:"id"`
	PatientID    int64     `db:"patient_id" json:"patient_id"`
	Rating       int       `db:"rating" json:"rating"`
	Comments     string    `db:"comments" json:"comments"`
	FeedbackDate time.Time `db:"feedback_date" json:"feedback_date"`
}

type CreateFeedbackRequest struct {
	PatientID    int64      `json:"patient_id" binding:"required"`
	Rating       int        `json:"rating" binding:"required,min=1,max=5"`
	Comments     string     `json:"comments"`
	FeedbackDate *time.Time `json:"feedback_date"`
}

type UpdateFeedbackRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments"`
}
