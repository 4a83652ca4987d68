package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Calendar event kinds
const (
	EventKindDeadline       = "deadline"
	EventKindPlannedService = "planned_service"
)

// CalendarEvent is one entry of the merged calendar feed. Status and color
// are computed server-side; consumers never re-classify.
type CalendarEvent struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Date      string             `json:"date"`
	Color     string             `json:"color"`
	VehicleID primitive.ObjectID `json:"vehicleId"`
	Kind      string             `json:"kind"`
	Status    string             `json:"status"`
}
