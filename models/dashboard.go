package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UrgentDeadline is a current deadline joined with its vehicle for the
// dashboard alert panel, re-classified at read time
type UrgentDeadline struct {
	DeadlineID          primitive.ObjectID `json:"deadlineId"`
	VehicleID           primitive.ObjectID `json:"vehicleId"`
	VehicleRegistration string             `json:"vehicleRegistration"`
	VehicleType         string             `json:"vehicleType"`
	Type                string             `json:"type"`
	ExpiresAt           string             `json:"expiresAt"`
	Status              string             `json:"status"`
}

// AdminDashboard is the admin landing page summary
type AdminDashboard struct {
	TruckCount      int64            `json:"truckCount"`
	TrailerCount    int64            `json:"trailerCount"`
	DriverCount     int64            `json:"driverCount"`
	UrgentDeadlines []UrgentDeadline `json:"urgentDeadlines"`
}

// DeadlinePanelEntry is one row of the per-vehicle deadline panel. Set is
// false when the deadline type is required but no operation was ever
// recorded, so callers can tell "not configured" from "far in the future".
type DeadlinePanelEntry struct {
	Type      string    `json:"type"`
	Set       bool      `json:"set"`
	ExpiresAt string    `json:"expiresAt,omitempty"`
	Status    string    `json:"status,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// DriverVehicle is one of the caller's currently assigned vehicles on the
// driver dashboard
type DriverVehicle struct {
	AssignmentID       primitive.ObjectID   `json:"assignmentId"`
	VehicleID          primitive.ObjectID   `json:"vehicleId"`
	RegistrationNumber string               `json:"registrationNumber"`
	Brand              string               `json:"brand"`
	Model              string               `json:"model"`
	Type               string               `json:"type"`
	Deadlines          []DeadlinePanelEntry `json:"deadlines"`
}

// DriverDashboard is the driver landing page summary
type DriverDashboard struct {
	Vehicles  []DriverVehicle  `json:"vehicles"`
	Documents []DriverDocument `json:"documents"`
}

// VehicleDetail is the full vehicle page payload
type VehicleDetail struct {
	Vehicle           Vehicle               `json:"vehicle"`
	Deadlines         []DeadlinePanelEntry  `json:"deadlines"`
	History           []DeadlineOperation   `json:"history"`
	Assignments       []VehicleAssignment   `json:"assignments"`
	CurrentAssignment *AssignmentWithDriver `json:"currentAssignment"`
}
