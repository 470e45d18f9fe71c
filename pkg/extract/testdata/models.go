// Package testdata contains test types for cramgen extraction.
package testdata

// Status represents the status of a user.
type Status int

const (
	StatusUnknown Status = iota
	StatusActive
	StatusInactive
)

// Priority represents a priority level using uint8.
type Priority uint8

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

// User represents a user in the system.
type User struct {
	ID       int64             `cram:"1,required"`
	Name     string            `cram:"2"`
	Email    string            `cram:"3"`
	Status   Status            `cram:"4"`
	Age      int32             `cram:"5,omitempty"`
	Tags     []string          `cram:"6"`
	Metadata map[string]string `cram:"7"`
	Address  *Address          `cram:"8"`
	Internal string            `cram:"-"` // Should be skipped
}

// Address represents a physical address.
type Address struct {
	Street  string `cram:"1"`
	City    string `cram:"2"`
	Country string `cram:"3"`
	ZipCode string `cram:"4"`
}

// Admin is a user with admin privileges.
type Admin struct {
	Name        string   `cram:"1"`
	Permissions []string `cram:"2"`
}

// privateType is an unexported type that should be excluded by default.
type privateType struct {
	Value int
}
