package models

import (
	"strings"
	"time"
)

type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimApproved ClaimStatus = "APPROVED"
	ClaimRejected ClaimStatus = "REJECTED"
)

// Is compares statuses case-insensitively.
func (s ClaimStatus) Is(other string) bool {
	return strings.EqualFold(string(s), other)
}

type Claim struct {
	ID         int64
	UserID     int64
	PurchaseID int64
	Status     ClaimStatus
	UploadedAt time.Time
	UserName   string
	UserEmail  string
}

type Notification struct {
	ID        int64
	UserID    int64
	ClaimID   int64
	Message   string
	Read      bool
	CreatedAt time.Time
}

// Document is a file attached to a claim. FileURL is the server-side path,
// e.g. /uploads/1718000000000_invoice.pdf.
type Document struct {
	ID         int64
	UserID     int64
	ClaimID    int64
	Type       string
	FileURL    string
	UploadedAt time.Time
	Verified   bool
}

// FileName is the last element of FileURL, the name the download endpoint
// expects.
func (d Document) FileName() string {
	if i := strings.LastIndex(d.FileURL, "/"); i >= 0 {
		return d.FileURL[i+1:]
	}
	return d.FileURL
}
