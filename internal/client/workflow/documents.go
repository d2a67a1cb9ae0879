package workflow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

const (
	documentTTL = 3 * time.Second

	// MaxDocumentSize matches the server's default multipart limit.
	MaxDocumentSize = 1 << 20
)

var documentTypePattern = regexp.MustCompile(`^[A-Za-z0-9 _\-]{1,32}$`)

var ErrDocumentNotListed = errors.New("document has no stored file")

// DocumentForm is one file to attach to a claim.
type DocumentForm struct {
	ClaimID  int64
	Type     string
	FileName string
	Content  []byte
}

func (f DocumentForm) Validate() error {
	var v checker
	v.check(f.ClaimID > 0, "claimId", "is required")
	v.required(f.Type, "documentType")
	v.check(documentTypePattern.MatchString(strings.TrimSpace(f.Type)), "documentType",
		"may only hold letters, digits, spaces, _ and - (at most 32)")
	checkFile(&v, f.FileName, f.Content)
	return v.err()
}

func checkFile(v *checker, name string, content []byte) {
	v.required(name, "file")
	v.check(len(content) > 0, "file", "is empty")
	v.check(len(content) <= MaxDocumentSize, "file", fmt.Sprintf("must be at most %d bytes", MaxDocumentSize))
}

// ClaimDocuments manages the files behind claims. It shows the documents of
// one claim, or every document of the user when no claim is selected.
type ClaimDocuments struct {
	screen
	api     DocumentAPI
	session Session
	claimID int64
	docs    []models.Document
}

func NewClaimDocuments(api DocumentAPI, s Session) *ClaimDocuments {
	return &ClaimDocuments{api: api, session: s}
}

func (d *ClaimDocuments) Documents() []models.Document { return d.docs }

// ClaimID is the claim the list is scoped to, 0 for all of the user's.
func (d *ClaimDocuments) ClaimID() int64 { return d.claimID }

func (d *ClaimDocuments) Load(ctx context.Context, claimID int64) error {
	user, err := currentUser(d.session)
	if err != nil {
		return d.failWith(err, msgNotAuthenticated)
	}

	d.loading = true
	var docs []models.Document
	if claimID > 0 {
		docs, err = d.api.ClaimDocuments(ctx, claimID)
	} else {
		docs, err = d.api.UserDocuments(ctx, user.ID)
	}
	d.loading = false
	if err != nil {
		return d.failWith(err, "Failed to load documents.")
	}
	d.claimID, d.docs = claimID, docs
	return nil
}

// Upload validates f, sends it and adds the stored record to the list when
// it belongs to the current scope.
func (d *ClaimDocuments) Upload(ctx context.Context, f DocumentForm) error {
	user, err := currentUser(d.session)
	if err != nil {
		return d.failWith(err, msgNotAuthenticated)
	}
	if err := f.Validate(); err != nil {
		d.failFor(err.Error(), documentTTL)
		return err
	}

	d.loading = true
	doc, err := d.api.UploadDocument(ctx, client.DocumentUpload{
		UserID:   user.ID,
		ClaimID:  f.ClaimID,
		Type:     strings.TrimSpace(f.Type),
		FileName: f.FileName,
		Content:  f.Content,
	})
	d.loading = false
	if err != nil {
		d.failFor(describe(err, "Failed to upload document."), documentTTL)
		return err
	}

	if doc.ClaimID == 0 {
		doc.ClaimID = f.ClaimID
	}
	if d.claimID == 0 || d.claimID == doc.ClaimID {
		docs := make([]models.Document, 0, len(d.docs)+1)
		d.docs = append(append(docs, d.docs...), doc)
	}
	d.succeed("Document uploaded successfully.", documentTTL)
	return nil
}

// Replace swaps the file behind document id.
func (d *ClaimDocuments) Replace(ctx context.Context, id int64, fileName string, content []byte) error {
	var v checker
	checkFile(&v, fileName, content)
	if err := v.err(); err != nil {
		d.failFor(err.Error(), documentTTL)
		return err
	}

	d.loading = true
	doc, err := d.api.ReplaceDocument(ctx, id, fileName, content)
	d.loading = false
	if err != nil {
		d.failFor(describe(err, "Failed to replace document."), documentTTL)
		return err
	}
	d.patch(id, doc)
	d.succeed("Document replaced successfully.", documentTTL)
	return nil
}

func (d *ClaimDocuments) Delete(ctx context.Context, id int64) error {
	if err := d.api.DeleteDocument(ctx, id); err != nil {
		d.failFor(describe(err, "Failed to delete document."), documentTTL)
		return err
	}
	kept := make([]models.Document, 0, len(d.docs))
	for _, doc := range d.docs {
		if doc.ID != id {
			kept = append(kept, doc)
		}
	}
	d.docs = kept
	d.succeed("Document deleted successfully.", documentTTL)
	return nil
}

// Verify marks document id as checked and patches the local record.
func (d *ClaimDocuments) Verify(ctx context.Context, id int64) error {
	d.loading = true
	doc, err := d.api.VerifyDocument(ctx, id)
	d.loading = false
	if err != nil {
		d.failFor(describe(err, "Failed to verify document."), documentTTL)
		return err
	}
	doc.Verified = true
	d.patch(id, doc)
	d.succeed("Document verified successfully.", documentTTL)
	return nil
}

// Download returns the stored file of document id and the name it was
// stored under. Documents outside the list are looked up first.
func (d *ClaimDocuments) Download(ctx context.Context, id int64) (string, []byte, error) {
	doc, ok := d.find(id)
	if !ok {
		var err error
		if doc, err = d.api.Document(ctx, id); err != nil {
			return "", nil, d.failWith(err, "Document not found.")
		}
	}
	name := doc.FileName()
	if name == "" {
		return "", nil, d.failWith(ErrDocumentNotListed, "Document has no stored file.")
	}

	d.loading = true
	content, err := d.api.DownloadDocument(ctx, name)
	d.loading = false
	if err != nil {
		return "", nil, d.failWith(err, "Failed to download document.")
	}
	return name, content, nil
}

func (d *ClaimDocuments) find(id int64) (models.Document, bool) {
	for _, doc := range d.docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return models.Document{}, false
}

// patch replaces the record with id by doc in a fresh list. Fields the
// answer left empty keep their old values.
func (d *ClaimDocuments) patch(id int64, doc models.Document) {
	docs := make([]models.Document, len(d.docs))
	copy(docs, d.docs)
	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		old := docs[i]
		if doc.ID == 0 {
			doc.ID = id
		}
		if doc.FileURL == "" {
			doc.FileURL = old.FileURL
		}
		if doc.Type == "" {
			doc.Type = old.Type
		}
		if doc.ClaimID == 0 {
			doc.ClaimID = old.ClaimID
		}
		if doc.UserID == 0 {
			doc.UserID = old.UserID
		}
		if doc.UploadedAt.IsZero() {
			doc.UploadedAt = old.UploadedAt
		}
		docs[i] = doc
	}
	d.docs = docs
}
