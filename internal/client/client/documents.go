package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/netx"
)

const documentsPath = "/api/customer/documents"

// documentRequest is an authenticated call to the document endpoints. They
// are restricted to one role, so a 403 is a refusal that leaves the session
// alone.
func documentRequest(method, p string) request {
	return request{method: method, path: p, auth: true, forbiddenIsRefusal: true}
}

// DocumentUpload is one file to attach to a claim.
type DocumentUpload struct {
	UserID   int64
	ClaimID  int64
	Type     string
	FileName string
	Content  []byte
}

// UploadDocument sends the file as multipart/form-data and returns the
// stored record.
func (c *HTTPClient) UploadDocument(ctx context.Context, u DocumentUpload) (models.Document, error) {
	body, contentType, err := netx.Multipart([]netx.Field{
		{Name: "userId", Value: strconv.FormatInt(u.UserID, 10)},
		{Name: "claimId", Value: strconv.FormatInt(u.ClaimID, 10)},
		{Name: "documentType", Value: u.Type},
	}, netx.File{Field: "file", Name: u.FileName, Content: u.Content})
	if err != nil {
		return models.Document{}, fmt.Errorf("encode upload: %w", err)
	}

	r := documentRequest(http.MethodPost, documentsPath+"/upload")
	r.raw, r.contentType = body, contentType

	var w documentWire
	if err := c.doJSON(ctx, r, &w); err != nil {
		return models.Document{}, err
	}
	return w.model(), nil
}

// ReplaceDocument swaps the file behind document id; type and claim stay.
func (c *HTTPClient) ReplaceDocument(ctx context.Context, id int64, fileName string, content []byte) (models.Document, error) {
	body, contentType, err := netx.Multipart(nil, netx.File{Field: "file", Name: fileName, Content: content})
	if err != nil {
		return models.Document{}, fmt.Errorf("encode upload: %w", err)
	}

	r := documentRequest(http.MethodPut, idPath(documentsPath+"/%d/replace", id))
	r.raw, r.contentType = body, contentType

	var w documentWire
	if err := c.doJSON(ctx, r, &w); err != nil {
		return models.Document{}, err
	}
	return w.model(), nil
}

func (c *HTTPClient) listDocuments(ctx context.Context, p string) ([]models.Document, error) {
	var ws []documentWire
	if err := c.doJSON(ctx, documentRequest(http.MethodGet, p), &ws); err != nil {
		return nil, err
	}
	return documents(ws), nil
}

func (c *HTTPClient) ClaimDocuments(ctx context.Context, claimID int64) ([]models.Document, error) {
	return c.listDocuments(ctx, idPath(documentsPath+"/claim/%d", claimID))
}

func (c *HTTPClient) UserDocuments(ctx context.Context, userID int64) ([]models.Document, error) {
	return c.listDocuments(ctx, idPath(documentsPath+"/user/%d", userID))
}

func (c *HTTPClient) Document(ctx context.Context, id int64) (models.Document, error) {
	var w documentWire
	if err := c.doJSON(ctx, documentRequest(http.MethodGet, idPath(documentsPath+"/%d", id)), &w); err != nil {
		return models.Document{}, err
	}
	return w.model(), nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id int64) error {
	_, err := c.do(ctx, documentRequest(http.MethodDelete, idPath(documentsPath+"/%d", id)))
	return err
}

// VerifyDocument marks a document as checked.
func (c *HTTPClient) VerifyDocument(ctx context.Context, id int64) (models.Document, error) {
	var w documentWire
	if err := c.doJSON(ctx, documentRequest(http.MethodPut, idPath(documentsPath+"/%d/verify", id)), &w); err != nil {
		return models.Document{}, err
	}
	return w.model(), nil
}

// DownloadDocument fetches the stored file by its bare name (see
// models.Document.FileName).
func (c *HTTPClient) DownloadDocument(ctx context.Context, fileName string) ([]byte, error) {
	name := strings.TrimSpace(fileName)
	if name == "" || name == "." || name == ".." || path.Base(name) != name || strings.Contains(name, `\`) {
		return nil, fmt.Errorf("%w: invalid file name %q", ErrBadRequest, fileName)
	}
	r := documentRequest(http.MethodGet, documentsPath+"/download/"+url.PathEscape(name))
	r.accept = netx.OctetStream
	return c.do(ctx, r)
}
