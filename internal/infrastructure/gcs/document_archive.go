// Package gcs archives rendered documents in Google Cloud Storage.
package gcs

import (
	"context"
	"path"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

type DocumentArchive struct {
	client *storage.Client
	bucket string
}

func NewDocumentArchive(client *storage.Client, bucket string) *DocumentArchive {
	return &DocumentArchive{client: client, bucket: bucket}
}

// ObjectPath is where a sent document is stored.
func ObjectPath(userID, eventID string) string {
	if userID == "" {
		userID = "anonymous"
	}
	return path.Join("documents", userID, eventID+".html")
}

// Store uploads html and returns its gs:// URI.
func (a *DocumentArchive) Store(ctx context.Context, userID, eventID, html string) (string, error) {
	return helpers.UploadObject(ctx, a.client, a.bucket, ObjectPath(userID, eventID), "text/html; charset=utf-8", strings.NewReader(html))
}
