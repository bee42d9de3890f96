package models

import "io"

// StorageItem describes a blob about to be written to object storage.
type StorageItem struct {
	Bucket      string
	Key         string
	Content     []byte
	Body        io.Reader
	ContentType string
	Size        int64
}

// StorageObject describes a blob that has been written.
type StorageObject struct {
	Bucket   string
	Key      string
	URL      string
	Metadata map[string]string
}

// BulkItem is one entry of a bulk upload: raw content plus the key suffix it
// should be stored under, relative to the bulk call's prefix.
type BulkItem struct {
	Content   []byte
	KeySuffix string
}
