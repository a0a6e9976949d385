package asset

import "errors"

var (
	ErrNotFound      = errors.New("asset not found")
	ErrObjectMissing = errors.New("object has not been uploaded")
	ErrKeyNotIssued  = errors.New("object key was not issued by presign")
	ErrAccessDenied  = errors.New("no access to this asset")
)
