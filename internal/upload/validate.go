package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/mpilhlt/dhamps-gist/internal/generator"
)

// FileField is the multipart field carrying the upload.
const FileField = "file"

// Validation failures. A *ValidationError always wraps one of these.
var (
	ErrMissingFile     = errors.New("missing file")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// ValidationError is a rejected upload. Message is meant for the client.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate picks the upload out of form and checks it against kind.
// maxBytes <= 0 disables the size check.
func Validate(form *multipart.Form, kind Kind, maxBytes int64) (*multipart.FileHeader, error) {
	if form == nil {
		return nil, &ValidationError{Err: ErrMissingFile, Message: "No file part"}
	}

	files := form.File[FileField]
	if len(files) == 0 {
		// Browsers send an empty filename when nothing was selected, and
		// mime/multipart stores such a part as a plain value.
		if _, ok := form.Value[FileField]; ok {
			return nil, &ValidationError{Err: ErrMissingFile, Message: "No selected file"}
		}
		return nil, &ValidationError{Err: ErrMissingFile, Message: "No file part"}
	}

	header := files[0]
	if header.Filename == "" {
		return nil, &ValidationError{Err: ErrMissingFile, Message: "No selected file"}
	}

	if _, ok := kind.MIMEType(header.Filename); !ok {
		return nil, &ValidationError{Err: ErrUnsupportedType, Message: kind.unsupportedMessage()}
	}

	if maxBytes > 0 && header.Size > maxBytes {
		return nil, tooLarge(maxBytes)
	}

	return header, nil
}

// IsMultipart reports whether contentType announces a multipart/form-data body.
func IsMultipart(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "multipart/form-data"
}

// FormError turns a failure to read the multipart body into a rejected
// upload. A body cut off by http.MaxBytesReader counts as too large, any
// other unreadable body as a missing file part.
func FormError(err error, maxBytes int64) *ValidationError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return tooLarge(maxBytes)
	}
	return &ValidationError{Err: ErrMissingFile, Message: "No file part"}
}

func tooLarge(maxBytes int64) *ValidationError {
	if maxBytes <= 0 {
		return &ValidationError{Err: ErrTooLarge, Message: "File is too large."}
	}
	return &ValidationError{
		Err:     ErrTooLarge,
		Message: fmt.Sprintf("File is too large. The limit is %d bytes.", maxBytes),
	}
}

// Prepare reads the whole upload into memory.
func Prepare(header *multipart.FileHeader, kind Kind) (generator.Payload, error) {
	mimeType, ok := kind.MIMEType(header.Filename)
	if !ok {
		return generator.Payload{}, &ValidationError{Err: ErrUnsupportedType, Message: kind.unsupportedMessage()}
	}

	f, err := header.Open()
	if err != nil {
		return generator.Payload{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return generator.Payload{}, fmt.Errorf("read upload: %w", err)
	}

	return generator.Payload{
		Data:     data,
		MIMEType: mimeType,
		Filename: header.Filename,
	}, nil
}
