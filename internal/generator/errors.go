package generator

// UploadError reports that the remote service did not accept the payload bytes.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "upload payload: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// GenerationError reports that the remote service failed to produce text.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return "generate content: " + e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
