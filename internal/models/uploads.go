package models

import "mime/multipart"

// Request and Response structs for the upload API
// The request structs must be structs with fields for the request path/query/header/cookie parameters and/or body.
// The response structs must be structs with fields for the output headers and body of the operation, if any.

// Upload a document or an image
// POST Path: "/upload"
// POST Path: "/upload-image"

type UploadRequest struct {
	RawBody multipart.Form
}

// Summarize a PDF
// POST Path: "/upload"

type SummaryResponse struct {
	Body struct {
		Summary string `json:"summary" doc:"Plain text summary of the uploaded document"`
	}
}

// Extract text from an image
// POST Path: "/upload-image"

type TextResponse struct {
	Body struct {
		Text string `json:"text" doc:"Plain text found in the uploaded image"`
	}
}
