// Package upload validates uploaded files and runs them through a Generator.
package upload

import (
	"path/filepath"
	"strings"
)

// Kind selects what an endpoint accepts and what it asks the model to do.
type Kind int

const (
	// Document uploads are PDFs to be summarized.
	Document Kind = iota
	// Image uploads are PNG or JPEG pictures to read text from.
	Image
)

// Instructions sent next to the uploaded bytes.
const (
	DocumentInstruction = "Summarize this document in plain text without any special formatting like bold or italic."
	ImageInstruction    = "Give the text written in it."
)

var mimeTypes = map[Kind]map[string]string{
	Document: {
		".pdf": "application/pdf",
	},
	Image: {
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
	},
}

func (k Kind) String() string {
	switch k {
	case Document:
		return "document"
	case Image:
		return "image"
	default:
		return "unknown"
	}
}

// Instruction returns the fixed prompt for the kind.
func (k Kind) Instruction() string {
	if k == Image {
		return ImageInstruction
	}
	return DocumentInstruction
}

// MIMEType returns the MIME type for filename, or false if its extension
// is not accepted for the kind. The extension is matched case-insensitively.
func (k Kind) MIMEType(filename string) (string, bool) {
	mimeType, ok := mimeTypes[k][strings.ToLower(filepath.Ext(filename))]
	return mimeType, ok
}

func (k Kind) unsupportedMessage() string {
	if k == Image {
		return "Invalid file format. Only PNG, JPG and JPEG images are allowed."
	}
	return "Invalid file format. Only PDFs are allowed."
}
