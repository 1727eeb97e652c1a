// Package filecheck validates uploaded documents before they reach storage.
package filecheck

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MB = 1024 * 1024

	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// Rules is one upload policy
type Rules struct {
	Name       string
	MaxSize    int64
	Extensions []string
}

var (
	ContractRules = Rules{Name: "contract", MaxSize: 10 * MB, Extensions: []string{".pdf", ".doc", ".docx"}}
	KYCRules      = Rules{Name: "kyc", MaxSize: 5 * MB, Extensions: []string{".pdf", ".jpg", ".jpeg", ".png"}}
)

// expected MIME per extension, followed by containers the sniffer may report instead
var extensionTypes = map[string][]string{
	".pdf":  {mimePDF},
	".doc":  {mimeDOC, "application/x-ole-storage"},
	".docx": {mimeDOCX, "application/zip"},
	".jpg":  {mimeJPEG},
	".jpeg": {mimeJPEG},
	".png":  {mimePNG},
}

var (
	invalidNameChars = regexp.MustCompile(`[<>:"|?*/\\]`)
	reservedNames    = regexp.MustCompile(`(?i)^(CON|PRN|AUX|NUL|COM[1-9]|LPT[1-9])$`)
)

// Error is a user-facing validation failure
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func invalid(format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Result describes an accepted file
type Result struct {
	Extension   string
	ContentType string
}

// Validate checks name, declared type and content against rules
func Validate(rules Rules, name, declaredType string, data []byte) (*Result, error) {
	if err := CheckSize(rules, int64(len(data))); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("File name is required")
	}
	if err := checkName(name); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return nil, invalid("File must have an extension (%s)", strings.Join(rules.Extensions, ", "))
	}
	if !contains(rules.Extensions, ext) {
		return nil, invalid("Invalid file type. Allowed types: %s", strings.Join(rules.Extensions, ", "))
	}
	expected := extensionTypes[ext]

	if declared := normalizeDeclared(declaredType); declared != "" && declared != expected[0] {
		return nil, invalid("File type mismatch. File extension suggests %s but file is %s", expected[0], declared)
	}

	if !sniffMatches(mimetype.Detect(data), expected) {
		return nil, invalid("File content does not match its %s extension", ext)
	}

	return &Result{Extension: ext, ContentType: expected[0]}, nil
}

// CheckSize rejects empty and oversized files. Callers holding only a
// multipart header use it before reading the content.
func CheckSize(rules Rules, size int64) error {
	if size <= 0 {
		return invalid("File is empty")
	}
	if size > rules.MaxSize {
		return invalid("File size must be less than %dMB", rules.MaxSize/MB)
	}
	return nil
}

func checkName(name string) error {
	if strings.Contains(name, "..") || invalidNameChars.MatchString(name) {
		return invalid("Invalid file name")
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if reservedNames.MatchString(name) || reservedNames.MatchString(base) {
		return invalid("Invalid file name")
	}
	return nil
}

// browsers send generic types for unknown content; those are not a claim
func normalizeDeclared(declared string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	switch declared {
	case "", "application/octet-stream", "binary/octet-stream":
		return ""
	case "image/jpg", "image/pjpeg":
		return mimeJPEG
	}
	return declared
}

func sniffMatches(detected *mimetype.MIME, accepted []string) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, want := range accepted {
			if m.Is(want) {
				return true
			}
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
