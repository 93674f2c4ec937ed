package api_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
)

func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, mw.FormDataContentType()
}

func TestUpload_AcceptsPDF(t *testing.T) {
	ts := setupServer(t)

	body, contentType := multipartFile(t, "resume.pdf", "application/pdf", []byte("%PDF-1.4 test"))
	resp, err := http.Post(ts.srv.URL+"/api/upload", contentType, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Path         string `json:"path"`
		OriginalName string `json:"originalName"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out.Path, "/uploads/") || !strings.HasSuffix(out.Path, ".pdf") {
		t.Fatalf("path = %q, want /uploads/*.pdf", out.Path)
	}
	if out.OriginalName != "resume.pdf" {
		t.Fatalf("originalName = %q", out.OriginalName)
	}

	// stored file is served back
	got, err := http.Get(ts.srv.URL + out.Path)
	if err != nil {
		t.Fatalf("fetch upload: %v", err)
	}
	defer got.Body.Close()
	if got.StatusCode != http.StatusOK {
		t.Fatalf("fetch status = %d, want 200", got.StatusCode)
	}
}

func TestUpload_RejectsOversizeFile(t *testing.T) {
	ts := setupServer(t)

	big := bytes.Repeat([]byte("a"), 15<<20)
	body, contentType := multipartFile(t, "huge.pdf", "application/pdf", big)
	resp, err := http.Post(ts.srv.URL+"/api/upload", contentType, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	ts := setupServer(t)

	body, contentType := multipartFile(t, "resume.docx", "application/msword", []byte("not a pdf"))
	resp, err := http.Post(ts.srv.URL+"/api/upload", contentType, body)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d, want 415", resp.StatusCode)
	}

	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errBody.Error != "only PDF files are accepted" {
		t.Fatalf("error = %q", errBody.Error)
	}
}

func TestUpload_NoFileField(t *testing.T) {
	ts := setupServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", "ada"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	mw.Close()

	resp, err := http.Post(ts.srv.URL+"/api/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}
