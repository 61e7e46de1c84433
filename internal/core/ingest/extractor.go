package ingest

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	s3client "llm-quiz/pkg/s3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/ledongthuc/pdf"
)

// FetchToLocalTemp downloads a local or s3:// file to a temporary path and
// returns a cleanup function.
func FetchToLocalTemp(filePath string) (string, func(), error) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		ext = ".bin"
	}

	if strings.HasPrefix(filePath, "s3://") {
		u, err := url.Parse(filePath)
		if err != nil {
			return "", func() {}, err
		}
		bucket := u.Host
		key := strings.TrimPrefix(u.Path, "/")
		cli, err := s3client.GetClient()
		if err != nil {
			return "", func() {}, err
		}
		tmp, err := os.CreateTemp("", "ingest-*"+ext)
		if err != nil {
			return "", func() {}, err
		}
		out, err := cli.GetObject(context.Background(), &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", func() {}, err
		}
		defer out.Body.Close()
		if _, err := io.Copy(tmp, out.Body); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return "", func() {}, err
		}
		tmp.Close()
		return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
	}

	abs := filePath
	if !filepath.IsAbs(abs) {
		cwd, _ := os.Getwd()
		abs = filepath.Join(cwd, filePath)
	}
	src, err := os.Open(abs)
	if err != nil {
		return "", func() {}, err
	}
	defer src.Close()
	tmp, err := os.CreateTemp("", "ingest-*"+ext)
	if err != nil {
		return "", func() {}, err
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", func() {}, err
	}
	tmp.Close()
	return tmp.Name(), func() { _ = os.Remove(tmp.Name()) }, nil
}

// ExtractTextPages extracts per-page text from a local file. PDF pages come
// back one string per page; plain text files are a single page.
func ExtractTextPages(localPath string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".pdf":
		return extractPDFPages(localPath)
	case ".txt", ".text", "":
		return extractPlainText(localPath)
	default:
		return nil, fmt.Errorf("unsupported source format %q", filepath.Ext(localPath))
	}
}

func extractPDFPages(localPath string) ([]string, error) {
	f, r, err := pdf.Open(localPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		text = sanitizeUTF8Printable(text)
		if text != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("empty content")
	}
	return pages, nil
}

func extractPlainText(localPath string) ([]string, error) {
	raw, err := os.ReadFile(localPath)
	if err != nil {
		return nil, err
	}
	content := sanitizeUTF8Printable(string(raw))
	if content == "" {
		return nil, fmt.Errorf("empty content")
	}
	return []string{content}, nil
}

// sanitizeUTF8Printable removes BOM and non-printable runes, keeping common
// whitespace.
func sanitizeUTF8Printable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\uFEFF' || r == unicode.ReplacementChar {
			continue
		}
		if r == '\n' || r == '\t' || r == '\r' {
			// keep
		} else if !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// BuildContentPreview sanitizes and truncates content by runes for the
// preview column.
func BuildContentPreview(s string, maxRunes int) string {
	out := sanitizeUTF8Printable(s)
	runes := []rune(out)
	if len(runes) > maxRunes {
		out = string(runes[:maxRunes])
	}
	return strings.TrimSpace(out)
}
