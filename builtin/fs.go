package builtin

import (
	"context"
	"encoding/base64"
	"mime"
	"path/filepath"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// ListResources lists workspace files as resources.
func (s *Service) ListResources(ctx context.Context, request *schema.ListResourcesRequest) (*schema.ListResourcesResult, *jsonrpc.Error) {
	objects, err := s.fs.List(ctx, s.config.Workspace, s.config.Options...)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	result := &schema.ListResourcesResult{}
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		name := object.Name()
		ext := filepath.Ext(name)
		mimeType := mime.TypeByExtension(ext)
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		result.Resources = append(result.Resources, schema.Resource{
			Name:     name,
			MimeType: &mimeType,
			Uri:      object.URL(),
		})
	}
	return result, nil
}

// ReadResource downloads a workspace file, returning text or a base64 blob.
func (s *Service) ReadResource(ctx context.Context, request *schema.ReadResourceRequest) (*schema.ReadResourceResult, *jsonrpc.Error) {
	object, err := s.fs.Object(ctx, request.Params.Uri)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	data, err := s.fs.DownloadWithURL(ctx, request.Params.Uri, s.config.Options...)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}

	ext := filepath.Ext(object.Name())
	mimeType := mime.TypeByExtension(ext)

	var text, blob string
	if isBinary(data) {
		blob = base64.StdEncoding.EncodeToString(data)
	} else {
		text = string(data)
	}
	result := &schema.ReadResourceResult{}
	result.Contents = append(result.Contents, schema.ReadResourceResultContentsElem{
		MimeType: &mimeType,
		Uri:      object.URL(),
		Blob:     blob,
		Text:     text,
	})
	return result, nil
}

func isBinary(data []byte) bool {
	const maxBytes = 8000
	n := min(maxBytes, len(data))
	// Heuristic: if more than 30% of the bytes are non-printable (excluding newline, tab), treat it as binary
	nonPrintable := 0
	for i := 0; i < n; i++ {
		b := data[i]
		if (b < 32 || b > 126) && b != '\n' && b != '\r' && b != '\t' {
			nonPrintable++
		}
	}
	ratio := float64(nonPrintable) / float64(n)
	return ratio > 0.3
}
