package handlers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/jobboard/internal/services"
	"github.com/yoockh/jobboard/internal/utils"
)

// readUpload opens the multipart "file" field and sniffs its content type from
// the first 512 bytes. The returned body still yields the whole file.
func readUpload(c *gin.Context, op string, maxBytes int64) (services.Upload, io.Closer, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return services.Upload{}, nil, false
	}
	if fh.Size <= 0 || fh.Size > maxBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file is empty or too large", nil))
		return services.Upload{}, nil, false
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return services.Upload{}, nil, false
	}

	head, ct, err := sniff(f)
	if err != nil {
		_ = f.Close()
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "failed to read upload", err))
		return services.Upload{}, nil, false
	}

	return services.Upload{
		ContentType: ct,
		Size:        fh.Size,
		Body:        io.MultiReader(bytes.NewReader(head), f),
	}, f, true
}

func sniff(f multipart.File) ([]byte, string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, "", err
	}
	head = head[:n]
	return head, http.DetectContentType(head), nil
}
