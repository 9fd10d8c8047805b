package records

import (
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"episolve/apperr"
	"episolve/cms"
	"episolve/models"
)

// UploadMedia copies the file at src into the media directory under a
// unique name and records it. alt defaults to the file's base name.
func (o *Operations) UploadMedia(ctx context.Context, src, alt string) (cms.Document, error) {
	info, err := os.Stat(src)
	if goerrors.Is(err, fs.ErrNotExist) {
		return nil, apperr.NotFound("file not found: %s", src)
	}
	if err != nil {
		return nil, apperr.Invalid("reading %s: %v", src, err)
	}
	if info.IsDir() {
		return nil, apperr.Invalid("%s is a directory", src)
	}

	base := filepath.Base(src)
	if alt == "" {
		alt = base
	}

	mtype, err := mimetype.DetectFile(src)
	if err != nil {
		return nil, apperr.Invalid("detecting type of %s: %v", src, err)
	}

	o.printf("📤 Uploading image: %s...\n", src)

	filename := uuid.NewString() + "-" + base
	dst := filepath.Join(o.mediaDir, filename)
	size, err := copyFile(src, dst)
	if err != nil {
		return nil, apperr.Store(err, "copying "+src)
	}

	media := models.Media{
		Alt:      alt,
		Filename: filename,
		MimeType: mtype.String(),
		Filesize: size,
		URL:      path.Join(o.mediaURL, filename),
	}
	doc, err := o.client.Create(ctx, models.CollectionMedia, cms.MustDocument(media))
	if err != nil {
		if rmErr := os.Remove(dst); rmErr != nil {
			o.log.Warn("removing orphaned upload failed", zap.String("path", dst), zap.Error(rmErr))
		}
		return nil, err
	}

	o.println("✅ Image uploaded successfully!")
	o.printf("   ID: %s\n", doc.ID())
	o.printf("   Filename: %s\n", doc.String("filename"))
	o.printf("   Alt: %s\n", doc.String("alt"))
	o.printf("   Type: %s\n", doc.String("mimeType"))
	o.printf("   URL: %s\n", doc.String("url"))
	o.printf("   Size: %.2f KB\n", float64(size)/1024)
	o.printf("\n💡 Use this ID to attach the image: %s\n", doc.ID())
	return doc, nil
}

func copyFile(src, dst string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return 0, fmt.Errorf("writing %s: %w", dst, err)
	}
	return n, nil
}
