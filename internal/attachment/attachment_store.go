package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	attachmenterrors "employee-directory/internal/attachment/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// PublicPrefix is the first segment of every reference and the URL prefix
// the uploads root is served under.
const PublicPrefix = "uploads"

// extAliases lists client extensions accepted in place of the one mimetype
// reports for the same type.
var extAliases = map[string]string{
	".jpeg": ".jpg",
	".jpe":  ".jpg",
	".tif":  ".tiff",
}

//go:generate mockgen -source=attachment_store.go -destination=mock/attachment_store_mock.go -package=mock
type Store interface {
	// Validate checks files against the category policy without writing anything.
	Validate(category Category, files []*multipart.FileHeader) error
	// Save writes file under a fresh name and returns its reference.
	Save(ctx context.Context, category Category, file *multipart.FileHeader) (string, error)
	// Delete removes the referenced file. A missing file is not an error.
	Delete(ctx context.Context, ref string) error
}

type store struct {
	fs       afero.Fs
	policies Policies
	observer Observer
	logger   *zap.Logger
}

// NewStore builds a Store over fs, which must be rooted at the uploads
// directory (e.g. afero.NewBasePathFs(afero.NewOsFs(), dir)).
func NewStore(fs afero.Fs, policies Policies, observer Observer, logger ...*zap.Logger) Store {
	l := zap.L().Named("attachment.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attachment.store")
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &store{
		fs:       fs,
		policies: policies,
		observer: observer,
		logger:   l,
	}
}

func (s *store) Validate(category Category, files []*multipart.FileHeader) error {
	policy, ok := s.policies[category]
	if !ok {
		return attachmenterrors.ErrUnknownCategory.WithDetails(map[string]string{"category": string(category)})
	}
	if policy.MaxFiles > 0 && len(files) > policy.MaxFiles {
		return attachmenterrors.ErrTooManyFiles.WithDetails(map[string]any{
			"field": string(category),
			"max":   policy.MaxFiles,
		})
	}
	for _, fh := range files {
		if _, err := s.inspect(category, policy, fh); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) Save(ctx context.Context, category Category, file *multipart.FileHeader) (string, error) {
	start := time.Now()
	ref, size, err := s.save(category, file)
	s.observer.RecordSave(category, time.Since(start), size, err)
	if err != nil {
		s.logger.Warn("save attachment failed",
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return "", err
	}

	s.logger.Debug("attachment saved",
		zap.String("category", string(category)),
		zap.String("ref", ref),
		zap.Int64("size", size),
	)
	return ref, nil
}

func (s *store) save(category Category, fh *multipart.FileHeader) (string, int64, error) {
	policy, ok := s.policies[category]
	if !ok {
		return "", 0, attachmenterrors.ErrUnknownCategory.WithDetails(map[string]string{"category": string(category)})
	}

	mtype, err := s.inspect(category, policy, fh)
	if err != nil {
		return "", 0, err
	}

	src, err := fh.Open()
	if err != nil {
		return "", 0, attachmenterrors.ErrStorageFailure.WithErr(err)
	}
	defer src.Close()

	name := fmt.Sprintf("%s-%s%s", category, uuid.NewString(), extension(fh.Filename, mtype))

	// O_EXCL: never overwrite, even if two tokens ever collided.
	dst, err := s.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, attachmenterrors.ErrStorageFailure.WithErr(err)
	}

	n, copyErr := io.Copy(dst, io.LimitReader(src, policy.MaxBytes+1))
	closeErr := dst.Close()
	if copyErr == nil && n > policy.MaxBytes {
		_ = s.fs.Remove(name)
		return "", 0, tooLarge(category, policy)
	}
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = s.fs.Remove(name)
		return "", 0, attachmenterrors.ErrStorageFailure.WithErr(err)
	}

	return path.Join(PublicPrefix, name), n, nil
}

func (s *store) Delete(ctx context.Context, ref string) error {
	name, ok := fileName(ref)
	if !ok {
		return nil
	}

	start := time.Now()
	err := s.fs.Remove(name)
	if errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	s.observer.RecordDelete(time.Since(start), err)
	if err != nil {
		s.logger.Warn("delete attachment failed", zap.String("ref", ref), zap.Error(err))
		return attachmenterrors.ErrStorageFailure.WithErr(err)
	}

	s.logger.Debug("attachment deleted", zap.String("ref", ref))
	return nil
}

// inspect enforces size and sniffed content type; the client-declared
// Content-Type header is ignored.
func (s *store) inspect(category Category, policy Policy, fh *multipart.FileHeader) (*mimetype.MIME, error) {
	if fh == nil {
		return nil, attachmenterrors.ErrFileRequired.WithDetails(map[string]string{"field": string(category)})
	}
	if fh.Size > policy.MaxBytes {
		return nil, tooLarge(category, policy)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, attachmenterrors.ErrStorageFailure.WithErr(err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, attachmenterrors.ErrStorageFailure.WithErr(err)
	}
	if !policy.Accepts(mtype.String()) {
		return nil, attachmenterrors.ErrUnsupportedType.WithDetails(map[string]any{
			"field":    string(category),
			"filename": fh.Filename,
			"detected": mtype.String(),
			"allowed":  policy.AllowedTypes,
		})
	}
	return mtype, nil
}

func tooLarge(category Category, policy Policy) error {
	return attachmenterrors.ErrFileTooLarge.WithDetails(map[string]any{
		"field":    string(category),
		"maxBytes": policy.MaxBytes,
	})
}

// extension keeps the client's extension only when it names the sniffed
// type, otherwise the sniffed type's extension is used.
func extension(filename string, mtype *mimetype.MIME) string {
	ext := strings.ToLower(filepath.Ext(filename))
	want := mtype.Extension()
	if ext == want || (want != "" && extAliases[ext] == want) {
		return ext
	}
	return want
}

// fileName resolves a reference to a name inside the root. Only the base
// name is used so a reference can never point outside it.
func fileName(ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	name := path.Base(filepath.ToSlash(ref))
	if name == "." || name == "/" || name == ".." {
		return "", false
	}
	return name, true
}
