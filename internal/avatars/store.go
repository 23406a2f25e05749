package avatars

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aiotex/weighttracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrAvatarNotFound  = errors.New("avatar not found")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// MaxUploadSize caps avatar uploads, they are small profile images.
const MaxUploadSize = 5 << 20 // 5 MB

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// DiskStore keeps avatar images as flat files under a single root
// directory. Stored names carry the user id and a timestamp so a new
// upload never collides with the previous one.
type DiskStore struct {
	rootPath string
	mutex    sync.Mutex
}

func NewDiskStore(rootPath string) (*DiskStore, error) {
	if rootPath == "" {
		return nil, errors.New("root path cannot be empty")
	}
	if err := os.MkdirAll(rootPath, 0755); err != nil {
		return nil, fmt.Errorf("create avatars dir: %w", err)
	}
	return &DiskStore{rootPath: rootPath}, nil
}

func (ds *DiskStore) RootPath() string {
	return ds.rootPath
}

func (ds *DiskStore) Save(ctx context.Context, userID int, filename string, src io.Reader) (_ string, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "avatars.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	span.SetAttributes(attribute.String("file.name", filename))
	span.SetAttributes(attribute.Int("user.id", userID))

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	storedName := fmt.Sprintf("avatar-%d-%d%s", userID, time.Now().UnixNano(), ext)
	storedPath := path.Join(ds.rootPath, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, MaxUploadSize)); err != nil {
		if removeErr := os.Remove(storedPath); removeErr != nil {
			log.Errorf("failed to remove partial avatar upload: %s", removeErr)
		}
		return "", err
	}

	log.Debugf("avatars: saved %s for user %d", storedName, userID)

	return storedName, nil
}

func (ds *DiskStore) Remove(ctx context.Context, storedName string) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "avatars.remove")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	// stored names come from the db, but do not trust them with path elements
	if storedName == "" || storedName != filepath.Base(storedName) {
		return ErrAvatarNotFound
	}

	ds.mutex.Lock()
	defer ds.mutex.Unlock()

	storedPath := path.Join(ds.rootPath, storedName)
	if err := os.Remove(storedPath); err != nil {
		if os.IsNotExist(err) {
			return ErrAvatarNotFound
		}
		return err
	}

	log.Debugf("avatars: removed %s", storedName)

	return nil
}
