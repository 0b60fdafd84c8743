package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/farhanrmdhni/portfolio-backend/errs"
)

// uploadConcurrency bounds parallel object uploads during a commit.
// Uploads are independent and each targets a unique generated name, so
// running them concurrently is safe.
const uploadConcurrency = 4

// ImageUploader is the slice of the object storage client the gallery
// needs: upload a file yielding its public URL, and delete by URL for
// compensating cleanup.
type ImageUploader interface {
	UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	DeleteImage(ctx context.Context, publicURL string) error
}

// PendingImage is a locally selected file that has not been uploaded yet.
type PendingImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImagePreview is derived asynchronously from a pending file. Until
// derivation completes the entry is a placeholder with Ready == false;
// placeholders keep the preview list aligned with the file list even
// when derivation finishes out of order.
type ImagePreview struct {
	Ready   bool
	DataURI string
}

// GalleryResult is the outcome of a successful commit: the final ordered
// image list and the thumbnail derived from it.
type GalleryResult struct {
	Images    []string
	Thumbnail string
}

// GalleryBuilder assembles the ordered image gallery for one project:
// URLs already persisted by a prior save plus newly selected files.
// Existing images can only be removed, pending files can be appended and
// removed; Commit uploads the pending files and merges both lists.
//
// The builder moves Populated -> Committing -> Populated. While a commit
// is in flight every mutation and re-entrant commit is rejected. A
// failed commit leaves the assembled state untouched so the same builder
// can retry.
type GalleryBuilder struct {
	mu         sync.Mutex
	uploader   ImageUploader
	existing   []string
	files      []PendingImage
	previews   []*ImagePreview
	committing bool
	logger     zerolog.Logger
}

// NewGalleryBuilder starts a builder from the images a prior save left
// on the project (empty for a new project).
func NewGalleryBuilder(uploader ImageUploader, existing []string) *GalleryBuilder {
	return &GalleryBuilder{
		uploader: uploader,
		existing: append([]string(nil), existing...),
		logger:   log.With().Str("serviceName", "gallery").Logger(),
	}
}

// AddFiles appends the selected files in order. A preview placeholder is
// installed for each file immediately; the preview itself is derived on
// a separate goroutine and filled in whenever it completes. Callers are
// expected to restrict selection to image files, no MIME or size check
// happens here.
func (b *GalleryBuilder) AddFiles(files ...PendingImage) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committing {
		return errs.ErrCommitInFlight
	}

	for _, f := range files {
		preview := &ImagePreview{}
		b.files = append(b.files, f)
		b.previews = append(b.previews, preview)
		go b.derivePreview(preview, f.ContentType, f.Data)
	}
	return nil
}

// derivePreview encodes the file bytes as a data URI. Assignment goes
// through the preview pointer captured at add time, so completions that
// arrive after unrelated removals still land on the right entry.
func (b *GalleryBuilder) derivePreview(preview *ImagePreview, contentType string, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	b.mu.Lock()
	preview.DataURI = "data:" + contentType + ";base64," + encoded
	preview.Ready = true
	b.mu.Unlock()
}

// RemoveExisting splices out the persisted image at index i, preserving
// the relative order of the rest. Out-of-range indexes are a silent
// no-op.
func (b *GalleryBuilder) RemoveExisting(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committing {
		return errs.ErrCommitInFlight
	}
	if i < 0 || i >= len(b.existing) {
		return nil
	}
	b.existing = append(b.existing[:i], b.existing[i+1:]...)
	return nil
}

// RemoveNew splices out the pending file at index i together with its
// preview. Files and previews move in lockstep, their lengths are equal
// at all times.
func (b *GalleryBuilder) RemoveNew(i int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.committing {
		return errs.ErrCommitInFlight
	}
	if i < 0 || i >= len(b.files) {
		return nil
	}
	b.files = append(b.files[:i], b.files[i+1:]...)
	b.previews = append(b.previews[:i], b.previews[i+1:]...)
	return nil
}

// Existing returns a copy of the currently retained persisted images.
func (b *GalleryBuilder) Existing() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.existing...)
}

// PendingCount returns the number of files awaiting upload.
func (b *GalleryBuilder) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.files)
}

// Previews returns a snapshot of the preview list. Entries whose
// derivation has not finished yet are present but not Ready.
func (b *GalleryBuilder) Previews() []ImagePreview {
	b.mu.Lock()
	defer b.mu.Unlock()

	snapshot := make([]ImagePreview, len(b.previews))
	for i, p := range b.previews {
		snapshot[i] = *p
	}
	return snapshot
}

// Commit uploads every pending file and merges the results after the
// retained existing images, in file-selection order regardless of which
// upload finishes first. Blank entries are filtered out. The thumbnail
// is the first merged image; with an empty gallery it falls back to the
// manually entered URL, else "".
//
// Any single upload failure fails the whole commit: the error carries
// the underlying cause (a missing bucket keeps its specific guidance
// message), the caller must not save the project record, and the
// builder's assembled state is left exactly as it was so the user can
// retry. Objects uploaded before the failure are deleted best-effort.
func (b *GalleryBuilder) Commit(ctx context.Context, fallbackURL string) (GalleryResult, error) {
	b.mu.Lock()
	if b.committing {
		b.mu.Unlock()
		return GalleryResult{}, errs.ErrCommitInFlight
	}
	b.committing = true
	files := append([]PendingImage(nil), b.files...)
	existing := append([]string(nil), b.existing...)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.committing = false
		b.mu.Unlock()
	}()

	// Results are assigned by selection index, never appended from
	// completion callbacks: upload completion order must not leak into
	// gallery order.
	uploaded := make([]string, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(uploadConcurrency)
	for i, f := range files {
		i, f := i, f
		group.Go(func() error {
			publicURL, err := b.uploader.UploadImage(groupCtx, f.Filename, f.ContentType, bytes.NewReader(f.Data))
			if err != nil {
				return err
			}
			uploaded[i] = publicURL
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		b.cleanupPartialUploads(uploaded)
		return GalleryResult{}, err
	}

	merged := make([]string, 0, len(existing)+len(uploaded))
	for _, u := range append(existing, uploaded...) {
		if strings.TrimSpace(u) != "" {
			merged = append(merged, u)
		}
	}

	thumbnail := strings.TrimSpace(fallbackURL)
	if len(merged) > 0 {
		thumbnail = merged[0]
	}

	b.mu.Lock()
	b.existing = merged
	b.files = nil
	b.previews = nil
	b.mu.Unlock()

	return GalleryResult{Images: merged, Thumbnail: thumbnail}, nil
}

// cleanupPartialUploads deletes the objects a failed commit managed to
// upload. Best effort only: a leftover object is preferable to masking
// the original upload error.
func (b *GalleryBuilder) cleanupPartialUploads(uploaded []string) {
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, publicURL := range uploaded {
		if publicURL == "" {
			continue
		}
		if err := b.uploader.DeleteImage(cleanupCtx, publicURL); err != nil {
			b.logger.Warn().Err(err).Str("url", publicURL).Msg("Failed to clean up partially uploaded image")
		}
	}
}
